package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/halloran-travel/salesdash-tui/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("Failed to create test store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	store := newTestStore(t)

	if err := store.Set("k", []byte("v1")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	value, found, err := store.Get("k")
	if err != nil || !found {
		t.Fatalf("Get failed: found=%v err=%v", found, err)
	}
	if string(value) != "v1" {
		t.Errorf("value = %q, want v1", value)
	}

	// Overwrite replaces wholesale.
	if err := store.Set("k", []byte("v2")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	value, _, _ = store.Get("k")
	if string(value) != "v2" {
		t.Errorf("value = %q, want v2", value)
	}
}

func TestSQLiteStore_Path(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("Failed to create test store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if store.Path() != path {
		t.Errorf("Path() = %q, want %q", store.Path(), path)
	}
}

func TestSQLiteStore_MissingKey(t *testing.T) {
	store := newTestStore(t)
	_, found, err := store.Get("nope")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if found {
		t.Error("expected missing key")
	}
}

func TestSQLiteStore_Delete(t *testing.T) {
	store := newTestStore(t)
	_ = store.Set("k", []byte("v"))
	if err := store.Delete("k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found, _ := store.Get("k"); found {
		t.Error("key still present after delete")
	}
	// Deleting an absent key is not an error.
	if err := store.Delete("k"); err != nil {
		t.Errorf("double delete errored: %v", err)
	}
}

func TestLoadRecords_Empty(t *testing.T) {
	store := NewMemoryStore()
	ledger := LoadRecords(store)
	if ledger == nil || ledger.Agents == nil {
		t.Fatal("expected a fresh empty ledger")
	}
	if len(ledger.Agents) != 0 {
		t.Errorf("fresh ledger has %d agents", len(ledger.Agents))
	}
}

func TestLoadRecords_CorruptBlobDegradesToEmpty(t *testing.T) {
	store := NewMemoryStore()
	_ = store.Set(RecordsKey, []byte("{not json"))
	ledger := LoadRecords(store)
	if ledger == nil || len(ledger.Agents) != 0 {
		t.Fatal("corrupt blob should degrade to an empty ledger")
	}
}

func TestSaveLoadRecords_RoundTrip(t *testing.T) {
	store := newTestStore(t)

	ledger := models.NewAllRecords()
	recs := models.NewAgentRecords()
	recs.Set(models.MetricTrips, models.GranularityWeek, &models.RecordEntry{
		Value:       12,
		PeriodStart: "2024-03-11",
		PeriodEnd:   "2024-03-17",
		SetAt:       time.Now(),
	})
	ledger.Agents["Jane"] = recs

	if err := SaveRecords(store, ledger); err != nil {
		t.Fatalf("SaveRecords failed: %v", err)
	}

	loaded := LoadRecords(store)
	entry := loaded.Agents["Jane"].Get(models.MetricTrips, models.GranularityWeek)
	if entry == nil || entry.Value != 12 {
		t.Fatalf("loaded entry = %+v, want value 12", entry)
	}
	if entry.PeriodStart != "2024-03-11" || entry.PeriodEnd != "2024-03-17" {
		t.Errorf("loaded period = %s..%s", entry.PeriodStart, entry.PeriodEnd)
	}
}
