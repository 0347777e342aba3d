package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/halloran-travel/salesdash-tui/internal/models"
)

const sampleCSV = `agent,date,event,count
Ana Torres,2024-03-11,trip,2
Ana Torres,2024-03-11,quote,
Ben Ruiz,2024-03-12,passthrough,3
Ben Ruiz,45000,booking,1
Ana Torres,garbage-date,trip,1
,2024-03-11,trip,5
Ana Torres,2024-03-11,mystery,4
`

func TestTally(t *testing.T) {
	counts := models.NewCountMaps()
	if err := Tally(strings.NewReader(sampleCSV), counts); err != nil {
		t.Fatalf("Tally failed: %v", err)
	}

	if got := counts.Trips["Ana Torres"]["2024-03-11"]; got != 2 {
		t.Errorf("Ana trips = %d, want 2", got)
	}
	// Missing count column value defaults to 1.
	if got := counts.Quotes["Ana Torres"]["2024-03-11"]; got != 1 {
		t.Errorf("Ana quotes = %d, want 1", got)
	}
	if got := counts.Passthroughs["Ben Ruiz"]["2024-03-12"]; got != 3 {
		t.Errorf("Ben passthroughs = %d, want 3", got)
	}
	// Spreadsheet serial dates resolve to real keys.
	if got := counts.Bookings["Ben Ruiz"]; len(got) != 1 {
		t.Errorf("Ben bookings = %v, want one dated entry", got)
	} else {
		for key := range got {
			if key == models.UnknownDateKey {
				t.Errorf("serial date landed in unknown bucket")
			}
		}
	}
	// Unparseable dates stay attributable under the sentinel key.
	if got := counts.Trips["Ana Torres"][models.UnknownDateKey]; got != 1 {
		t.Errorf("Ana unknown-date trips = %d, want 1", got)
	}
	// Blank agents and unrecognized events are dropped.
	if _, ok := counts.Trips[""]; ok {
		t.Error("blank agent was tallied")
	}
}

func TestTally_ColumnOrderIndependent(t *testing.T) {
	csv := "event,count,agent,date\ntrip,4,Ana,2024-03-11\n"
	counts := models.NewCountMaps()
	if err := Tally(strings.NewReader(csv), counts); err != nil {
		t.Fatalf("Tally failed: %v", err)
	}
	if got := counts.Trips["Ana"]["2024-03-11"]; got != 4 {
		t.Errorf("Ana trips = %d, want 4", got)
	}
}

func TestTally_MissingColumns(t *testing.T) {
	counts := models.NewCountMaps()
	if err := Tally(strings.NewReader("agent,when\nAna,2024-03-11\n"), counts); err == nil {
		t.Error("expected an error for a header without date/event columns")
	}
}

func TestTally_EmptyFile(t *testing.T) {
	counts := models.NewCountMaps()
	if err := Tally(strings.NewReader(""), counts); err != nil {
		t.Errorf("empty file should tally nothing, got %v", err)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("march.csv", "agent,date,event\nAna,2024-03-11,trip\n")
	write("april.csv", "agent,date,event\nAna,2024-04-02,trip\n")
	write("notes.txt", "not a csv")

	counts, files, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}
	if files != 2 {
		t.Errorf("files = %d, want 2", files)
	}
	if len(counts.Trips["Ana"]) != 2 {
		t.Errorf("Ana dated trips = %v, want 2 dates", counts.Trips["Ana"])
	}
}

func TestService_InitialScanAndWatch(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "seed.csv"),
		[]byte("agent,date,event\nAna,2024-03-11,trip\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	svc, err := New(dir, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer svc.Close()

	select {
	case event := <-svc.Events():
		if event.Type != EventCountsLoaded {
			t.Fatalf("event type = %v, want counts loaded", event.Type)
		}
		if event.Files != 1 {
			t.Errorf("files = %d, want 1", event.Files)
		}
		if event.Counts.Trips["Ana"]["2024-03-11"] != 1 {
			t.Errorf("initial scan counts = %v", event.Counts.Trips)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for initial scan event")
	}

	// Dropping a new export triggers a debounced rescan.
	if err := os.WriteFile(filepath.Join(dir, "drop.csv"),
		[]byte("agent,date,event\nBen,2024-03-12,quote\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(3 * time.Second)
	for {
		select {
		case event := <-svc.Events():
			if event.Type == EventCountsLoaded && event.Files == 2 {
				if event.Counts.Quotes["Ben"]["2024-03-12"] != 1 {
					t.Errorf("rescan counts = %v", event.Counts.Quotes)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for rescan event")
		}
	}
}
