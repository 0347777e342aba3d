package config

import (
	"testing"
	"time"

	"github.com/halloran-travel/salesdash-tui/internal/analytics/regression"
)

func TestGetEnvList(t *testing.T) {
	t.Setenv("TEST_ROSTER", "Ana Torres, Ben Ruiz ,,  ")
	got := getEnvList("TEST_ROSTER")
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d: %v", len(got), got)
	}
	if got[0] != "Ana Torres" || got[1] != "Ben Ruiz" {
		t.Errorf("entries = %v", got)
	}
}

func TestGetEnvList_Empty(t *testing.T) {
	t.Setenv("TEST_ROSTER", "")
	if got := getEnvList("TEST_ROSTER"); got != nil {
		t.Errorf("expected nil for empty var, got %v", got)
	}
}

func TestGetEnvFloat(t *testing.T) {
	t.Setenv("TEST_FLOAT", "0.9")
	if got := getEnvFloat("TEST_FLOAT", 0.95); got != 0.9 {
		t.Errorf("got %v, want 0.9", got)
	}
	t.Setenv("TEST_FLOAT", "bogus")
	if got := getEnvFloat("TEST_FLOAT", 0.95); got != 0.95 {
		t.Errorf("got %v, want default 0.95", got)
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("TEST_DUR", "2s")
	if got := getEnvDuration("TEST_DUR", time.Second); got != 2*time.Second {
		t.Errorf("got %v, want 2s", got)
	}
	// Bare integers are seconds.
	t.Setenv("TEST_DUR", "5")
	if got := getEnvDuration("TEST_DUR", time.Second); got != 5*time.Second {
		t.Errorf("got %v, want 5s", got)
	}
}

func TestLoad_Defaults(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("DATABASE_PATH", tmp+"/salesdash.db")
	t.Setenv("WATCH_DIR", tmp+"/inbox")
	t.Setenv("SENIOR_AGENTS", "")
	t.Setenv("TREND_R2_THRESHOLD", "")
	t.Setenv("INGEST_DEBOUNCE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.TrendThreshold != regression.DefaultThreshold {
		t.Errorf("threshold = %v, want %v", cfg.TrendThreshold, regression.DefaultThreshold)
	}
	if cfg.IngestDebounce != defaultIngestDebounce {
		t.Errorf("debounce = %v, want %v", cfg.IngestDebounce, defaultIngestDebounce)
	}
}
