// Package config contains everything related to configuration
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/halloran-travel/salesdash-tui/internal/analytics/regression"
)

// Config holds the application configuration.
type Config struct {
	// DatabasePath locates the sqlite blob store holding the records ledger.
	DatabasePath string
	// WatchDir is the CSV drop directory scanned and watched for exports.
	WatchDir string
	// SeniorAgents is the roster used to split the senior/non-senior group
	// series. Matching is case-insensitive.
	SeniorAgents []string
	// TrendThreshold is the minimum R-squared for a trend line to render.
	TrendThreshold float64
	// IngestDebounce is how long to wait after a file event before
	// re-analyzing, coalescing bursts of writes.
	IngestDebounce time.Duration
}

// Default values
const defaultIngestDebounce = 500 * time.Millisecond

// Load reads configuration from .env files and environment variables.
func Load() (*Config, error) {
	for _, path := range getEnvPaths() {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	cfg := &Config{
		DatabasePath:   getEnvString("DATABASE_PATH", defaultDataPath("salesdash.db")),
		WatchDir:       getEnvString("WATCH_DIR", defaultDataPath("inbox")),
		SeniorAgents:   getEnvList("SENIOR_AGENTS"),
		TrendThreshold: getEnvFloat("TREND_R2_THRESHOLD", regression.DefaultThreshold),
		IngestDebounce: getEnvDuration("INGEST_DEBOUNCE", defaultIngestDebounce),
	}

	if err := ensureDir(filepath.Dir(cfg.DatabasePath)); err != nil {
		return nil, err
	}
	if err := ensureDir(cfg.WatchDir); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "salesdash", ".env"),
			filepath.Join(home, ".salesdash", ".env"),
		)
	}
	return paths
}

// defaultDataPath returns a path under the default data directory.
func defaultDataPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, ".config", "salesdash", name)
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvList retrieves a comma-separated environment variable as a trimmed
// list, dropping empty entries.
func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// getEnvFloat retrieves a float environment variable or returns the default.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns the default.
// Accepts values like "30s", "1m", "500ms".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// Try parsing as seconds if no unit specified
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

// ensureDir creates a directory and all parent directories if they don't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
