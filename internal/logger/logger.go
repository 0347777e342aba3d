// Package logger provides a simple wrapper around slog for structured logging.
package logger

import (
	"log/slog"
	"os"
)

// Logger is the global logger instance. Every record carries the app name so
// salesdash lines are filterable when stderr is shared with other tools.
var Logger = slog.New(slog.NewTextHandler(os.Stderr, nil)).With("app", "salesdash")

// With returns a logger scoped to one component, e.g. "ingest" or "storage".
func With(component string) *slog.Logger {
	return Logger.With("component", component)
}

// Error logs an error message.
func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}

// Info logs an informational message.
func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}
