// Package main is the entry point for the Salesdash TUI application.
// It initializes configuration, services, and runs the Bubble Tea program.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/halloran-travel/salesdash-tui/internal/app"
	"github.com/halloran-travel/salesdash-tui/internal/config"
	"github.com/halloran-travel/salesdash-tui/internal/services"
	"github.com/halloran-travel/salesdash-tui/internal/ui/tabs/dashboard"
	"github.com/halloran-travel/salesdash-tui/internal/ui/tabs/info"
	"github.com/halloran-travel/salesdash-tui/internal/ui/tabs/records"
	"github.com/halloran-travel/salesdash-tui/internal/ui/tabs/trends"
	"github.com/halloran-travel/salesdash-tui/internal/version"
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "-v" || os.Args[1] == "--version") {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	if len(os.Args) > 1 && (os.Args[1] == "-h" || os.Args[1] == "--help") {
		printUsage()
		os.Exit(0)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run contains the main application logic, separated for cleaner error handling.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Starts the file watcher and the initial scan of the export directory.
	svcManager, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	defer func() {
		if closeErr := svcManager.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: error closing services: %v\n", closeErr)
		}
	}()

	model := app.NewModel(svcManager)

	// Each tab reads from the shared application state.
	state := model.GetState()
	tabs := []app.Tab{
		dashboard.New(state),
		records.New(state),
		trends.New(state, cfg.TrendThreshold),
		info.New(state, cfg),
	}
	model.SetTabs(tabs)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	go func() {
		<-sigChan
		p.Send(tea.Quit())
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// printUsage prints the command-line usage information.
func printUsage() {
	fmt.Println(`Salesdash TUI - Travel agency sales performance dashboard

Usage:
  sdt [flags]

Flags:
  -h, --help      Show this help message
  -v, --version   Show version information

Keyboard Shortcuts:
  1-4             Switch between tabs (Dashboard, Records, Trends, Info)
  Tab/Shift+Tab   Navigate between tabs
  j/k, Up/Down    Navigate lists
  m/M             Cycle trend metric
  g               Cycle trend group
  r               Rescan the export directory
  ?               Toggle help
  q, Ctrl+C       Quit

Environment Variables:
  DATABASE_PATH        SQLite database path
  WATCH_DIR            Directory scanned for CSV exports
  SENIOR_AGENTS        Comma-separated senior roster
  TREND_R2_THRESHOLD   Minimum R-squared before a trend is drawn (default: 0.95)
  INGEST_DEBOUNCE      Rescan debounce after file changes (default: 500ms)

Configuration:
  The application looks for .env files in the following locations:
  - Current directory
  - ~/.config/salesdash/.env
  - ~/.salesdash/.env`)
}
