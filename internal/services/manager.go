// Package services provides service orchestration for the TUI.
package services

import (
	"fmt"
	"sync"

	"github.com/gen2brain/beeep"

	"github.com/halloran-travel/salesdash-tui/internal/analytics/records"
	"github.com/halloran-travel/salesdash-tui/internal/analytics/timeseries"
	"github.com/halloran-travel/salesdash-tui/internal/config"
	"github.com/halloran-travel/salesdash-tui/internal/logger"
	"github.com/halloran-travel/salesdash-tui/internal/models"
	"github.com/halloran-travel/salesdash-tui/internal/services/ingest"
	"github.com/halloran-travel/salesdash-tui/internal/storage"
)

// How many record breaks get their own desktop notification before the rest
// collapse into a summary.
const maxRecordToasts = 3

type (
	// AnalysisEvent is emitted after each analysis pass over the drop
	// directory.
	AnalysisEvent struct {
		Data    models.TimeSeriesData
		Ledger  *models.AllRecords
		Updates []models.RecordUpdate
		Files   int
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Service string
		Error   error
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (AnalysisEvent) isServiceEvent() {}
func (ErrorEvent) isServiceEvent()    {}

// Manager orchestrates ingest, analysis, persistence and event routing.
type Manager struct {
	mu          sync.RWMutex
	cfg         *config.Config
	ingest      *ingest.Service
	store       storage.Store
	eventChan   chan ServiceEvent
	stopChan    chan struct{}
	subscribers []chan<- ServiceEvent

	// notify is swapped out in tests to avoid real desktop notifications.
	notify func(title, body string)
}

// NewManager creates a new service manager.
func NewManager(cfg *config.Config) (*Manager, error) {
	m := &Manager{
		cfg:       cfg,
		eventChan: make(chan ServiceEvent, 100),
		stopChan:  make(chan struct{}),
		notify: func(title, body string) {
			_ = beeep.Notify(title, body, "")
		},
	}

	store, err := storage.NewSQLiteStore(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	m.store = store
	logger.Info("records store ready", "path", store.Path())

	m.ingest, err = ingest.New(cfg.WatchDir, cfg.IngestDebounce)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to initialize ingest: %w", err)
	}

	go m.routeEvents()

	return m, nil
}

// Config returns the configuration the manager was built with.
func (m *Manager) Config() *config.Config {
	return m.cfg
}

// Events returns the main event channel.
func (m *Manager) Events() <-chan ServiceEvent {
	return m.eventChan
}

// Subscribe registers an additional event channel. Delivery is best-effort:
// a full subscriber misses the event.
func (m *Manager) Subscribe(ch chan<- ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers = append(m.subscribers, ch)
}

// Refresh forces a rescan of the drop directory.
func (m *Manager) Refresh() {
	m.ingest.Refresh()
}

// Close stops all services.
func (m *Manager) Close() error {
	close(m.stopChan)
	if err := m.ingest.Close(); err != nil {
		logger.Error("failed to close ingest service", "error", err)
	}
	return m.store.Close()
}

// routeEvents routes events from individual services to subscribers.
func (m *Manager) routeEvents() {
	for {
		select {
		case event, ok := <-m.ingest.Events():
			if !ok {
				return
			}
			switch event.Type {
			case ingest.EventCountsLoaded:
				m.runAnalysis(event.Counts, event.Files)
			case ingest.EventError:
				m.broadcast(ErrorEvent{Service: "ingest", Error: event.Error})
			}

		case <-m.stopChan:
			return
		}
	}
}

// runAnalysis executes one full pass: normalize counts into time series, run
// the records tracker against the persisted ledger, persist the new ledger
// wholesale, and broadcast the results. Passes are serialized by the event
// loop, so the ledger read-modify-write never races itself.
func (m *Manager) runAnalysis(counts models.CountMaps, files int) {
	series := timeseries.Build(counts)
	data := timeseries.BuildTimeSeriesData(series, m.cfg.SeniorAgents)

	prev := storage.LoadRecords(m.store)
	ledger, updates := records.Analyze(prev, data)

	if err := storage.SaveRecords(m.store, ledger); err != nil {
		logger.Error("failed to persist records ledger", "error", err)
		m.broadcast(ErrorEvent{Service: "records", Error: err})
	}

	if len(updates) > 0 {
		logger.Info("analysis pass complete",
			"agents", len(data.Agents), "files", files, "records_broken", len(updates))
		m.notifyRecordUpdates(updates)
	}

	m.broadcast(AnalysisEvent{
		Data:    data,
		Ledger:  ledger,
		Updates: updates,
		Files:   files,
	})
}

func (m *Manager) notifyRecordUpdates(updates []models.RecordUpdate) {
	for i, u := range updates {
		if i == maxRecordToasts {
			m.notify("More records broken",
				fmt.Sprintf("%d further personal records were set this pass", len(updates)-maxRecordToasts))
			return
		}
		title := fmt.Sprintf("New record: %s", u.Agent)
		body := fmt.Sprintf("%s (%s) hit %s", u.Metric, u.Granularity, formatValue(u))
		m.notify(title, body)
	}
}

func formatValue(u models.RecordUpdate) string {
	if u.Metric.IsRate() {
		return fmt.Sprintf("%.1f%%", u.Value)
	}
	return fmt.Sprintf("%.0f", u.Value)
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	select {
	case m.eventChan <- event:
	default:
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
		}
	}
}
