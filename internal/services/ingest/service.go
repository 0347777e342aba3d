// Package ingest loads trip activity CSV exports from a drop directory into
// per-agent event count maps, rescanning when the directory changes.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/halloran-travel/salesdash-tui/internal/analytics/dateutil"
	"github.com/halloran-travel/salesdash-tui/internal/logger"
	"github.com/halloran-travel/salesdash-tui/internal/models"
)

// EventType defines the type of ingest event.
type EventType int

const (
	// EventCountsLoaded carries a fresh set of count maps.
	EventCountsLoaded EventType = iota
	// EventError reports a scan or watch failure.
	EventError
)

// Event is emitted on the service's event channel.
type Event struct {
	Type   EventType
	Counts models.CountMaps
	Files  int
	Error  error
}

var log = logger.With("ingest")

// Service watches a drop directory of CSV exports and re-tallies counts on
// change, debouncing bursts of file writes.
type Service struct {
	mu            sync.Mutex
	dir           string
	debounce      time.Duration
	watcher       *fsnotify.Watcher
	eventChan     chan Event
	stopChan      chan struct{}
	debounceTimer *time.Timer
}

// New creates the ingest service, runs an initial scan, and starts watching.
func New(dir string, debounce time.Duration) (*Service, error) {
	s := &Service{
		dir:       dir,
		debounce:  debounce,
		eventChan: make(chan Event, 16),
		stopChan:  make(chan struct{}),
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create watch directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to start file watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	s.watcher = watcher

	go s.watchLoop()
	s.Refresh()

	return s, nil
}

// Events returns the channel ingest events are delivered on.
func (s *Service) Events() <-chan Event {
	return s.eventChan
}

// Refresh rescans the drop directory immediately.
func (s *Service) Refresh() {
	counts, files, err := LoadDir(s.dir)
	if err != nil {
		s.emit(Event{Type: EventError, Error: err})
		return
	}
	s.emit(Event{Type: EventCountsLoaded, Counts: counts, Files: files})
}

// Close stops the watcher and closes the event channel.
func (s *Service) Close() error {
	close(s.stopChan)
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}

func (s *Service) emit(event Event) {
	select {
	case s.eventChan <- event:
	default:
		log.Warn("event channel full, dropping event")
	}
}

func (s *Service) watchLoop() {
	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !isCSV(event.Name) {
				continue
			}
			s.scheduleRescan()

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.emit(Event{Type: EventError, Error: err})

		case <-s.stopChan:
			return
		}
	}
}

// scheduleRescan coalesces rapid file events into one rescan.
func (s *Service) scheduleRescan() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
	}
	s.debounceTimer = time.AfterFunc(s.debounce, s.Refresh)
}

func isCSV(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".csv")
}

// LoadDir tallies every CSV file in dir into one set of count maps and
// returns how many files contributed.
func LoadDir(dir string) (models.CountMaps, int, error) {
	counts := models.NewCountMaps()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return counts, 0, fmt.Errorf("failed to read watch directory: %w", err)
	}

	files := 0
	for _, entry := range entries {
		if entry.IsDir() || !isCSV(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		f, err := os.Open(path)
		if err != nil {
			log.Error("failed to open export", "file", path, "error", err)
			continue
		}
		if err := Tally(f, counts); err != nil {
			log.Error("failed to parse export", "file", path, "error", err)
			_ = f.Close()
			continue
		}
		_ = f.Close()
		files++
	}
	return counts, files, nil
}

// column indices resolved from a CSV header.
type layout struct {
	agent, date, event, count int
}

// Tally reads one activity CSV (agent, date, event[, count] columns in any
// order) into the supplied count maps. Rows with unparseable dates are
// tallied under the "unknown" date key rather than dropped.
func Tally(r io.Reader, counts models.CountMaps) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}

	lay, err := resolveLayout(header)
	if err != nil {
		return err
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read row: %w", err)
		}
		tallyRow(row, lay, counts)
	}
	return nil
}

func resolveLayout(header []string) (layout, error) {
	lay := layout{agent: -1, date: -1, event: -1, count: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "agent", "agent_name", "rep":
			lay.agent = i
		case "date", "trip_date", "created":
			lay.date = i
		case "event", "type", "event_type":
			lay.event = i
		case "count", "qty":
			lay.count = i
		}
	}
	if lay.agent < 0 || lay.date < 0 || lay.event < 0 {
		return lay, fmt.Errorf("header is missing agent/date/event columns: %v", header)
	}
	return lay, nil
}

func tallyRow(row []string, lay layout, counts models.CountMaps) {
	field := func(i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	agent := field(lay.agent)
	if agent == "" {
		return
	}

	target := bucketFor(field(lay.event), counts)
	if target == nil {
		return
	}

	key := models.UnknownDateKey
	if t, ok := dateutil.Parse(field(lay.date)); ok {
		key = dateutil.FormatKey(t)
	}

	n := 1
	if raw := field(lay.count); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			n = parsed
		}
	}

	if target[agent] == nil {
		target[agent] = make(map[string]int)
	}
	target[agent][key] += n
}

// bucketFor maps an event label onto one of the six count maps, nil when the
// label is unrecognized.
func bucketFor(event string, counts models.CountMaps) map[string]map[string]int {
	switch strings.ToLower(strings.ReplaceAll(event, " ", "_")) {
	case "trip", "trips":
		return counts.Trips
	case "quote", "quotes":
		return counts.Quotes
	case "passthrough", "passthroughs", "pass":
		return counts.Passthroughs
	case "hot_pass", "hotpass", "hot_passes":
		return counts.HotPasses
	case "booking", "bookings", "booked":
		return counts.Bookings
	case "non_converted", "nonconverted", "no_sale":
		return counts.NonConverted
	default:
		return nil
	}
}
