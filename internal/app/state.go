// Package app provides the main Bubble Tea application model and state management.
package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/halloran-travel/salesdash-tui/internal/models"
)

// NotificationType defines the type of notification.
type NotificationType int

const (
	// NotificationSuccess represents a success notification.
	NotificationSuccess NotificationType = iota
	// NotificationError represents an error notification.
	NotificationError
	// NotificationInfo represents an informational notification.
	NotificationInfo
)

// Notification represents a user-facing notification message.
type Notification struct {
	ID        string
	Type      NotificationType
	Message   string
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired returns true if the notification has expired.
func (n *Notification) IsExpired() bool {
	if n.Duration <= 0 {
		return false
	}
	return time.Since(n.CreatedAt) > n.Duration
}

// AppState is the shared state every tab reads from. All access goes through
// the accessor methods; tabs never hold the lock across renders.
type AppState struct {
	mu sync.RWMutex

	data        models.TimeSeriesData
	ledger      *models.AllRecords
	files       int
	loading     bool
	lastUpdated time.Time

	// pendingUpdates is the record-toast queue: updates display one at a
	// time and auto-advance.
	pendingUpdates []models.RecordUpdate

	notifications   []Notification
	notificationSeq int
}

// NewAppState creates an empty state in the loading phase.
func NewAppState() *AppState {
	return &AppState{
		ledger:  models.NewAllRecords(),
		loading: true,
	}
}

// SetAnalysis stores the result of an analysis pass and queues its record
// updates for display.
func (s *AppState) SetAnalysis(data models.TimeSeriesData, ledger *models.AllRecords, updates []models.RecordUpdate, files int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	s.ledger = ledger
	s.files = files
	s.loading = false
	s.lastUpdated = time.Now()
	s.pendingUpdates = append(s.pendingUpdates, updates...)
}

// Data returns the current time series data.
func (s *AppState) Data() models.TimeSeriesData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

// Ledger returns the current records ledger.
func (s *AppState) Ledger() *models.AllRecords {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger
}

// Files returns how many CSV exports contributed to the current data.
func (s *AppState) Files() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.files
}

// Loading reports whether the first analysis pass is still pending.
func (s *AppState) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// LastUpdated returns the time of the latest analysis pass.
func (s *AppState) LastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdated
}

// CurrentRecordToast returns the record update currently on display, or nil
// when the queue is empty.
func (s *AppState) CurrentRecordToast() *models.RecordUpdate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.pendingUpdates) == 0 {
		return nil
	}
	u := s.pendingUpdates[0]
	return &u
}

// AdvanceRecordToast drops the currently displayed record update and reports
// whether any remain.
func (s *AppState) AdvanceRecordToast() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pendingUpdates) > 0 {
		s.pendingUpdates = s.pendingUpdates[1:]
	}
	return len(s.pendingUpdates) > 0
}

// PendingRecordToasts returns the queue length.
func (s *AppState) PendingRecordToasts() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pendingUpdates)
}

// AddNotification queues a transient notification and returns its ID.
func (s *AppState) AddNotification(t NotificationType, message string, duration time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notificationSeq++
	id := fmt.Sprintf("notif-%d", s.notificationSeq)
	s.notifications = append(s.notifications, Notification{
		ID:        id,
		Type:      t,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  duration,
	})
	return id
}

// ActiveNotifications returns unexpired notifications, pruning the rest.
func (s *AppState) ActiveNotifications() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	active := s.notifications[:0]
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	s.notifications = active
	out := make([]Notification, len(active))
	copy(out, active)
	return out
}
