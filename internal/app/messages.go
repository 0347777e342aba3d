package app

import (
	"time"

	"github.com/halloran-travel/salesdash-tui/internal/services"
)

// TickMsg is sent periodically to prune expired notifications.
type TickMsg struct {
	Time time.Time
}

// AnalysisMsg carries the result of an ingest-and-analyze pass.
type AnalysisMsg struct {
	Event services.AnalysisEvent
}

// ServiceErrorMsg wraps an error event from the service manager.
type ServiceErrorMsg struct {
	Event services.ErrorEvent
}

// RecordToastAdvanceMsg rotates the record-toast queue to the next update.
type RecordToastAdvanceMsg struct{}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Type     NotificationType
	Message  string
	Duration time.Duration
}

// RefreshMsg requests a rescan of the watched directory.
type RefreshMsg struct{}

// TabSwitchMsg requests switching to a specific tab.
type TabSwitchMsg struct {
	Tab TabID
}

// ToggleHelpMsg toggles the help display.
type ToggleHelpMsg struct{}
