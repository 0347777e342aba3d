package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/halloran-travel/salesdash-tui/internal/services"
)

const (
	// DefaultTickInterval is the interval between housekeeping ticks.
	DefaultTickInterval = 2 * time.Second

	// DefaultNotificationDuration is the default duration for notifications.
	DefaultNotificationDuration = 5 * time.Second

	// LongNotificationDuration is for important notifications.
	LongNotificationDuration = 10 * time.Second

	// RecordToastDuration is how long each record toast stays on screen
	// before the queue advances.
	RecordToastDuration = 4 * time.Second
)

// tickCmd returns a command that sends a TickMsg after the specified interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// defaultTickCmd returns a command that sends a TickMsg after the default interval.
func defaultTickCmd() tea.Cmd {
	return tickCmd(DefaultTickInterval)
}

// waitForServiceEventCmd blocks until the next service event arrives and
// converts it into a Bubble Tea message.
func waitForServiceEventCmd(ch <-chan services.ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		switch e := event.(type) {
		case services.AnalysisEvent:
			return AnalysisMsg{Event: e}
		case services.ErrorEvent:
			return ServiceErrorMsg{Event: e}
		default:
			return nil
		}
	}
}

// refreshCmd asks the service manager to rescan the watched directory.
func refreshCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		mgr.Refresh()
		return nil
	}
}

// recordToastAdvanceCmd schedules rotation to the next queued record toast.
func recordToastAdvanceCmd() tea.Cmd {
	return tea.Tick(RecordToastDuration, func(_ time.Time) tea.Msg {
		return RecordToastAdvanceMsg{}
	})
}

// notifyErrorCmd returns a command that adds an error notification.
func notifyErrorCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationError,
			Message:  message,
			Duration: LongNotificationDuration,
		}
	}
}

// notifyInfoCmd returns a command that adds an info notification.
func notifyInfoCmd(message string) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     NotificationInfo,
			Message:  message,
			Duration: DefaultNotificationDuration,
		}
	}
}
