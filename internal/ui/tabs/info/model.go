// Package info provides the configuration and about tab.
package info

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/halloran-travel/salesdash-tui/internal/app"
	"github.com/halloran-travel/salesdash-tui/internal/config"
)

// Model represents the info tab state.
type Model struct {
	state    *app.AppState
	config   *config.Config
	viewport viewport.Model
	width    int
	height   int
}

// New creates a new info model.
func New(state *app.AppState, cfg *config.Config) *Model {
	return &Model{
		state:    state,
		config:   cfg,
		viewport: viewport.New(0, 0),
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmd tea.Cmd
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		m.viewport, cmd = m.viewport.Update(keyMsg)
	}
	return m, cmd
}

// SetSize sets the available size for the info tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return nil
}
