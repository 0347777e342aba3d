// Package records provides the personal-records ledger tab.
package records

import (
	"sort"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/halloran-travel/salesdash-tui/internal/app"
	"github.com/halloran-travel/salesdash-tui/internal/ui/components"
)

// keyMap defines the key bindings specific to the records tab.
type keyMap struct {
	NextAgent key.Binding
	PrevAgent key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextAgent: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j", "next agent"),
		),
		PrevAgent: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k", "prev agent"),
		),
	}
}

// Model represents the records tab state.
type Model struct {
	state         *app.AppState
	spinner       components.LoadingSpinner
	keys          keyMap
	viewport      viewport.Model
	width         int
	height        int
	selectedIndex int
}

// New creates a new records model.
func New(state *app.AppState) *Model {
	return &Model{
		state:    state,
		spinner:  components.NewSpinner("Loading records..."),
		keys:     defaultKeyMap(),
		viewport: viewport.New(0, 0),
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Init()
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmds = append(cmds, m.handleKeyMsg(msg))

	case app.AnalysisMsg:
		if count := len(m.agentNames()); m.selectedIndex >= count && count > 0 {
			m.selectedIndex = count - 1
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	count := len(m.agentNames())

	switch {
	case key.Matches(msg, m.keys.NextAgent):
		if count > 0 {
			m.selectedIndex = (m.selectedIndex + 1) % count
		}
	case key.Matches(msg, m.keys.PrevAgent):
		if count > 0 {
			m.selectedIndex = (m.selectedIndex - 1 + count) % count
		}
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
	return nil
}

// agentNames returns the ledger's agents in stable alphabetical order.
func (m *Model) agentNames() []string {
	ledger := m.state.Ledger()
	if ledger == nil {
		return nil
	}
	names := make([]string, 0, len(ledger.Agents))
	for name := range ledger.Agents {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetSize sets the available size for the records tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{
		m.keys.NextAgent,
		m.keys.PrevAgent,
	}
}
