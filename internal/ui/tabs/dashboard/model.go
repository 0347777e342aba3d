// Package dashboard provides the department overview tab.
package dashboard

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/halloran-travel/salesdash-tui/internal/app"
	"github.com/halloran-travel/salesdash-tui/internal/ui/components"
)

// keyMap defines the key bindings specific to the dashboard tab.
type keyMap struct {
	NextAgent  key.Binding
	PrevAgent  key.Binding
	FirstAgent key.Binding
	LastAgent  key.Binding
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
		FirstAgent: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "first agent"),
		),
		LastAgent: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "last agent"),
		),
	}
}

// Model represents the dashboard tab state.
type Model struct {
	state         *app.AppState
	spinner       components.LoadingSpinner
	keys          keyMap
	viewport      viewport.Model
	rateBars      []components.RateBar
	width         int
	height        int
	selectedIndex int
}

// New creates a new dashboard model.
func New(state *app.AppState) *Model {
	bars := make([]components.RateBar, len(ratioRows))
	for i, row := range ratioRows {
		bars[i] = components.NewRateBar(row.label)
	}
	return &Model{
		state:    state,
		spinner:  components.NewSpinner("Scanning exports..."),
		keys:     defaultKeyMap(),
		viewport: viewport.New(0, 0),
		rateBars: bars,
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
		m.clampSelection()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	agentCount := len(m.state.Data().Agents)

	switch {
	case key.Matches(msg, m.keys.NextAgent):
		if agentCount > 0 {
			m.selectedIndex = (m.selectedIndex + 1) % agentCount
		}
	case key.Matches(msg, m.keys.PrevAgent):
		if agentCount > 0 {
			m.selectedIndex = (m.selectedIndex - 1 + agentCount) % agentCount
		}
	case key.Matches(msg, m.keys.FirstAgent):
		m.selectedIndex = 0
	case key.Matches(msg, m.keys.LastAgent):
		if agentCount > 0 {
			m.selectedIndex = agentCount - 1
		}
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) clampSelection() {
	agentCount := len(m.state.Data().Agents)
	if agentCount == 0 {
		m.selectedIndex = 0
	} else if m.selectedIndex >= agentCount {
		m.selectedIndex = agentCount - 1
	}
}

// SetSize sets the available size for the dashboard.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height

	barWidth := max(width/3, 10)
	for i := range m.rateBars {
		m.rateBars[i].SetWidth(barWidth)
	}
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{
		m.keys.NextAgent,
		m.keys.PrevAgent,
	}
}
