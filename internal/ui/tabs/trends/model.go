// Package trends provides the trend-analysis tab.
package trends

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/halloran-travel/salesdash-tui/internal/analytics/timeseries"
	"github.com/halloran-travel/salesdash-tui/internal/app"
	"github.com/halloran-travel/salesdash-tui/internal/ui/components"
)

// groupSeries identifies which precomputed ratio series is charted.
type groupSeries int

const (
	seriesDept groupSeries = iota
	seriesSenior
	seriesNonSenior
)

func (g groupSeries) String() string {
	switch g {
	case seriesDept:
		return "Department"
	case seriesSenior:
		return "Seniors"
	case seriesNonSenior:
		return "Non-seniors"
	default:
		return "Unknown"
	}
}

// keyMap defines the key bindings specific to the trends tab.
type keyMap struct {
	NextMetric key.Binding
	PrevMetric key.Binding
	NextGroup  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextMetric: key.NewBinding(
			key.WithKeys("m", "right"),
			key.WithHelp("m", "next metric"),
		),
		PrevMetric: key.NewBinding(
			key.WithKeys("M", "left"),
			key.WithHelp("M", "prev metric"),
		),
		NextGroup: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "cycle group"),
		),
	}
}

// Model represents the trends tab state.
type Model struct {
	state     *app.AppState
	spinner   components.LoadingSpinner
	keys      keyMap
	viewport  viewport.Model
	threshold float64
	metricIdx int
	group     groupSeries
	width     int
	height    int
}

// New creates a new trends model. threshold is the minimum R-squared a fit
// needs before a trend line is drawn.
func New(state *app.AppState, threshold float64) *Model {
	return &Model{
		state:     state,
		spinner:   components.NewSpinner("Crunching trends..."),
		keys:      defaultKeyMap(),
		viewport:  viewport.New(0, 0),
		threshold: threshold,
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

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	metricCount := len(timeseries.RatioMetrics)

	switch {
	case key.Matches(msg, m.keys.NextMetric):
		m.metricIdx = (m.metricIdx + 1) % metricCount
	case key.Matches(msg, m.keys.PrevMetric):
		m.metricIdx = (m.metricIdx - 1 + metricCount) % metricCount
	case key.Matches(msg, m.keys.NextGroup):
		m.group = (m.group + 1) % 3
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
	return nil
}

// metric returns the currently selected ratio metric.
func (m *Model) metric() timeseries.RatioMetric {
	return timeseries.RatioMetrics[m.metricIdx]
}

// SetSize sets the available size for the trends tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{
		m.keys.NextMetric,
		m.keys.PrevMetric,
		m.keys.NextGroup,
	}
}
