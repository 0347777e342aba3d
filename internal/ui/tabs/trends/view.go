package trends

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/halloran-travel/salesdash-tui/internal/analytics/regression"
	"github.com/halloran-travel/salesdash-tui/internal/analytics/timeseries"
	"github.com/halloran-travel/salesdash-tui/internal/models"
	"github.com/halloran-travel/salesdash-tui/internal/ui/components"
	"github.com/halloran-travel/salesdash-tui/internal/ui/styles"
)

// metricLabels maps ratio metric keys to display names.
var metricLabels = map[string]string{
	"trip_to_quote":      "Trip → Quote",
	"trip_to_pass":       "Trip → Pass",
	"pass_to_quote":      "Pass → Quote",
	"hot_pass_rate":      "Hot Pass Rate",
	"booking_rate":       "Booking Rate",
	"non_converted_rate": "Non-converted Rate",
}

// View renders the trends tab.
func (m *Model) View() string {
	if m.state.Loading() {
		return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
	}

	dates, ys := m.seriesValues(m.state.Data())

	var sections []string
	sections = append(sections, m.renderTitle())

	if len(ys) == 0 {
		sections = append(sections, styles.HelpStyle.Render("No data available"))
	} else {
		sections = append(sections, m.renderChart(dates, ys))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Trends")
	label := metricLabels[string(m.metric())]
	subtitle := fmt.Sprintf("%s · %s · trend drawn when R² ≥ %.2f", m.group, label, m.threshold)
	return lipgloss.JoinVertical(lipgloss.Left, title, styles.HelpStyle.Render(subtitle), "")
}

// seriesValues projects the selected group and metric through the chart
// merge, treating missing keys as gaps that simply drop out of the series.
func (m *Model) seriesValues(data models.TimeSeriesData) (dates []string, ys []float64) {
	metric := m.metric()

	// Full range; MergeForChart clamps the end index to the axis.
	opts := timeseries.ChartOptions{
		StartIdx:         0,
		EndIdx:           1 << 30,
		Metrics:          []timeseries.RatioMetric{metric},
		IncludeDept:      m.group == seriesDept,
		IncludeSenior:    m.group == seriesSenior,
		IncludeNonSenior: m.group == seriesNonSenior,
	}

	key := m.seriesKey()
	for _, row := range timeseries.MergeForChart(data, opts) {
		value, ok := row.Values[key]
		if !ok {
			continue
		}
		dates = append(dates, row.Date)
		ys = append(ys, value)
	}
	return dates, ys
}

func (m *Model) seriesKey() string {
	prefix := "dept"
	switch m.group {
	case seriesSenior:
		prefix = "senior"
	case seriesNonSenior:
		prefix = "nonsenior"
	}
	return timeseries.SeriesKey(prefix, m.metric())
}

func (m *Model) renderChart(dates []string, ys []float64) string {
	metric := m.metric()

	xs := make([]float64, len(ys))
	for i := range ys {
		xs[i] = float64(i)
	}

	fit := regression.SelectBest(xs, ys, m.threshold)

	cardWidth := max(m.width-6, 50)
	chartWidth := max(cardWidth-12, 30)
	chartHeight := max(m.height-14, 6)

	caption := fmt.Sprintf("%s to %s", dates[0], dates[len(dates)-1])
	chart := components.RenderTrendChart(ys, fit, chartWidth, chartHeight, caption)
	footer := styles.HelpStyle.Render(components.TrendSummary(fit))

	rows := []string{
		styles.CardTitleStyle.Render(metricLabels[string(metric)]),
		chart,
		"",
		footer,
	}

	return styles.CardStyle.Width(cardWidth).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
