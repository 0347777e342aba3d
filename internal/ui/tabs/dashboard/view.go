package dashboard

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/halloran-travel/salesdash-tui/internal/models"
	"github.com/halloran-travel/salesdash-tui/internal/ui/components"
	"github.com/halloran-travel/salesdash-tui/internal/ui/styles"
)

// ratioRows pairs a bar label with the accessor for its latest-day value.
var ratioRows = []struct {
	label string
	value func(p models.DailyRatioPoint) float64
}{
	{"Trip → Quote", func(p models.DailyRatioPoint) float64 { return p.TripToQuote }},
	{"Trip → Pass", func(p models.DailyRatioPoint) float64 { return p.TripToPass }},
	{"Pass → Quote", func(p models.DailyRatioPoint) float64 { return p.PassToQuote }},
	{"Hot pass", func(p models.DailyRatioPoint) float64 { return p.HotPassRate }},
	{"Booking", func(p models.DailyRatioPoint) float64 { return p.BookingRate }},
	{"Non-converted", func(p models.DailyRatioPoint) float64 { return p.NonConvertedRate }},
}

// View renders the dashboard tab.
func (m *Model) View() string {
	if m.state.Loading() {
		return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
	}

	data := m.state.Data()

	var sections []string
	sections = append(sections, m.renderTitle(data))
	sections = append(sections, m.renderDeptCard(data))
	sections = append(sections, m.renderLeaderboard(data))
	sections = append(sections, m.renderSelectedAgent(data))

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderTitle(data models.TimeSeriesData) string {
	title := styles.TitleStyle.Render("Sales Dashboard")

	subtitle := "No exports found in the watch directory"
	if data.FirstDate != "" {
		subtitle = fmt.Sprintf("%s to %s · %d agents · %d files",
			data.FirstDate, data.LastDate, len(data.Agents), m.state.Files())
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, styles.HelpStyle.Render(subtitle), "")
}

// renderDeptCard shows the department conversion bars for the latest day.
func (m *Model) renderDeptCard(data models.TimeSeriesData) string {
	cardWidth := max(m.width-6, 40)

	rows := []string{styles.CardTitleStyle.Render("Department · latest day")}

	if len(data.Dept) == 0 {
		rows = append(rows, styles.HelpStyle.Render("No data available"))
		return styles.CardStyle.Width(cardWidth).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	latest := data.Dept[len(data.Dept)-1]
	rows = append(rows, styles.HelpStyle.Render(latest.Date), "")
	for i, row := range ratioRows {
		m.rateBars[i].SetPercent(row.value(latest))
		rows = append(rows, m.rateBars[i].View())
	}

	return styles.CardStyle.Width(cardWidth).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// renderLeaderboard ranks agents by total trips over the full range.
func (m *Model) renderLeaderboard(data models.TimeSeriesData) string {
	cardWidth := max(m.width-6, 40)

	rows := []string{styles.CardTitleStyle.Render("Trip Leaderboard")}

	if len(data.Agents) == 0 {
		rows = append(rows, styles.HelpStyle.Render("No agents yet"))
		return styles.CardStyle.Width(cardWidth).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	values := make([]float64, len(data.Agents))
	labels := make([]string, len(data.Agents))
	for i, agent := range data.Agents {
		total := 0
		for _, day := range agent.Days {
			total += day.Trips
		}
		values[i] = float64(total)
		labels[i] = agent.Agent
	}

	rows = append(rows, components.RenderBarChart(values, labels, cardWidth-6))

	return styles.CardStyle.Width(cardWidth).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// renderSelectedAgent shows range totals for the highlighted agent.
func (m *Model) renderSelectedAgent(data models.TimeSeriesData) string {
	if len(data.Agents) == 0 || m.selectedIndex >= len(data.Agents) {
		return ""
	}
	agent := data.Agents[m.selectedIndex]
	cardWidth := max(m.width-6, 40)

	name := lipgloss.NewStyle().Bold(true).Render(agent.Agent)
	if data.IsSenior(agent.Agent) {
		name += " " + styles.SeniorBadgeStyle.Render("◆ SENIOR")
	}

	var trips, quotes, passes, hot, bookings, lost int
	for _, day := range agent.Days {
		trips += day.Trips
		quotes += day.Quotes
		passes += day.Passthroughs
		hot += day.HotPasses
		bookings += day.Bookings
		lost += day.NonConverted
	}

	totals := fmt.Sprintf("trips %d · quotes %d · passes %d · hot %d · bookings %d · lost %d",
		trips, quotes, passes, hot, bookings, lost)

	pointer := lipgloss.NewStyle().Foreground(styles.Primary).Render("▸ ")
	rows := []string{
		styles.CardTitleStyle.Render("Selected Agent"),
		pointer + name,
		styles.HelpStyle.Render(totals),
	}

	return styles.CardStyle.Width(cardWidth).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
