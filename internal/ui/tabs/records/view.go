package records

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/halloran-travel/salesdash-tui/internal/models"
	"github.com/halloran-travel/salesdash-tui/internal/ui/components"
	"github.com/halloran-travel/salesdash-tui/internal/ui/styles"
)

// View renders the records tab.
func (m *Model) View() string {
	if m.state.Loading() {
		return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
	}

	var sections []string
	sections = append(sections, m.renderTitle())
	sections = append(sections, m.renderAgentList())
	sections = append(sections, m.renderRecordTable())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Personal Records")

	ledger := m.state.Ledger()
	subtitle := "No records yet"
	if ledger != nil && len(ledger.Agents) > 0 {
		subtitle = fmt.Sprintf("%d agents · updated %s",
			len(ledger.Agents), ledger.LastUpdated.Format("2006-01-02 15:04"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, styles.HelpStyle.Render(subtitle), "")
}

func (m *Model) renderAgentList() string {
	names := m.agentNames()
	if len(names) == 0 {
		return ""
	}

	data := m.state.Data()
	var items []string
	for i, name := range names {
		prefix := "  "
		style := styles.HelpStyle
		if i == m.selectedIndex {
			prefix = lipgloss.NewStyle().Foreground(styles.Primary).Render("▸ ")
			style = lipgloss.NewStyle().Bold(true)
		}
		label := style.Render(name)
		if data.IsSenior(name) {
			label += " " + styles.SeniorBadgeStyle.Render("◆")
		}
		items = append(items, prefix+label)
	}

	return lipgloss.JoinVertical(lipgloss.Left, items...) + "\n"
}

// renderRecordTable shows the selected agent's best values per metric and
// granularity. Rate records have no weekly slot.
func (m *Model) renderRecordTable() string {
	names := m.agentNames()
	if len(names) == 0 || m.selectedIndex >= len(names) {
		return styles.HelpStyle.Render("Records appear after the first analysis pass")
	}

	agent := names[m.selectedIndex]
	recs := m.state.Ledger().Agents[agent]
	cardWidth := max(m.width-6, 50)

	grans := []models.Granularity{
		models.GranularityWeek, models.GranularityMonth, models.GranularityQuarter,
	}

	header := fmt.Sprintf("%-16s %12s %12s %12s", "Metric", "Week", "Month", "Quarter")
	rows := []string{
		styles.CardTitleStyle.Render(agent),
		styles.TableHeaderStyle.Render(header),
	}

	metrics := append(append([]models.Metric{}, models.VolumeMetrics...), models.RateMetrics...)
	for _, metric := range metrics {
		cells := []string{fmt.Sprintf("%-16s", metric.String())}
		for _, g := range grans {
			cells = append(cells, fmt.Sprintf("%12s", formatCell(metric, g, recs.Get(metric, g))))
		}
		rows = append(rows, styles.TableCellStyle.Render(strings.Join(cells, " ")))
	}

	rows = append(rows, "", m.renderBestPeriods(recs))

	return styles.CardStyle.Width(cardWidth).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// renderBestPeriods lists when each monthly record was set.
func (m *Model) renderBestPeriods(recs *models.AgentRecords) string {
	var lines []string
	metrics := append(append([]models.Metric{}, models.VolumeMetrics...), models.RateMetrics...)
	for _, metric := range metrics {
		entry := recs.Get(metric, models.GranularityMonth)
		if entry == nil {
			continue
		}
		lines = append(lines, styles.HelpStyle.Render(
			fmt.Sprintf("best %s month: %s to %s", metric.String(), entry.PeriodStart, entry.PeriodEnd)))
	}
	if len(lines) == 0 {
		return styles.HelpStyle.Render("No monthly records yet")
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func formatCell(metric models.Metric, g models.Granularity, entry *models.RecordEntry) string {
	if metric.IsRate() && g == models.GranularityWeek {
		return "n/a"
	}
	if entry == nil {
		return "·"
	}
	if metric.IsRate() {
		return fmt.Sprintf("%.1f%%", entry.Value)
	}
	return fmt.Sprintf("%.0f", entry.Value)
}
