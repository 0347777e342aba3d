// Package components provides reusable UI components for the TUI.
package components

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/halloran-travel/salesdash-tui/internal/models"
	"github.com/halloran-travel/salesdash-tui/internal/ui/styles"
)

// RenderLineChart creates a single-series ASCII line chart.
func RenderLineChart(data []float64, width, height int, caption string) string {
	if len(data) == 0 {
		return styles.HelpStyle.Render("No data available")
	}
	if width < 20 {
		width = 20
	}
	if height < 3 {
		height = 3
	}

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// RenderTrendChart plots a metric series with its fitted trend overlaid.
// When fit is nil only the raw series is drawn; callers get a nil fit from
// the regression selector when no model qualifies, and must not fabricate a
// trend line in that case.
func RenderTrendChart(data []float64, fit *models.RegressionResult, width, height int, caption string) string {
	if len(data) == 0 {
		return styles.HelpStyle.Render("No data available")
	}
	if width < 20 {
		width = 20
	}
	if height < 3 {
		height = 3
	}

	if fit == nil || len(fit.PredictedValues) != len(data) {
		return RenderLineChart(data, width, height, caption)
	}

	return asciigraph.PlotMany([][]float64{data, fit.PredictedValues},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(
			asciigraph.Blue,
			asciigraph.Red,
		),
	)
}

// RenderBarChart creates a simple horizontal bar chart.
func RenderBarChart(values []float64, labels []string, width int) string {
	if len(values) == 0 {
		return ""
	}

	maxVal := 0.0
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	maxLabelLen := 0
	for _, l := range labels {
		if len(l) > maxLabelLen {
			maxLabelLen = len(l)
		}
	}

	barWidth := width - maxLabelLen - 10 // Leave room for label and value
	if barWidth < 10 {
		barWidth = 10
	}

	var lines []string
	for i, v := range values {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		paddedLabel := fmt.Sprintf("%*s", maxLabelLen, label)

		barLen := int((v / maxVal) * float64(barWidth))
		if barLen < 0 {
			barLen = 0
		}

		bar := strings.Repeat("█", barLen)
		valueStr := fmt.Sprintf(" %.1f", v)
		lines = append(lines, paddedLabel+" │"+bar+valueStr)
	}

	return strings.Join(lines, "\n")
}

// TrendSummary describes a fitted trend in one line, e.g. for chart footers.
func TrendSummary(fit *models.RegressionResult) string {
	if fit == nil {
		return "no qualifying trend"
	}
	shape := "linear"
	if fit.Type == models.RegressionLogLinear {
		shape = "exponential"
	}
	direction := "flat"
	if fit.Slope > 0 {
		direction = "rising"
	} else if fit.Slope < 0 {
		direction = "falling"
	}
	return fmt.Sprintf("%s trend, %s (R²=%.3f)", shape, direction, fit.RSquared)
}
