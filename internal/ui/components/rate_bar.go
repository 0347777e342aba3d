// Package components provides reusable UI components.
package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/halloran-travel/salesdash-tui/internal/ui/styles"
)

// RateBar renders a conversion-rate progress bar with label and percentage.
type RateBar struct {
	progress progress.Model
	label    string
	percent  float64
}

// NewRateBar creates a rate bar with gradient colors.
func NewRateBar(label string) RateBar {
	p := progress.New(
		progress.WithScaledGradient("#ff6b6b", "#51cf66"),
		progress.WithWidth(30),
		progress.WithoutPercentage(),
	)
	return RateBar{progress: p, label: label}
}

// SetPercent sets the displayed percentage. Conversion rates live on a 0-100
// scale but group sums can briefly exceed it; the bar clamps, the numeral
// does not.
func (b *RateBar) SetPercent(percent float64) {
	b.percent = percent
}

// SetWidth adjusts the bar width.
func (b *RateBar) SetWidth(width int) {
	if width < 10 {
		width = 10
	}
	b.progress.Width = width
}

// View renders the bar with its label and numeric percentage.
func (b RateBar) View() string {
	frac := b.percent / 100
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}

	label := lipgloss.NewStyle().Foreground(styles.TextSecondary).Width(18).Render(b.label)
	value := styles.GetRateStyle(b.percent).Render(fmt.Sprintf("%5.1f%%", b.percent))
	return label + " " + b.progress.ViewAs(frac) + " " + value
}
