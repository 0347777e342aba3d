package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/halloran-travel/salesdash-tui/internal/models"
)

func TestRenderLineChart_Empty(t *testing.T) {
	out := RenderLineChart(nil, 40, 6, "caption")
	if !strings.Contains(ansi.Strip(out), "No data") {
		t.Errorf("expected no-data message, got %q", out)
	}
}

func TestRenderLineChart_Caption(t *testing.T) {
	out := RenderLineChart([]float64{1, 2, 3}, 40, 6, "trip->quote")
	if !strings.Contains(out, "trip->quote") {
		t.Error("caption missing from chart")
	}
}

func TestRenderTrendChart_NilFitFallsBack(t *testing.T) {
	data := []float64{1, 5, 2, 8}
	with := RenderTrendChart(data, nil, 40, 6, "c")
	without := RenderLineChart(data, 40, 6, "c")
	if with != without {
		t.Error("nil fit should render the plain chart")
	}
}

func TestRenderTrendChart_MismatchedPredictions(t *testing.T) {
	data := []float64{1, 2, 3}
	fit := &models.RegressionResult{PredictedValues: []float64{1, 2}}
	out := RenderTrendChart(data, fit, 40, 6, "c")
	if out == "" {
		t.Error("expected a chart despite prediction length mismatch")
	}
}

func TestRenderBarChart(t *testing.T) {
	out := RenderBarChart([]float64{10, 5}, []string{"Ana", "Ben"}, 60)
	if !strings.Contains(out, "Ana") || !strings.Contains(out, "Ben") {
		t.Errorf("labels missing: %q", out)
	}
	if !strings.Contains(out, "10.0") {
		t.Errorf("values missing: %q", out)
	}
}

func TestRenderBarChart_Empty(t *testing.T) {
	if out := RenderBarChart(nil, nil, 60); out != "" {
		t.Errorf("expected empty string, got %q", out)
	}
}

func TestTrendSummary(t *testing.T) {
	if got := TrendSummary(nil); got != "no qualifying trend" {
		t.Errorf("nil summary = %q", got)
	}
	fit := &models.RegressionResult{Type: models.RegressionLogLinear, Slope: 0.2, RSquared: 0.99}
	got := TrendSummary(fit)
	if !strings.Contains(got, "exponential") || !strings.Contains(got, "rising") {
		t.Errorf("summary = %q", got)
	}
}

func TestRateBar_View(t *testing.T) {
	bar := NewRateBar("Trip→Quote")
	bar.SetPercent(42.5)
	out := ansi.Strip(bar.View())
	if !strings.Contains(out, "42.5%") {
		t.Errorf("percent missing: %q", out)
	}
	if !strings.Contains(out, "Trip→Quote") {
		t.Errorf("label missing: %q", out)
	}
}

func TestRateBar_Clamps(t *testing.T) {
	bar := NewRateBar("x")
	bar.SetPercent(250)
	out := ansi.Strip(bar.View())
	// The numeral is honest even when the bar clamps.
	if !strings.Contains(out, "250.0%") {
		t.Errorf("expected raw percent in view: %q", out)
	}
}
