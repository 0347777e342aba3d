package timeseries

import (
	"strings"

	"github.com/halloran-travel/salesdash-tui/internal/models"
)

// RatioMetric names one of the six derived percentage series.
type RatioMetric string

const (
	RatioTripToQuote  RatioMetric = "trip_to_quote"
	RatioTripToPass   RatioMetric = "trip_to_pass"
	RatioPassToQuote  RatioMetric = "pass_to_quote"
	RatioHotPass      RatioMetric = "hot_pass_rate"
	RatioBooking      RatioMetric = "booking_rate"
	RatioNonConverted RatioMetric = "non_converted_rate"
)

// RatioMetrics lists every chartable ratio metric.
var RatioMetrics = []RatioMetric{
	RatioTripToQuote, RatioTripToPass, RatioPassToQuote,
	RatioHotPass, RatioBooking, RatioNonConverted,
}

// Value extracts the metric from a ratio point.
func (m RatioMetric) Value(p models.DailyRatioPoint) float64 {
	switch m {
	case RatioTripToQuote:
		return p.TripToQuote
	case RatioTripToPass:
		return p.TripToPass
	case RatioPassToQuote:
		return p.PassToQuote
	case RatioHotPass:
		return p.HotPassRate
	case RatioBooking:
		return p.BookingRate
	case RatioNonConverted:
		return p.NonConvertedRate
	default:
		return 0
	}
}

// ChartRow is one date's worth of merged chart values. Values holds
// "{agent}_{metric}" and "{dept|senior|nonsenior}_{metric}" keys; a key that
// is absent means no data for that series on that date, not zero.
type ChartRow struct {
	Date   string
	Values map[string]float64
}

// ChartOptions selects the window and series for MergeForChart.
type ChartOptions struct {
	// StartIdx and EndIdx are inclusive indices into the date axis.
	StartIdx, EndIdx int
	Agents           []string
	Metrics          []RatioMetric
	IncludeDept      bool
	IncludeSenior    bool
	IncludeNonSenior bool
}

// MergeForChart projects the selected agents, metrics and group averages
// over a date-index window into one flat record per date. Consumers must
// treat missing keys as "no data", never as zero.
func MergeForChart(data models.TimeSeriesData, opts ChartOptions) []ChartRow {
	axis := DateAxis(data.Agents)
	if len(axis) == 0 {
		return nil
	}

	start, end := opts.StartIdx, opts.EndIdx
	if start < 0 {
		start = 0
	}
	if end >= len(axis) {
		end = len(axis) - 1
	}
	if start > end {
		return nil
	}

	selected := make(map[string]bool, len(opts.Agents))
	for _, name := range opts.Agents {
		selected[name] = true
	}

	agentRatios := make(map[string]map[string]models.DailyRatioPoint)
	for _, a := range data.Agents {
		if !selected[a.Agent] {
			continue
		}
		byDate := make(map[string]models.DailyRatioPoint, len(a.Days))
		for _, p := range Ratios(a.Days) {
			byDate[p.Date] = p
		}
		agentRatios[a.Agent] = byDate
	}

	groupByDate := func(points []models.DailyRatioPoint) map[string]models.DailyRatioPoint {
		byDate := make(map[string]models.DailyRatioPoint, len(points))
		for _, p := range points {
			byDate[p.Date] = p
		}
		return byDate
	}
	dept := groupByDate(data.Dept)
	senior := groupByDate(data.Senior)
	nonSenior := groupByDate(data.NonSenior)

	rows := make([]ChartRow, 0, end-start+1)
	for i := start; i <= end; i++ {
		date := axis[i]
		row := ChartRow{Date: date, Values: make(map[string]float64)}

		for agent, byDate := range agentRatios {
			p, ok := byDate[date]
			if !ok {
				continue
			}
			for _, m := range opts.Metrics {
				row.Values[agent+"_"+string(m)] = m.Value(p)
			}
		}

		addGroup := func(prefix string, byDate map[string]models.DailyRatioPoint) {
			p, ok := byDate[date]
			if !ok {
				return
			}
			for _, m := range opts.Metrics {
				row.Values[prefix+"_"+string(m)] = m.Value(p)
			}
		}
		if opts.IncludeDept {
			addGroup("dept", dept)
		}
		if opts.IncludeSenior {
			addGroup("senior", senior)
		}
		if opts.IncludeNonSenior {
			addGroup("nonsenior", nonSenior)
		}

		rows = append(rows, row)
	}
	return rows
}

// SeriesKey builds the flat key for one agent-or-group/metric pair.
func SeriesKey(name string, m RatioMetric) string {
	return strings.Join([]string{name, string(m)}, "_")
}
