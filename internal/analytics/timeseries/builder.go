// Package timeseries normalizes raw per-agent event counts into aligned
// daily series and derives conversion ratio series for agents and groups.
package timeseries

import (
	"sort"
	"strings"

	"github.com/halloran-travel/salesdash-tui/internal/models"
)

// pct is the one ratio rule used everywhere: numerator over denominator as a
// percentage, exactly 0 when the denominator is 0. Never NaN.
func pct(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den) * 100
}

// Build turns the six count maps into one dense series per agent. The agent
// set is the union of names across all maps; the date axis is the union of
// date keys (the "unknown" sentinel excluded), sorted ascending. Every agent
// gets one entry per axis date with zeroes substituted for absent counts:
// without the zero-fill, group averages would skew for dates before a
// late-joining agent's first day. Agents with unparseable-date activity get
// one extra trailing "unknown" entry so those counts stay attributable.
func Build(cm models.CountMaps) []models.AgentTimeSeries {
	agents := make(map[string]bool)
	dates := make(map[string]bool)
	for _, m := range []map[string]map[string]int{
		cm.Trips, cm.Quotes, cm.Passthroughs, cm.HotPasses, cm.Bookings, cm.NonConverted,
	} {
		for agent, byDate := range m {
			agents[agent] = true
			for key := range byDate {
				if key != models.UnknownDateKey {
					dates[key] = true
				}
			}
		}
	}

	axis := make([]string, 0, len(dates))
	for key := range dates {
		axis = append(axis, key)
	}
	sort.Strings(axis)

	names := make([]string, 0, len(agents))
	for name := range agents {
		names = append(names, name)
	}
	sort.Strings(names)

	count := func(m map[string]map[string]int, agent, date string) int {
		return m[agent][date]
	}

	result := make([]models.AgentTimeSeries, 0, len(names))
	for _, name := range names {
		series := models.AgentTimeSeries{Agent: name, Days: make([]models.DailyAgentMetrics, 0, len(axis))}
		for _, date := range axis {
			series.Days = append(series.Days, models.DailyAgentMetrics{
				Date:         date,
				Trips:        count(cm.Trips, name, date),
				Quotes:       count(cm.Quotes, name, date),
				Passthroughs: count(cm.Passthroughs, name, date),
				HotPasses:    count(cm.HotPasses, name, date),
				Bookings:     count(cm.Bookings, name, date),
				NonConverted: count(cm.NonConverted, name, date),
			})
		}
		unknown := models.DailyAgentMetrics{
			Date:         models.UnknownDateKey,
			Trips:        count(cm.Trips, name, models.UnknownDateKey),
			Quotes:       count(cm.Quotes, name, models.UnknownDateKey),
			Passthroughs: count(cm.Passthroughs, name, models.UnknownDateKey),
			HotPasses:    count(cm.HotPasses, name, models.UnknownDateKey),
			Bookings:     count(cm.Bookings, name, models.UnknownDateKey),
			NonConverted: count(cm.NonConverted, name, models.UnknownDateKey),
		}
		if unknown.Trips+unknown.Quotes+unknown.Passthroughs+unknown.HotPasses+unknown.Bookings+unknown.NonConverted > 0 {
			series.Days = append(series.Days, unknown)
		}
		result = append(result, series)
	}
	return result
}

// ratioPoint applies the ratio formulas to one day's counts.
func ratioPoint(d models.DailyAgentMetrics) models.DailyRatioPoint {
	return models.DailyRatioPoint{
		Date:             d.Date,
		TripToQuote:      pct(d.Quotes, d.Trips),
		TripToPass:       pct(d.Passthroughs, d.Trips),
		PassToQuote:      pct(d.Quotes, d.Passthroughs),
		HotPassRate:      pct(d.HotPasses, d.Passthroughs),
		BookingRate:      pct(d.Bookings, d.Trips),
		NonConvertedRate: pct(d.NonConverted, d.Trips),
	}
}

// Ratios derives one DailyRatioPoint per input day, order preserved.
func Ratios(days []models.DailyAgentMetrics) []models.DailyRatioPoint {
	out := make([]models.DailyRatioPoint, len(days))
	for i, d := range days {
		out[i] = ratioPoint(d)
	}
	return out
}

// GroupRatios sums each counter across the supplied agents per date and
// ratios the sums. Summing before dividing matters: a department rate is
// total quotes over total trips, not the mean of per-agent rates, which
// would weight a one-trip agent the same as a thousand-trip one. Agents
// missing a date contribute zero; an empty agent set yields one zero-valued
// point per requested date.
func GroupRatios(agents []models.AgentTimeSeries, dates []string) []models.DailyRatioPoint {
	byDate := make([]map[string]models.DailyAgentMetrics, len(agents))
	for i, a := range agents {
		byDate[i] = make(map[string]models.DailyAgentMetrics, len(a.Days))
		for _, d := range a.Days {
			byDate[i][d.Date] = d
		}
	}

	out := make([]models.DailyRatioPoint, 0, len(dates))
	for _, date := range dates {
		sum := models.DailyAgentMetrics{Date: date}
		for i := range agents {
			d, ok := byDate[i][date]
			if !ok {
				continue
			}
			sum.Trips += d.Trips
			sum.Quotes += d.Quotes
			sum.Passthroughs += d.Passthroughs
			sum.HotPasses += d.HotPasses
			sum.Bookings += d.Bookings
			sum.NonConverted += d.NonConverted
		}
		out = append(out, ratioPoint(sum))
	}
	return out
}

// DateAxis returns the sorted union of dates observed across all series,
// excluding the "unknown" sentinel.
func DateAxis(series []models.AgentTimeSeries) []string {
	seen := make(map[string]bool)
	for _, a := range series {
		for _, d := range a.Days {
			if d.Date != models.UnknownDateKey {
				seen[d.Date] = true
			}
		}
	}
	axis := make([]string, 0, len(seen))
	for key := range seen {
		axis = append(axis, key)
	}
	sort.Strings(axis)
	return axis
}

// BuildTimeSeriesData assembles the aggregate root: date range, agent series
// and the department/senior/non-senior group ratio series. Seniority is a
// case-insensitive name match against the roster; agents absent from the
// roster are non-senior.
func BuildTimeSeriesData(series []models.AgentTimeSeries, seniorRoster []string) models.TimeSeriesData {
	axis := DateAxis(series)

	// Normalize the roster once instead of re-lowering per membership check.
	senior := make(map[string]bool, len(seniorRoster))
	for _, name := range seniorRoster {
		senior[strings.ToLower(strings.TrimSpace(name))] = true
	}

	var seniorAgents, nonSeniorAgents []models.AgentTimeSeries
	seniorNames := make(map[string]bool)
	for _, a := range series {
		if senior[strings.ToLower(a.Agent)] {
			seniorAgents = append(seniorAgents, a)
			seniorNames[strings.ToLower(a.Agent)] = true
		} else {
			nonSeniorAgents = append(nonSeniorAgents, a)
		}
	}

	data := models.TimeSeriesData{
		Agents:      series,
		Dept:        GroupRatios(series, axis),
		Senior:      GroupRatios(seniorAgents, axis),
		NonSenior:   GroupRatios(nonSeniorAgents, axis),
		SeniorNames: seniorNames,
	}
	if len(axis) > 0 {
		data.FirstDate = axis[0]
		data.LastDate = axis[len(axis)-1]
	}
	return data
}
