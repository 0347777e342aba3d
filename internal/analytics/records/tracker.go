// Package records maintains the per-agent best-value ledger: it aggregates
// daily metrics into week/month/quarter buckets and reports every bucket
// that beats an agent's history.
package records

import (
	"time"

	"github.com/halloran-travel/salesdash-tui/internal/analytics/dateutil"
	"github.com/halloran-travel/salesdash-tui/internal/models"
)

// Rates above this are treated as data corruption (a single trip can produce
// a spurious 100%+ conversion), never as a record.
const maxPlausibleRate = 200

// volumeGranularities and rateGranularities define which period sizes each
// metric class is tracked at. Weekly rate records are skipped: the sample is
// too small to mean anything.
var (
	volumeGranularities = []models.Granularity{
		models.GranularityWeek, models.GranularityMonth, models.GranularityQuarter,
	}
	rateGranularities = []models.Granularity{
		models.GranularityMonth, models.GranularityQuarter,
	}
)

// bucket is one contiguous calendar period's summed volume counters.
type bucket struct {
	start, end   string
	trips        int
	quotes       int
	passthroughs int
}

// Analyze compares every period bucket in data against the previous ledger
// and returns the updated ledger plus one RecordUpdate per record-breaking
// transition, in deterministic order: agents in input order, volume metrics
// before rate metrics, week/month/quarter within volume, month/quarter
// within rate, buckets in discovery order. The input ledger is never
// mutated; re-running Analyze on its own output yields zero updates.
func Analyze(prev *models.AllRecords, data models.TimeSeriesData) (*models.AllRecords, []models.RecordUpdate) {
	if prev == nil {
		prev = models.NewAllRecords()
	}
	ledger := prev.Clone()
	now := time.Now()

	var updates []models.RecordUpdate
	for _, agent := range data.Agents {
		recs := ledger.Agents[agent.Agent]
		if recs == nil {
			recs = models.NewAgentRecords()
			ledger.Agents[agent.Agent] = recs
		}

		byGranularity := make(map[models.Granularity][]*bucket, 3)
		for _, g := range volumeGranularities {
			byGranularity[g] = aggregate(agent.Days, g)
		}

		for _, metric := range models.VolumeMetrics {
			for _, g := range volumeGranularities {
				for _, b := range byGranularity[g] {
					updates = apply(updates, recs, agent.Agent, metric, g, b, volumeValue(b, metric), now)
				}
			}
		}
		for _, metric := range models.RateMetrics {
			for _, g := range rateGranularities {
				for _, b := range byGranularity[g] {
					rate := rateValue(b, metric)
					// A zero rate means no qualifying denominator activity;
					// it is never record-worthy.
					if rate == 0 || rate > maxPlausibleRate {
						continue
					}
					updates = apply(updates, recs, agent.Agent, metric, g, b, rate, now)
				}
			}
		}
	}

	ledger.LastUpdated = now
	return ledger, updates
}

// apply replaces the slot if value beats it strictly, appending the update
// event. Later buckets in the same pass compare against the value an earlier
// bucket just set, so a pass credits the bucket processed last among equals'
// superiors.
func apply(updates []models.RecordUpdate, recs *models.AgentRecords, agent string, metric models.Metric, g models.Granularity, b *bucket, value float64, now time.Time) []models.RecordUpdate {
	if value <= 0 {
		return updates
	}
	current := recs.Get(metric, g)
	if current != nil && value <= current.Value {
		return updates
	}

	var previous *float64
	if current != nil {
		v := current.Value
		previous = &v
	}
	recs.Set(metric, g, &models.RecordEntry{
		Value:       value,
		PeriodStart: b.start,
		PeriodEnd:   b.end,
		SetAt:       now,
	})
	return append(updates, models.RecordUpdate{
		Agent:       agent,
		Metric:      metric,
		Granularity: g,
		Previous:    previous,
		Value:       value,
		PeriodStart: b.start,
		PeriodEnd:   b.end,
		At:          now,
	})
}

// aggregate sums the volume counters of days into period buckets. Days with
// unparseable date keys (including the "unknown" sentinel) are skipped.
// Buckets appear in first-occurrence order of the underlying days.
func aggregate(days []models.DailyAgentMetrics, g models.Granularity) []*bucket {
	var ordered []*bucket
	index := make(map[string]*bucket)

	for _, d := range days {
		t, ok := dateutil.Parse(d.Date)
		if !ok {
			continue
		}
		start, end := periodBounds(t, g)
		key := dateutil.FormatKey(start)
		b, exists := index[key]
		if !exists {
			b = &bucket{start: key, end: dateutil.FormatKey(end)}
			index[key] = b
			ordered = append(ordered, b)
		}
		b.trips += d.Trips
		b.quotes += d.Quotes
		b.passthroughs += d.Passthroughs
	}
	return ordered
}

func periodBounds(t time.Time, g models.Granularity) (time.Time, time.Time) {
	switch g {
	case models.GranularityWeek:
		return dateutil.WeekStart(t), dateutil.WeekEnd(t)
	case models.GranularityMonth:
		return dateutil.MonthStart(t), dateutil.MonthEnd(t)
	default:
		return dateutil.QuarterStart(t), dateutil.QuarterEnd(t)
	}
}

func volumeValue(b *bucket, m models.Metric) float64 {
	switch m {
	case models.MetricTrips:
		return float64(b.trips)
	case models.MetricQuotes:
		return float64(b.quotes)
	default:
		return float64(b.passthroughs)
	}
}

// rateValue computes a bucket's conversion percentage, 0 when the
// denominator is 0.
func rateValue(b *bucket, m models.Metric) float64 {
	ratio := func(num, den int) float64 {
		if den == 0 {
			return 0
		}
		return float64(num) / float64(den) * 100
	}
	switch m {
	case models.MetricTripToQuote:
		return ratio(b.quotes, b.trips)
	case models.MetricTripToPass:
		return ratio(b.passthroughs, b.trips)
	default:
		return ratio(b.quotes, b.passthroughs)
	}
}
