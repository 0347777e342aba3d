package records

import (
	"testing"

	"github.com/halloran-travel/salesdash-tui/internal/models"
)

// week of 2024-03-11 (Monday) through 2024-03-17, entirely inside March/Q1.
var isoWeek = []string{
	"2024-03-11", "2024-03-12", "2024-03-13", "2024-03-14",
	"2024-03-15", "2024-03-16", "2024-03-17",
}

func weekSeries(agent string, trips, quotes []int) models.AgentTimeSeries {
	s := models.AgentTimeSeries{Agent: agent}
	for i, date := range isoWeek {
		d := models.DailyAgentMetrics{Date: date}
		if i < len(trips) {
			d.Trips = trips[i]
		}
		if i < len(quotes) {
			d.Quotes = quotes[i]
		}
		s.Days = append(s.Days, d)
	}
	return s
}

func dataFor(series ...models.AgentTimeSeries) models.TimeSeriesData {
	return models.TimeSeriesData{Agents: series}
}

func countUpdates(updates []models.RecordUpdate, metric models.Metric, g models.Granularity) int {
	n := 0
	for _, u := range updates {
		if u.Metric == metric && u.Granularity == g {
			n++
		}
	}
	return n
}

func TestAnalyze_FreshLedgerSingleWeek(t *testing.T) {
	jane := weekSeries("Jane",
		[]int{10, 0, 0, 0, 0, 0, 0},
		[]int{3, 0, 0, 0, 0, 0, 0})

	ledger, updates := Analyze(models.NewAllRecords(), dataFor(jane))

	// Trips and quotes at week/month/quarter, trip->quote at month/quarter.
	if len(updates) != 8 {
		t.Fatalf("expected 8 updates, got %d: %+v", len(updates), updates)
	}
	if n := countUpdates(updates, models.MetricTrips, models.GranularityWeek); n != 1 {
		t.Errorf("weekly trips updates = %d, want 1", n)
	}
	// Rate records exist at month/quarter only; a weekly rate record would
	// be a bug.
	for _, m := range models.RateMetrics {
		if n := countUpdates(updates, m, models.GranularityWeek); n != 0 {
			t.Errorf("weekly %s updates = %d, want 0", m, n)
		}
	}

	recs := ledger.Agents["Jane"]
	if recs == nil {
		t.Fatal("expected Jane in ledger")
	}
	weekly := recs.Get(models.MetricTrips, models.GranularityWeek)
	if weekly == nil || weekly.Value != 10 {
		t.Fatalf("weekly trips record = %+v, want value 10", weekly)
	}
	if weekly.PeriodStart != "2024-03-11" || weekly.PeriodEnd != "2024-03-17" {
		t.Errorf("weekly period = %s..%s", weekly.PeriodStart, weekly.PeriodEnd)
	}
	monthRate := recs.Get(models.MetricTripToQuote, models.GranularityMonth)
	if monthRate == nil || monthRate.Value != 30 {
		t.Fatalf("monthly trip->quote record = %+v, want 30", monthRate)
	}
	if recs.Get(models.MetricTripToQuote, models.GranularityWeek) != nil {
		t.Error("weekly rate slot must stay empty")
	}

	// Every fresh record reports a nil previous value.
	for _, u := range updates {
		if u.Previous != nil {
			t.Errorf("fresh record for %s/%s has previous %v", u.Metric, u.Granularity, *u.Previous)
		}
	}
}

func TestAnalyze_Idempotent(t *testing.T) {
	jane := weekSeries("Jane",
		[]int{10, 2, 0, 4, 0, 0, 1},
		[]int{3, 1, 0, 2, 0, 0, 0})

	ledger, first := Analyze(models.NewAllRecords(), dataFor(jane))
	if len(first) == 0 {
		t.Fatal("expected updates on first pass")
	}

	again, second := Analyze(ledger, dataFor(jane))
	if len(second) != 0 {
		t.Fatalf("second identical pass emitted %d updates: %+v", len(second), second)
	}
	if again.Agents["Jane"].Get(models.MetricTrips, models.GranularityWeek).Value !=
		ledger.Agents["Jane"].Get(models.MetricTrips, models.GranularityWeek).Value {
		t.Error("ledger value changed on idempotent re-run")
	}
}

func TestAnalyze_InPassMutationVisibleToLaterBuckets(t *testing.T) {
	// Two weeks, both beating the (empty) pre-pass record. The second week's
	// bucket compares against the value the first week just set, so both
	// transitions are reported.
	agent := models.AgentTimeSeries{
		Agent: "Marco",
		Days: []models.DailyAgentMetrics{
			{Date: "2024-03-11", Trips: 5},
			{Date: "2024-03-18", Trips: 9},
		},
	}

	_, updates := Analyze(models.NewAllRecords(), dataFor(agent))

	var weekly []models.RecordUpdate
	for _, u := range updates {
		if u.Metric == models.MetricTrips && u.Granularity == models.GranularityWeek {
			weekly = append(weekly, u)
		}
	}
	if len(weekly) != 2 {
		t.Fatalf("expected 2 weekly trips transitions, got %d", len(weekly))
	}
	if weekly[0].Value != 5 || weekly[0].Previous != nil {
		t.Errorf("first transition = %+v", weekly[0])
	}
	if weekly[1].Value != 9 || weekly[1].Previous == nil || *weekly[1].Previous != 5 {
		t.Errorf("second transition = %+v", weekly[1])
	}
}

func TestAnalyze_ImplausibleRateRejected(t *testing.T) {
	// 1 trip, 5 quotes: a 500% trip->quote rate is sensor noise, not a record.
	agent := models.AgentTimeSeries{
		Agent: "Lena",
		Days:  []models.DailyAgentMetrics{{Date: "2024-03-11", Trips: 1, Quotes: 5}},
	}

	ledger, updates := Analyze(models.NewAllRecords(), dataFor(agent))

	recs := ledger.Agents["Lena"]
	if recs.Get(models.MetricTripToQuote, models.GranularityMonth) != nil {
		t.Error("implausible rate created a record")
	}
	for _, u := range updates {
		if u.Metric.IsRate() && u.Metric == models.MetricTripToQuote {
			t.Errorf("implausible rate emitted an update: %+v", u)
		}
	}
	// Volume records are unaffected by the rate filter.
	if recs.Get(models.MetricQuotes, models.GranularityMonth) == nil {
		t.Error("expected monthly quotes record")
	}
}

func TestAnalyze_TieDoesNotUpdate(t *testing.T) {
	jane := weekSeries("Jane", []int{10, 0, 0, 0, 0, 0, 0}, nil)

	first, _ := Analyze(models.NewAllRecords(), dataFor(jane))
	// Same bucket value again: a tie never replaces a record.
	_, updates := Analyze(first, dataFor(jane))
	if n := countUpdates(updates, models.MetricTrips, models.GranularityWeek); n != 0 {
		t.Errorf("tie emitted %d updates", n)
	}
}

func TestAnalyze_InputLedgerNotMutated(t *testing.T) {
	jane := weekSeries("Jane", []int{5, 0, 0, 0, 0, 0, 0}, nil)
	prev, _ := Analyze(models.NewAllRecords(), dataFor(jane))
	before := prev.Agents["Jane"].Get(models.MetricTrips, models.GranularityWeek).Value

	bigger := weekSeries("Jane", []int{50, 0, 0, 0, 0, 0, 0}, nil)
	next, updates := Analyze(prev, dataFor(bigger))

	if got := prev.Agents["Jane"].Get(models.MetricTrips, models.GranularityWeek).Value; got != before {
		t.Errorf("input ledger mutated: %v -> %v", before, got)
	}
	if got := next.Agents["Jane"].Get(models.MetricTrips, models.GranularityWeek).Value; got != 50 {
		t.Errorf("new ledger value = %v, want 50", got)
	}
	if len(updates) == 0 {
		t.Error("expected transition updates")
	}
	for _, u := range updates {
		if u.Metric == models.MetricTrips && u.Granularity == models.GranularityWeek {
			if u.Previous == nil || *u.Previous != 5 {
				t.Errorf("previous = %v, want 5", u.Previous)
			}
		}
	}
}

func TestAnalyze_UnknownDatesSkipped(t *testing.T) {
	agent := models.AgentTimeSeries{
		Agent: "Kai",
		Days: []models.DailyAgentMetrics{
			{Date: models.UnknownDateKey, Trips: 100},
			{Date: "2024-03-11", Trips: 2},
		},
	}

	ledger, _ := Analyze(models.NewAllRecords(), dataFor(agent))
	rec := ledger.Agents["Kai"].Get(models.MetricTrips, models.GranularityWeek)
	if rec == nil || rec.Value != 2 {
		t.Errorf("weekly trips = %+v, want 2 (unknown-date counts must not bucket)", rec)
	}
}

func TestAnalyze_ZeroVolumeNeverRecords(t *testing.T) {
	agent := models.AgentTimeSeries{
		Agent: "Noor",
		Days:  []models.DailyAgentMetrics{{Date: "2024-03-11", Trips: 0, Quotes: 0}},
	}
	ledger, updates := Analyze(models.NewAllRecords(), dataFor(agent))
	if len(updates) != 0 {
		t.Fatalf("zero-activity bucket emitted %d updates", len(updates))
	}
	if ledger.Agents["Noor"].Get(models.MetricTrips, models.GranularityWeek) != nil {
		t.Error("zero bucket created a record")
	}
}

func TestAnalyze_UpdateOrder(t *testing.T) {
	jane := weekSeries("Jane",
		[]int{10, 0, 0, 0, 0, 0, 0},
		[]int{3, 0, 0, 0, 0, 0, 0})

	_, updates := Analyze(models.NewAllRecords(), dataFor(jane))

	// Volume metrics come before rate metrics, and granularities run
	// week/month/quarter within each volume metric.
	sawRate := false
	for _, u := range updates {
		if u.Metric.IsRate() {
			sawRate = true
		} else if sawRate {
			t.Fatalf("volume update %s after a rate update", u.Metric)
		}
	}
	if updates[0].Metric != models.MetricTrips || updates[0].Granularity != models.GranularityWeek {
		t.Errorf("first update = %s/%s, want trips/week", updates[0].Metric, updates[0].Granularity)
	}
}
