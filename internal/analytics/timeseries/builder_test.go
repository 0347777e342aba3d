package timeseries

import (
	"math"
	"testing"

	"github.com/halloran-travel/salesdash-tui/internal/models"
)

func countMapsFixture() models.CountMaps {
	cm := models.NewCountMaps()
	cm.Trips["Ana"] = map[string]int{"2024-03-11": 4, "2024-03-12": 2}
	cm.Trips["Ben"] = map[string]int{"2024-03-12": 6}
	cm.Quotes["Ana"] = map[string]int{"2024-03-11": 1}
	cm.Passthroughs["Ben"] = map[string]int{"2024-03-13": 3}
	return cm
}

func TestBuild_DensifiesUnionAxis(t *testing.T) {
	series := Build(countMapsFixture())

	if len(series) != 2 {
		t.Fatalf("expected 2 agents, got %d", len(series))
	}
	// Sorted by agent name.
	if series[0].Agent != "Ana" || series[1].Agent != "Ben" {
		t.Fatalf("unexpected agent order: %s, %s", series[0].Agent, series[1].Agent)
	}

	// Axis is the 3-date union; every agent gets all of them, zero-filled.
	for _, a := range series {
		if len(a.Days) != 3 {
			t.Fatalf("agent %s: expected 3 days, got %d", a.Agent, len(a.Days))
		}
		for i, want := range []string{"2024-03-11", "2024-03-12", "2024-03-13"} {
			if a.Days[i].Date != want {
				t.Errorf("agent %s day %d: date = %s, want %s", a.Agent, i, a.Days[i].Date, want)
			}
		}
	}

	ben := series[1]
	if ben.Days[0].Trips != 0 {
		t.Errorf("Ben should have zero trips on 2024-03-11, got %d", ben.Days[0].Trips)
	}
	if ben.Days[1].Trips != 6 {
		t.Errorf("Ben trips on 2024-03-12 = %d, want 6", ben.Days[1].Trips)
	}
	if ben.Days[2].Passthroughs != 3 {
		t.Errorf("Ben passthroughs on 2024-03-13 = %d, want 3", ben.Days[2].Passthroughs)
	}
}

func TestBuild_UnknownDatesStayAttributable(t *testing.T) {
	cm := models.NewCountMaps()
	cm.Trips["Ana"] = map[string]int{"2024-03-11": 2, models.UnknownDateKey: 5}

	series := Build(cm)
	if len(series) != 1 {
		t.Fatalf("expected 1 agent, got %d", len(series))
	}
	days := series[0].Days
	// One axis date plus the trailing unknown entry.
	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(days))
	}
	if days[1].Date != models.UnknownDateKey || days[1].Trips != 5 {
		t.Errorf("unknown bucket = %+v, want 5 trips under %q", days[1], models.UnknownDateKey)
	}
	// The chronological axis must not contain the sentinel.
	for _, d := range DateAxis(series) {
		if d == models.UnknownDateKey {
			t.Error("unknown key leaked into the date axis")
		}
	}
}

func TestRatios_ZeroDenominator(t *testing.T) {
	days := []models.DailyAgentMetrics{
		{Date: "2024-03-11", Trips: 0, Quotes: 3, Passthroughs: 0, Bookings: 2},
	}
	points := Ratios(days)
	if len(points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(points))
	}
	p := points[0]
	for name, v := range map[string]float64{
		"trip->quote":  p.TripToQuote,
		"trip->pass":   p.TripToPass,
		"booking rate": p.BookingRate,
		"hot pass":     p.HotPassRate,
	} {
		if v != 0 {
			t.Errorf("%s = %v, want exactly 0 on zero denominator", name, v)
		}
		if math.IsNaN(v) {
			t.Errorf("%s is NaN", name)
		}
	}
}

func TestRatios_Values(t *testing.T) {
	days := []models.DailyAgentMetrics{
		{Date: "2024-03-11", Trips: 10, Quotes: 3, Passthroughs: 5, HotPasses: 1, Bookings: 2, NonConverted: 4},
	}
	p := Ratios(days)[0]
	if p.TripToQuote != 30 {
		t.Errorf("trip->quote = %v, want 30", p.TripToQuote)
	}
	if p.TripToPass != 50 {
		t.Errorf("trip->pass = %v, want 50", p.TripToPass)
	}
	if p.PassToQuote != 60 {
		t.Errorf("pass->quote = %v, want 60", p.PassToQuote)
	}
	if p.HotPassRate != 20 {
		t.Errorf("hot pass rate = %v, want 20", p.HotPassRate)
	}
	if p.BookingRate != 20 {
		t.Errorf("booking rate = %v, want 20", p.BookingRate)
	}
	if p.NonConvertedRate != 40 {
		t.Errorf("non-converted rate = %v, want 40", p.NonConvertedRate)
	}
}

func TestGroupRatios_SumsBeforeDividing(t *testing.T) {
	agents := []models.AgentTimeSeries{
		{Agent: "A", Days: []models.DailyAgentMetrics{{Date: "2024-03-11", Trips: 10, Quotes: 5}}},
		{Agent: "B", Days: []models.DailyAgentMetrics{{Date: "2024-03-11", Trips: 1000, Quotes: 100}}},
	}
	points := GroupRatios(agents, []string{"2024-03-11"})
	if len(points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(points))
	}
	want := 105.0 / 1010.0 * 100
	if math.Abs(points[0].TripToQuote-want) > 1e-9 {
		t.Errorf("group trip->quote = %v, want %v (not the mean of 50%% and 10%%)", points[0].TripToQuote, want)
	}
}

func TestGroupRatios_EmptyAgents(t *testing.T) {
	points := GroupRatios(nil, []string{"2024-03-11", "2024-03-12"})
	if len(points) != 2 {
		t.Fatalf("expected one zero point per date, got %d", len(points))
	}
	for _, p := range points {
		if p.TripToQuote != 0 || p.BookingRate != 0 {
			t.Errorf("empty group should yield zero-valued points, got %+v", p)
		}
	}
}

func TestGroupRatios_MissingDateContributesZero(t *testing.T) {
	agents := []models.AgentTimeSeries{
		{Agent: "A", Days: []models.DailyAgentMetrics{{Date: "2024-03-11", Trips: 10, Quotes: 5}}},
		{Agent: "B", Days: []models.DailyAgentMetrics{{Date: "2024-03-12", Trips: 4, Quotes: 4}}},
	}
	points := GroupRatios(agents, []string{"2024-03-11", "2024-03-12"})
	if points[0].TripToQuote != 50 {
		t.Errorf("day 1 = %v, want 50", points[0].TripToQuote)
	}
	if points[1].TripToQuote != 100 {
		t.Errorf("day 2 = %v, want 100", points[1].TripToQuote)
	}
}

func TestBuildTimeSeriesData_RosterPartition(t *testing.T) {
	series := []models.AgentTimeSeries{
		{Agent: "Ana Torres", Days: []models.DailyAgentMetrics{{Date: "2024-03-11", Trips: 10, Quotes: 5}}},
		{Agent: "Ben Ruiz", Days: []models.DailyAgentMetrics{{Date: "2024-03-11", Trips: 10, Quotes: 1}}},
	}
	// Roster match is case-insensitive.
	data := BuildTimeSeriesData(series, []string{"ANA TORRES"})

	if data.FirstDate != "2024-03-11" || data.LastDate != "2024-03-11" {
		t.Errorf("date range = %s..%s", data.FirstDate, data.LastDate)
	}
	if len(data.Senior) != 1 || data.Senior[0].TripToQuote != 50 {
		t.Errorf("senior series = %+v, want trip->quote 50", data.Senior)
	}
	if len(data.NonSenior) != 1 || data.NonSenior[0].TripToQuote != 10 {
		t.Errorf("non-senior series = %+v, want trip->quote 10", data.NonSenior)
	}
	want := 6.0 / 20.0 * 100
	if math.Abs(data.Dept[0].TripToQuote-want) > 1e-9 {
		t.Errorf("dept trip->quote = %v, want %v", data.Dept[0].TripToQuote, want)
	}
}

func TestBuildTimeSeriesData_Empty(t *testing.T) {
	data := BuildTimeSeriesData(nil, nil)
	if data.FirstDate != "" || data.LastDate != "" {
		t.Errorf("empty dataset should have empty date range, got %s..%s", data.FirstDate, data.LastDate)
	}
	if len(data.Dept) != 0 {
		t.Errorf("expected empty dept series, got %d points", len(data.Dept))
	}
}
