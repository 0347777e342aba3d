// Package models defines data structures and domain types.
package models

import "time"

// Metric identifies a tracked performance metric.
type Metric string

const (
	MetricTrips        Metric = "trips"
	MetricQuotes       Metric = "quotes"
	MetricPassthroughs Metric = "passthroughs"
	MetricTripToQuote  Metric = "trip_to_quote"
	MetricTripToPass   Metric = "trip_to_pass"
	MetricPassToQuote  Metric = "pass_to_quote"
)

// VolumeMetrics are the raw-count metrics tracked at all three granularities.
var VolumeMetrics = []Metric{MetricTrips, MetricQuotes, MetricPassthroughs}

// RateMetrics are the percentage metrics tracked at month/quarter only.
// Weekly samples are too small for rate records to mean anything.
var RateMetrics = []Metric{MetricTripToQuote, MetricTripToPass, MetricPassToQuote}

// IsRate reports whether m is a percentage metric.
func (m Metric) IsRate() bool {
	switch m {
	case MetricTripToQuote, MetricTripToPass, MetricPassToQuote:
		return true
	}
	return false
}

// String returns a display name for the metric.
func (m Metric) String() string {
	switch m {
	case MetricTrips:
		return "Trips"
	case MetricQuotes:
		return "Quotes"
	case MetricPassthroughs:
		return "Passthroughs"
	case MetricTripToQuote:
		return "Trip→Quote %"
	case MetricTripToPass:
		return "Trip→Pass %"
	case MetricPassToQuote:
		return "Pass→Quote %"
	default:
		return string(m)
	}
}

// Granularity is the period size a record is tracked at.
type Granularity string

const (
	GranularityWeek    Granularity = "week"
	GranularityMonth   Granularity = "month"
	GranularityQuarter Granularity = "quarter"
)

// String returns a display name for the granularity.
func (g Granularity) String() string {
	switch g {
	case GranularityWeek:
		return "Week"
	case GranularityMonth:
		return "Month"
	case GranularityQuarter:
		return "Quarter"
	default:
		return string(g)
	}
}

// RecordEntry is a single best-value record. Replaced wholesale when beaten,
// never mutated in place.
type RecordEntry struct {
	Value       float64   `json:"value"`
	PeriodStart string    `json:"periodStart"`
	PeriodEnd   string    `json:"periodEnd"`
	SetAt       time.Time `json:"setAt"`
}

// AgentRecords holds one agent's record slots, keyed by metric then
// granularity. A missing slot means no record yet.
type AgentRecords struct {
	Slots map[Metric]map[Granularity]*RecordEntry `json:"slots"`
}

// NewAgentRecords returns an AgentRecords with an initialized slot map.
func NewAgentRecords() *AgentRecords {
	return &AgentRecords{Slots: make(map[Metric]map[Granularity]*RecordEntry)}
}

// Get returns the record for a metric+granularity, or nil.
func (a *AgentRecords) Get(m Metric, g Granularity) *RecordEntry {
	if a == nil || a.Slots == nil {
		return nil
	}
	return a.Slots[m][g]
}

// Set replaces the record for a metric+granularity.
func (a *AgentRecords) Set(m Metric, g Granularity, e *RecordEntry) {
	if a.Slots == nil {
		a.Slots = make(map[Metric]map[Granularity]*RecordEntry)
	}
	if a.Slots[m] == nil {
		a.Slots[m] = make(map[Granularity]*RecordEntry)
	}
	a.Slots[m][g] = e
}

// AllRecords is the persisted ledger: agent name -> record slots. The whole
// structure is the unit of durability; it is loaded once, replaced in memory
// by each analysis pass, and written back wholesale.
type AllRecords struct {
	Agents      map[string]*AgentRecords `json:"agents"`
	LastUpdated time.Time                `json:"lastUpdated"`
}

// NewAllRecords returns an empty ledger stamped with now.
func NewAllRecords() *AllRecords {
	return &AllRecords{Agents: make(map[string]*AgentRecords), LastUpdated: time.Now()}
}

// Clone returns a deep copy of the ledger. Analysis passes mutate the copy so
// the caller's ledger stays untouched.
func (r *AllRecords) Clone() *AllRecords {
	out := &AllRecords{Agents: make(map[string]*AgentRecords), LastUpdated: r.LastUpdated}
	for agent, recs := range r.Agents {
		cp := NewAgentRecords()
		for m, byGran := range recs.Slots {
			for g, e := range byGran {
				if e == nil {
					continue
				}
				entry := *e
				cp.Set(m, g, &entry)
			}
		}
		out.Agents[agent] = cp
	}
	return out
}

// RecordUpdate describes one record-breaking transition. Ephemeral: produced
// by an analysis pass and consumed by the notification UI, never persisted.
type RecordUpdate struct {
	Agent       string
	Metric      Metric
	Granularity Granularity
	// Previous is nil when the slot had no record before this pass.
	Previous    *float64
	Value       float64
	PeriodStart string
	PeriodEnd   string
	At          time.Time
}
