// Package models defines data structures and domain types.
package models

import "strings"

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// UnknownDateKey is the sentinel date key for rows whose source date could not
// be parsed. Counts under this key stay attributable to an agent but are
// excluded from the chronological axis.
const UnknownDateKey = "unknown"

// DailyAgentMetrics holds one calendar day's raw event counts for one agent.
// The date is a YYYY-MM-DD key (or UnknownDateKey). Immutable once built.
type DailyAgentMetrics struct {
	Date         string
	Trips        int
	Quotes       int
	Passthroughs int
	HotPasses    int
	Bookings     int
	NonConverted int
}

// AgentTimeSeries is one agent's ordered sequence of daily metrics, one entry
// per distinct date observed across the whole dataset.
type AgentTimeSeries struct {
	Agent string
	Days  []DailyAgentMetrics
}

// DailyRatioPoint is a derived per-day set of conversion percentages. Every
// ratio is numerator/denominator*100, and exactly 0 when the denominator is 0.
type DailyRatioPoint struct {
	Date             string
	TripToQuote      float64
	TripToPass       float64
	PassToQuote      float64
	HotPassRate      float64
	BookingRate      float64
	NonConvertedRate float64
}

// TimeSeriesData is the aggregate root produced by the time-series builder:
// the global date range, every agent's series, and the three precomputed
// group ratio series.
type TimeSeriesData struct {
	FirstDate string
	LastDate  string
	Agents    []AgentTimeSeries
	Dept      []DailyRatioPoint
	Senior    []DailyRatioPoint
	NonSenior []DailyRatioPoint

	// SeniorNames holds the lowercased names of agents that matched the
	// senior roster, for badge rendering.
	SeniorNames map[string]bool
}

// IsSenior reports whether the named agent matched the senior roster.
func (d TimeSeriesData) IsSenior(agent string) bool {
	return d.SeniorNames[normalizeName(agent)]
}

// CountMaps carries the six per-agent, per-date event tallies supplied by the
// ingest layer (agent name -> date key -> count).
type CountMaps struct {
	Trips        map[string]map[string]int
	Quotes       map[string]map[string]int
	Passthroughs map[string]map[string]int
	HotPasses    map[string]map[string]int
	Bookings     map[string]map[string]int
	NonConverted map[string]map[string]int
}

// NewCountMaps returns an empty, fully initialized CountMaps.
func NewCountMaps() CountMaps {
	return CountMaps{
		Trips:        make(map[string]map[string]int),
		Quotes:       make(map[string]map[string]int),
		Passthroughs: make(map[string]map[string]int),
		HotPasses:    make(map[string]map[string]int),
		Bookings:     make(map[string]map[string]int),
		NonConverted: make(map[string]map[string]int),
	}
}
