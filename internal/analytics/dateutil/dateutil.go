// Package dateutil converts heterogeneous source date values into calendar
// dates and computes week/month/quarter period boundaries.
package dateutil

import (
	"strconv"
	"strings"
	"time"
)

// Legacy spreadsheet exports encode dates as a day count from 1899-12-30
// (the epoch already bakes in the well-known 1900 leap-year bug).
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.Local)

// Serials outside (1000, 100000) are implausible as real dates (roughly years
// 1902-2173) and are more likely stray integers or malformed values.
const (
	serialMin = 1000
	serialMax = 100000
)

// dateLayouts are tried in order for generic string parsing.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// Parse converts a source value into a calendar date. Empty or unparseable
// input yields ok=false; Parse never panics. A value that parses as a finite
// number strictly between 1000 and 100000 is interpreted as a legacy
// spreadsheet day serial.
func Parse(value string) (time.Time, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return time.Time{}, false
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial > serialMin && serial < serialMax {
			return serialEpoch.AddDate(0, 0, int(serial)), true
		}
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatKey renders a date as a zero-padded local YYYY-MM-DD string, the map
// key format used throughout the system. Local fields, not UTC: a mismatch
// here causes aggregation misses.
func FormatKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// WeekStart returns the Monday of the week containing t, at local midnight.
func WeekStart(t time.Time) time.Time {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// WeekEnd returns the Sunday of the week containing t.
func WeekEnd(t time.Time) time.Time {
	return WeekStart(t).AddDate(0, 0, 6)
}

// MonthStart returns the first day of the month containing t.
func MonthStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// MonthEnd returns the last day of the month containing t.
func MonthEnd(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, 1, -1)
}

// QuarterStart returns the first day of the calendar quarter containing t.
// Quarters align to 3-month blocks starting in January.
func QuarterStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	qm := time.Month((int(m)-1)/3*3 + 1)
	return time.Date(y, qm, 1, 0, 0, 0, 0, t.Location())
}

// QuarterEnd returns the last day of the calendar quarter containing t.
func QuarterEnd(t time.Time) time.Time {
	return QuarterStart(t).AddDate(0, 3, -1)
}
