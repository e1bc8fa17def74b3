// Package timeline implements the data and interaction model behind the
// Gantt-style schedule view: a capped, month-aligned range of day cells,
// a pure projection from board snapshots to renderable items, date-to-grid
// position mapping, viewport math, and the drag state machine.
package timeline

import (
	"strings"
	"time"
)

// dateOnlyLayout matches the calendar-date encoding used by the storage layer.
const dateOnlyLayout = "2006-01-02"

// Day builds a calendar date at local midnight.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

// NormalizeDay truncates a timestamp to its local calendar date.
// Truncation works on calendar components, never on the UTC instant, so a
// date never shifts across a zone boundary.
func NormalizeDay(t time.Time) time.Time {
	local := t.Local()
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)
}

// NormalizeDayPtr normalizes an optional date, preserving nil.
func NormalizeDayPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := NormalizeDay(*t)
	return &d
}

// ParseDay parses a calendar date from an ISO date or date-time string.
// Only the leading year-month-day components are read; the date resolves in
// the local calendar regardless of any trailing time or zone suffix.
func ParseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) > len(dateOnlyLayout) {
		s = s[:len(dateOnlyLayout)]
	}
	parsed, err := time.Parse(dateOnlyLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return Day(parsed.Year(), parsed.Month(), parsed.Day()), nil
}

// FormatDay encodes a date in the storage layer's calendar-date form.
func FormatDay(t time.Time) string {
	return t.Format(dateOnlyLayout)
}

// SameDay reports whether two timestamps fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// AddDays shifts a date by a whole number of calendar days.
func AddDays(t time.Time, days int) time.Time {
	return NormalizeDay(t.AddDate(0, 0, days))
}

// DaysBetween counts calendar days from a to b (negative when b precedes a).
// Both dates are re-anchored in UTC so daylight-saving shifts in the local
// zone cannot skew the division.
func DaysBetween(a, b time.Time) int {
	au := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bu := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au) / (24 * time.Hour))
}

// FirstOfMonth returns the first day of the date's month.
func FirstOfMonth(t time.Time) time.Time {
	return Day(t.Year(), t.Month(), 1)
}

// LastOfMonth returns the last day of the date's month.
func LastOfMonth(t time.Time) time.Time {
	return AddDays(FirstOfMonth(t).AddDate(0, 1, 0), -1)
}

// MinDay returns the earlier of two dates.
func MinDay(a, b time.Time) time.Time {
	if DaysBetween(a, b) < 0 {
		return b
	}
	return a
}

// MaxDay returns the later of two dates.
func MaxDay(a, b time.Time) time.Time {
	if DaysBetween(a, b) < 0 {
		return a
	}
	return b
}

// IsWeekend reports whether a date falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
