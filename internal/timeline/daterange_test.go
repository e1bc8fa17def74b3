package timeline

import (
	"testing"
	"time"
)

func mustRange(t *testing.T, center time.Time, cfg RangeConfig) *DateRange {
	t.Helper()
	r, err := NewDateRange(center, cfg)
	if err != nil {
		t.Fatalf("NewDateRange() error = %v", err)
	}
	return r
}

func checkContiguous(t *testing.T, r *DateRange) {
	t.Helper()
	cells := r.Cells()
	for i := 1; i < len(cells); i++ {
		if DaysBetween(cells[i-1].Date, cells[i].Date) != 1 {
			t.Fatalf("gap between %v and %v at index %d", cells[i-1].Date, cells[i].Date, i)
		}
	}
}

func TestNewDateRangeMonthAligned(t *testing.T) {
	r := mustRange(t, Day(2024, time.January, 15), DefaultRangeConfig())
	first, _ := r.First()
	last, _ := r.Last()
	if !SameDay(first, Day(2023, time.November, 1)) {
		t.Fatalf("range start = %v, want 2023-11-01", first)
	}
	if !SameDay(last, Day(2024, time.March, 31)) {
		t.Fatalf("range end = %v, want 2024-03-31", last)
	}
	checkContiguous(t, r)
}

func TestNewDateRangeValidation(t *testing.T) {
	if _, err := NewDateRange(Day(2024, time.January, 1), RangeConfig{ChunkMonths: 0, CapDays: 365}); err != ErrInvalidChunk {
		t.Fatalf("expected ErrInvalidChunk, got %v", err)
	}
	if _, err := NewDateRange(Day(2024, time.January, 1), RangeConfig{ChunkMonths: 2, CapDays: 30}); err != ErrInvalidCap {
		t.Fatalf("expected ErrInvalidCap, got %v", err)
	}
}

func TestIndexOfAndContains(t *testing.T) {
	r := mustRange(t, Day(2024, time.January, 15), DefaultRangeConfig())
	if got := r.IndexOf(Day(2023, time.November, 1)); got != 0 {
		t.Fatalf("IndexOf(first) = %d", got)
	}
	if got := r.IndexOf(Day(2023, time.November, 30)); got != 29 {
		t.Fatalf("IndexOf(nov 30) = %d", got)
	}
	if r.Contains(Day(2023, time.October, 31)) {
		t.Fatal("date before range should not be contained")
	}
	if r.Contains(Day(2024, time.April, 1)) {
		t.Fatal("date after range should not be contained")
	}
}

// Property: any sequence of extensions keeps the range contiguous and at or
// under the cap.
func TestExtendSequenceStaysContiguousAndCapped(t *testing.T) {
	r := mustRange(t, Day(2024, time.June, 10), DefaultRangeConfig())
	steps := []func() ExtendResult{
		r.ExtendEarlier, r.ExtendLater, r.ExtendLater,
		r.ExtendEarlier, r.ExtendEarlier, r.ExtendLater,
		r.ExtendEarlier, r.ExtendEarlier, r.ExtendEarlier,
	}
	for i, step := range steps {
		step()
		checkContiguous(t, r)
		if r.Len() > DefaultCapDays {
			t.Fatalf("after step %d range has %d cells, cap %d", i, r.Len(), DefaultCapDays)
		}
	}
}

func TestExtendEarlierEvictsLatestEnd(t *testing.T) {
	r := mustRange(t, Day(2024, time.June, 10), DefaultRangeConfig())
	// Grow until the cap engages.
	for i := 0; i < 4; i++ {
		r.ExtendEarlier()
	}
	firstBefore, _ := r.First()
	lastBefore, _ := r.Last()
	res := r.ExtendEarlier()
	firstAfter, _ := r.First()
	lastAfter, _ := r.Last()
	if res.Evicted == 0 {
		t.Fatal("expected eviction once over the cap")
	}
	if DaysBetween(firstAfter, firstBefore) <= 0 {
		t.Fatalf("earliest end did not grow: %v -> %v", firstBefore, firstAfter)
	}
	if DaysBetween(lastAfter, lastBefore) <= 0 {
		t.Fatalf("eviction should trim the latest end: %v -> %v", lastBefore, lastAfter)
	}
	// Both edges stay month-aligned after eviction.
	if firstAfter.Day() != 1 {
		t.Fatalf("range start not month-aligned: %v", firstAfter)
	}
	if !SameDay(lastAfter, LastOfMonth(lastAfter)) {
		t.Fatalf("range end not month-aligned: %v", lastAfter)
	}
}

func TestExtendLaterEvictsEarliestEnd(t *testing.T) {
	r := mustRange(t, Day(2024, time.June, 10), DefaultRangeConfig())
	for i := 0; i < 4; i++ {
		r.ExtendLater()
	}
	firstBefore, _ := r.First()
	res := r.ExtendLater()
	firstAfter, _ := r.First()
	if res.Evicted == 0 {
		t.Fatal("expected eviction once over the cap")
	}
	if DaysBetween(firstBefore, firstAfter) <= 0 {
		t.Fatalf("eviction should trim the earliest end: %v -> %v", firstBefore, firstAfter)
	}
	if firstAfter.Day() != 1 {
		t.Fatalf("range start not month-aligned: %v", firstAfter)
	}
}

func TestExtendReportsAddedCells(t *testing.T) {
	r := mustRange(t, Day(2024, time.January, 15), DefaultRangeConfig())
	res := r.ExtendEarlier()
	// Sep + Oct 2023.
	if res.Added != 30+31 {
		t.Fatalf("ExtendEarlier added %d cells, want 61", res.Added)
	}
	first, _ := r.First()
	if !SameDay(first, Day(2023, time.September, 1)) {
		t.Fatalf("range start = %v, want 2023-09-01", first)
	}
}

func TestMonths(t *testing.T) {
	r := mustRange(t, Day(2024, time.January, 15), RangeConfig{ChunkMonths: 1, CapDays: 365})
	months := r.Months()
	if len(months) != 3 {
		t.Fatalf("expected 3 month spans, got %d", len(months))
	}
	if months[0].Key != "2023-12" || months[0].StartCol != 0 || months[0].Days != 31 {
		t.Fatalf("unexpected first span %+v", months[0])
	}
	if months[1].Key != "2024-01" || months[1].StartCol != 31 || months[1].Days != 31 {
		t.Fatalf("unexpected middle span %+v", months[1])
	}
	if months[1].Label != "Jan '24" {
		t.Fatalf("unexpected label %q", months[1].Label)
	}
}

func TestDayCellFields(t *testing.T) {
	r := mustRange(t, Day(2024, time.January, 15), RangeConfig{ChunkMonths: 1, CapDays: 365})
	idx := r.IndexOf(Day(2024, time.January, 6))
	cell, ok := r.Cell(idx)
	if !ok {
		t.Fatal("cell lookup failed")
	}
	if cell.DayOfMon != 6 || cell.Weekday != time.Saturday || !cell.Weekend {
		t.Fatalf("unexpected cell %+v", cell)
	}
	if cell.MonthKey != "2024-01" {
		t.Fatalf("unexpected month key %q", cell.MonthKey)
	}
}
