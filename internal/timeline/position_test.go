package timeline

import (
	"testing"
	"time"
)

func scheduledItem(start, end time.Time) Item {
	return Item{TaskID: "t1", Ticket: "T-1", Scheduled: true, Start: start, End: end}
}

func TestMapSpanInsideRange(t *testing.T) {
	r := mustRange(t, Day(2024, time.January, 15), RangeConfig{ChunkMonths: 1, CapDays: 365})
	item := scheduledItem(Day(2024, time.January, 1), Day(2024, time.January, 3))
	span, ok := MapSpan(r, item)
	if !ok {
		t.Fatal("span should map")
	}
	if span.Start != 31 || span.End != 33 {
		t.Fatalf("span = %+v, want cols 31..33", span)
	}
	if span.ClampedStart || span.ClampedEnd {
		t.Fatalf("in-range span should not clamp: %+v", span)
	}
	if span.Width() != 3 {
		t.Fatalf("width = %d, want 3", span.Width())
	}
}

func TestMapSpanSingleDayGetsOneColumn(t *testing.T) {
	r := mustRange(t, Day(2024, time.January, 15), RangeConfig{ChunkMonths: 1, CapDays: 365})
	d := Day(2024, time.January, 10)
	span, ok := MapSpan(r, scheduledItem(d, d))
	if !ok {
		t.Fatal("span should map")
	}
	if span.Width() != 1 {
		t.Fatalf("single-day span width = %d", span.Width())
	}
	if span.Start != r.IndexOf(d) {
		t.Fatalf("span col = %d, want %d", span.Start, r.IndexOf(d))
	}
}

func TestMapSpanClampsEdges(t *testing.T) {
	r := mustRange(t, Day(2024, time.January, 15), RangeConfig{ChunkMonths: 1, CapDays: 365})
	// Range covers 2023-12-01..2024-02-29.
	span, ok := MapSpan(r, scheduledItem(Day(2023, time.November, 20), Day(2023, time.December, 5)))
	if !ok {
		t.Fatal("overlapping span should map")
	}
	if span.Start != 0 || !span.ClampedStart || span.ClampedEnd {
		t.Fatalf("start clamp wrong: %+v", span)
	}
	span, ok = MapSpan(r, scheduledItem(Day(2024, time.February, 25), Day(2024, time.March, 10)))
	if !ok {
		t.Fatal("overlapping span should map")
	}
	if span.End != r.Len()-1 || !span.ClampedEnd || span.ClampedStart {
		t.Fatalf("end clamp wrong: %+v", span)
	}
}

func TestMapSpanOutsideRange(t *testing.T) {
	r := mustRange(t, Day(2024, time.January, 15), RangeConfig{ChunkMonths: 1, CapDays: 365})
	if _, ok := MapSpan(r, scheduledItem(Day(2023, time.June, 1), Day(2023, time.June, 10))); ok {
		t.Fatal("span entirely before range should not map")
	}
	if _, ok := MapSpan(r, scheduledItem(Day(2024, time.June, 1), Day(2024, time.June, 10))); ok {
		t.Fatal("span entirely after range should not map")
	}
	if _, ok := MapSpan(r, Item{TaskID: "t1"}); ok {
		t.Fatal("unscheduled item should not map")
	}
}
