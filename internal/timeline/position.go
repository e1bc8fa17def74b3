package timeline

// GridSpan locates an item's bar on the materialized axis. Start and End are
// column indexes after clamping; the flags record which edge was cut so the
// renderer can draw continuation arrows instead of bar caps.
type GridSpan struct {
	Start        int
	End          int
	ClampedStart bool
	ClampedEnd   bool
}

// Width returns the number of columns the span covers.
func (g GridSpan) Width() int {
	return g.End - g.Start + 1
}

// MapSpan projects an item's dates onto range columns. The second return is
// false when the item is unscheduled or its bar lies entirely outside the
// materialized range.
func MapSpan(r *DateRange, item Item) (GridSpan, bool) {
	if !item.Scheduled || r.Len() == 0 {
		return GridSpan{}, false
	}
	first, _ := r.First()
	start := DaysBetween(first, item.Start)
	end := DaysBetween(first, item.End)
	if end < 0 || start >= r.Len() {
		return GridSpan{}, false
	}
	span := GridSpan{Start: start, End: end}
	if span.Start < 0 {
		span.Start = 0
		span.ClampedStart = true
	}
	if span.End >= r.Len() {
		span.End = r.Len() - 1
		span.ClampedEnd = true
	}
	return span, true
}
