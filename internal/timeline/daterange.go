package timeline

import (
	"fmt"
	"time"
)

// DefaultChunkMonths and DefaultCapDays bound how much of the date axis is
// materialized at once.
const (
	DefaultChunkMonths = 2
	DefaultCapDays     = 365
)

// DayCell is one materialized day of the axis with its cheap display fields.
type DayCell struct {
	Date     time.Time
	DayOfMon int
	Weekday  time.Weekday
	Weekend  bool
	MonthKey string // "2006-01"
}

// MonthSpan describes one contiguous month segment of the range, used to
// render the "Jan '06" header row.
type MonthSpan struct {
	Key      string
	Label    string
	StartCol int
	Days     int
}

// RangeConfig bounds the growth behavior of a DateRange.
type RangeConfig struct {
	ChunkMonths int
	CapDays     int
}

// DefaultRangeConfig returns the stock chunk/cap sizing.
func DefaultRangeConfig() RangeConfig {
	return RangeConfig{ChunkMonths: DefaultChunkMonths, CapDays: DefaultCapDays}
}

// ExtendResult reports how an extension changed the range.
type ExtendResult struct {
	Added   int // cells prepended/appended at the grown end
	Evicted int // cells removed from the opposite end to respect the cap
}

// DateRange owns the ordered, contiguous run of day cells backing the
// visible axis. The range always starts on the 1st of a month and ends on a
// month's last day; growth and eviction both work in whole months so the
// header row never shows a partial month.
type DateRange struct {
	cfg   RangeConfig
	cells []DayCell
}

// NewDateRange seeds a range of one chunk before and after center,
// month-aligned.
func NewDateRange(center time.Time, cfg RangeConfig) (*DateRange, error) {
	if cfg.ChunkMonths <= 0 {
		return nil, ErrInvalidChunk
	}
	if cfg.CapDays < cfg.ChunkMonths*31 {
		return nil, ErrInvalidCap
	}
	center = NormalizeDay(center)
	start := FirstOfMonth(center.AddDate(0, -cfg.ChunkMonths, 0))
	end := LastOfMonth(center.AddDate(0, cfg.ChunkMonths, 0))

	r := &DateRange{cfg: cfg}
	r.cells = appendDays(nil, start, end)
	// An oversized seed gives up its far end; the centered month survives.
	r.evictMonthsFromTail()
	return r, nil
}

// Len returns the number of materialized cells.
func (r *DateRange) Len() int {
	return len(r.cells)
}

// Cells exposes the materialized run for rendering. Callers must not mutate.
func (r *DateRange) Cells() []DayCell {
	return r.cells
}

// Cell returns one cell by column index.
func (r *DateRange) Cell(idx int) (DayCell, bool) {
	if idx < 0 || idx >= len(r.cells) {
		return DayCell{}, false
	}
	return r.cells[idx], true
}

// First returns the earliest materialized date.
func (r *DateRange) First() (time.Time, bool) {
	if len(r.cells) == 0 {
		return time.Time{}, false
	}
	return r.cells[0].Date, true
}

// Last returns the latest materialized date.
func (r *DateRange) Last() (time.Time, bool) {
	if len(r.cells) == 0 {
		return time.Time{}, false
	}
	return r.cells[len(r.cells)-1].Date, true
}

// IndexOf locates a date by exact calendar match, or -1 when the date is not
// materialized. Contiguity makes this pure day arithmetic.
func (r *DateRange) IndexOf(date time.Time) int {
	if len(r.cells) == 0 {
		return -1
	}
	idx := DaysBetween(r.cells[0].Date, NormalizeDay(date))
	if idx < 0 || idx >= len(r.cells) {
		return -1
	}
	return idx
}

// Contains reports whether a date is materialized.
func (r *DateRange) Contains(date time.Time) bool {
	return r.IndexOf(date) >= 0
}

// ExtendEarlier prepends one chunk of whole months before the current start.
// When the cap is exceeded the latest months are evicted, so the grown end
// always keeps its new chunk.
func (r *DateRange) ExtendEarlier() ExtendResult {
	if len(r.cells) == 0 {
		return ExtendResult{}
	}
	first := r.cells[0].Date
	newStart := FirstOfMonth(first.AddDate(0, -r.cfg.ChunkMonths, 0))
	added := appendDays(nil, newStart, AddDays(first, -1))
	r.cells = append(added, r.cells...)
	evicted := r.evictMonthsFromTail()
	return ExtendResult{Added: len(added), Evicted: evicted}
}

// ExtendLater appends one chunk of whole months after the current end,
// evicting the earliest months on cap overflow.
func (r *DateRange) ExtendLater() ExtendResult {
	if len(r.cells) == 0 {
		return ExtendResult{}
	}
	last := r.cells[len(r.cells)-1].Date
	newEnd := LastOfMonth(last.AddDate(0, r.cfg.ChunkMonths, 0))
	before := len(r.cells)
	r.cells = appendDays(r.cells, AddDays(last, 1), newEnd)
	added := len(r.cells) - before
	evicted := r.evictMonthsFromHead()
	return ExtendResult{Added: added, Evicted: evicted}
}

// Months yields the contiguous month spans of the range in order.
func (r *DateRange) Months() []MonthSpan {
	out := make([]MonthSpan, 0, len(r.cells)/28+1)
	for idx, cell := range r.cells {
		if len(out) > 0 && out[len(out)-1].Key == cell.MonthKey {
			out[len(out)-1].Days++
			continue
		}
		out = append(out, MonthSpan{
			Key:      cell.MonthKey,
			Label:    cell.Date.Format("Jan '06"),
			StartCol: idx,
			Days:     1,
		})
	}
	return out
}

// evictMonthsFromTail drops whole months from the latest end until the cap
// holds. Returns the number of evicted cells.
func (r *DateRange) evictMonthsFromTail() int {
	evicted := 0
	for len(r.cells) > r.cfg.CapDays {
		lastKey := r.cells[len(r.cells)-1].MonthKey
		cut := len(r.cells)
		for cut > 0 && r.cells[cut-1].MonthKey == lastKey {
			cut--
		}
		if cut == 0 {
			break // never evict the only remaining month
		}
		evicted += len(r.cells) - cut
		r.cells = r.cells[:cut]
	}
	return evicted
}

// evictMonthsFromHead is the symmetric eviction for later-growth.
func (r *DateRange) evictMonthsFromHead() int {
	evicted := 0
	for len(r.cells) > r.cfg.CapDays {
		firstKey := r.cells[0].MonthKey
		cut := 0
		for cut < len(r.cells) && r.cells[cut].MonthKey == firstKey {
			cut++
		}
		if cut == len(r.cells) {
			break
		}
		evicted += cut
		r.cells = r.cells[cut:]
	}
	return evicted
}

// appendDays extends cells with every day of [start, end] inclusive.
func appendDays(cells []DayCell, start, end time.Time) []DayCell {
	for d := start; DaysBetween(d, end) >= 0; d = AddDays(d, 1) {
		cells = append(cells, newDayCell(d))
	}
	return cells
}

// newDayCell computes the derived display fields once at generation time.
func newDayCell(date time.Time) DayCell {
	return DayCell{
		Date:     date,
		DayOfMon: date.Day(),
		Weekday:  date.Weekday(),
		Weekend:  IsWeekend(date),
		MonthKey: fmt.Sprintf("%04d-%02d", date.Year(), int(date.Month())),
	}
}
