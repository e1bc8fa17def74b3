package tui

import (
	"time"

	"github.com/tavla/spann/internal/app"
	"github.com/tavla/spann/internal/domain"
	"github.com/tavla/spann/internal/timeline"
)

// TimelineOptions sizes the date axis and its rendering grid.
type TimelineOptions struct {
	ChunkMonths   int
	CapDays       int
	PageDays      int
	ThresholdDays int
	DayCellWidth  int
	DimWeekends   bool
}

type Option func(*Model)

// DefaultTimelineOptions returns the stock axis sizing.
func DefaultTimelineOptions() TimelineOptions {
	return TimelineOptions{
		ChunkMonths:   timeline.DefaultChunkMonths,
		CapDays:       timeline.DefaultCapDays,
		PageDays:      timeline.DefaultPageDays,
		ThresholdDays: timeline.DefaultLoadThresholdDays,
		DayCellWidth:  3,
		DimWeekends:   true,
	}
}

func WithTimelineOptions(opts TimelineOptions) Option {
	return func(m *Model) {
		if opts.ChunkMonths > 0 {
			m.timelineOpts.ChunkMonths = opts.ChunkMonths
		}
		if opts.CapDays > 0 {
			m.timelineOpts.CapDays = opts.CapDays
		}
		if opts.PageDays > 0 {
			m.timelineOpts.PageDays = opts.PageDays
		}
		if opts.ThresholdDays > 0 {
			m.timelineOpts.ThresholdDays = opts.ThresholdDays
		}
		if opts.DayCellWidth > 0 {
			m.timelineOpts.DayCellWidth = opts.DayCellWidth
		}
		m.timelineOpts.DimWeekends = opts.DimWeekends
	}
}

func WithPalette(p *timeline.Palette) Option {
	return func(m *Model) {
		if p != nil {
			m.palette = p
		}
	}
}

func WithDefaultDeleteMode(mode app.DeleteMode) Option {
	return func(m *Model) {
		switch mode {
		case app.DeleteModeArchive, app.DeleteModeHard:
			m.defaultDeleteMode = mode
		}
	}
}

func WithDefaultPriority(p domain.Priority) Option {
	return func(m *Model) {
		if parsed, err := domain.ParsePriority(string(p)); err == nil {
			m.defaultPriority = parsed
		}
	}
}

func WithKeyOverrides(o KeyOverrides) Option {
	return func(m *Model) {
		m.keys = m.keys.apply(o)
	}
}

// WithNow pins the clock that decides the today marker and the seed center
// of the axis. Tests use this for stable output.
func WithNow(now func() time.Time) Option {
	return func(m *Model) {
		if now != nil {
			m.now = now
		}
	}
}
