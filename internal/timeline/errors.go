package timeline

import "errors"

var (
	ErrEmptyRange        = errors.New("date range is empty")
	ErrInvalidChunk      = errors.New("chunk months must be positive")
	ErrInvalidCap        = errors.New("cap days must cover at least one chunk")
	ErrInvalidColumnID   = errors.New("invalid column id")
	ErrInvalidTaskID     = errors.New("invalid task id")
	ErrDuplicateColumnID = errors.New("duplicate column id")
	ErrDuplicateTaskID   = errors.New("duplicate task id")
	ErrInvalidHexColor   = errors.New("invalid hex color")
	ErrEmptyPalette      = errors.New("palette must include at least one entry")
)
