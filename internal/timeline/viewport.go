package timeline

// DefaultPageDays and DefaultLoadThresholdDays tune horizontal paging and
// the distance from a range edge at which more months are requested.
const (
	DefaultPageDays          = 30
	DefaultLoadThresholdDays = 20
)

// Viewport is the visible window onto the materialized axis: an offset in
// day columns plus a width in day columns. All motion clamps against the
// backing range, so the window can never scroll past materialized days.
type Viewport struct {
	Offset int
	Width  int
}

// Clamp snaps the offset into the valid window for a range of n columns.
func (v *Viewport) Clamp(n int) {
	maxOff := n - v.Width
	if maxOff < 0 {
		maxOff = 0
	}
	if v.Offset > maxOff {
		v.Offset = maxOff
	}
	if v.Offset < 0 {
		v.Offset = 0
	}
}

// ScrollBy moves the window by delta columns, clamped to the range.
func (v *Viewport) ScrollBy(delta, n int) {
	v.Offset += delta
	v.Clamp(n)
}

// ScrollToCol moves the window the minimal distance needed to make the
// given column visible.
func (v *Viewport) ScrollToCol(col, n int) {
	if col < v.Offset {
		v.Offset = col
	} else if col >= v.Offset+v.Width {
		v.Offset = col - v.Width + 1
	}
	v.Clamp(n)
}

// CenterOn places the given column in the middle of the window.
func (v *Viewport) CenterOn(col, n int) {
	v.Offset = col - v.Width/2
	v.Clamp(n)
}

// LastCol returns the last visible column index.
func (v Viewport) LastCol() int {
	return v.Offset + v.Width - 1
}

// Visible reports whether a column falls inside the window.
func (v Viewport) Visible(col int) bool {
	return col >= v.Offset && col <= v.LastCol()
}

// NeedEarlier reports whether the window has drifted close enough to the
// range start that earlier months should be materialized.
func (v Viewport) NeedEarlier(threshold int) bool {
	return v.Offset < threshold
}

// NeedLater is the symmetric check against the range end.
func (v Viewport) NeedLater(n, threshold int) bool {
	return n-(v.Offset+v.Width) < threshold
}
