package timeline

import "time"

// DragKind identifies which gesture a drag session performs.
type DragKind int

const (
	DragNone DragKind = iota
	DragResizeStart
	DragResizeEnd
	DragMove
	DragCreate
)

// String names the drag kind for logs.
func (k DragKind) String() string {
	switch k {
	case DragResizeStart:
		return "resize-start"
	case DragResizeEnd:
		return "resize-end"
	case DragMove:
		return "move"
	case DragCreate:
		return "create"
	default:
		return "none"
	}
}

// Span is an inclusive run of calendar days.
type Span struct {
	Start time.Time
	End   time.Time
}

// NewSpan builds a span from two dates in either order.
func NewSpan(a, b time.Time) Span {
	a, b = NormalizeDay(a), NormalizeDay(b)
	return Span{Start: MinDay(a, b), End: MaxDay(a, b)}
}

// Days returns the inclusive day count of the span.
func (s Span) Days() int {
	return DaysBetween(s.Start, s.End) + 1
}

// Equal reports calendar equality of both edges.
func (s Span) Equal(other Span) bool {
	return SameDay(s.Start, other.Start) && SameDay(s.End, other.End)
}

// Session is one live drag gesture. The preview is always recomputed from
// the original span and the current hover date; hovers never accumulate,
// except for create which tracks the min/max of every visited cell.
type Session struct {
	Kind   DragKind
	TaskID string
	Anchor time.Time
	Origin Span

	hover      *time.Time
	minVisited time.Time
	maxVisited time.Time
}

// Commit is the single persistence intent a released session produces.
// Create commits carry no TaskID.
type Commit struct {
	Kind   DragKind
	TaskID string
	Span   Span
}

// Machine owns at most one drag session plus the set of tasks with a
// persistence call still in flight. Commits for a task are serialized: a
// new drag on that task is refused until SettleCommit clears it.
type Machine struct {
	session  *Session
	inflight map[string]struct{}
}

// NewMachine returns an idle drag machine.
func NewMachine() *Machine {
	return &Machine{inflight: map[string]struct{}{}}
}

// Active reports whether a session is live.
func (m *Machine) Active() bool {
	return m.session != nil
}

// Session returns a copy of the live session, if any.
func (m *Machine) Session() (Session, bool) {
	if m.session == nil {
		return Session{}, false
	}
	return *m.session, true
}

// CommitPending reports whether a task still has a persistence call in
// flight.
func (m *Machine) CommitPending(taskID string) bool {
	_, ok := m.inflight[taskID]
	return ok
}

// SettleCommit marks a task's in-flight persistence call as finished,
// whether it succeeded or failed.
func (m *Machine) SettleCommit(taskID string) {
	delete(m.inflight, taskID)
}

// BeginResizeStart starts dragging the start edge of a task's span.
func (m *Machine) BeginResizeStart(taskID string, origin Span, anchor time.Time) bool {
	return m.beginTask(DragResizeStart, taskID, origin, anchor)
}

// BeginResizeEnd starts dragging the end edge of a task's span.
func (m *Machine) BeginResizeEnd(taskID string, origin Span, anchor time.Time) bool {
	return m.beginTask(DragResizeEnd, taskID, origin, anchor)
}

// BeginMove starts dragging a whole bar. The span start follows the
// hovered date; the original duration is preserved exactly.
func (m *Machine) BeginMove(taskID string, origin Span, anchor time.Time) bool {
	return m.beginTask(DragMove, taskID, origin, anchor)
}

// BeginCreate starts a create drag anchored on an empty cell.
func (m *Machine) BeginCreate(anchor time.Time) bool {
	if m.session != nil {
		return false
	}
	anchor = NormalizeDay(anchor)
	m.session = &Session{
		Kind:       DragCreate,
		Anchor:     anchor,
		hover:      &anchor,
		minVisited: anchor,
		maxVisited: anchor,
	}
	return true
}

func (m *Machine) beginTask(kind DragKind, taskID string, origin Span, anchor time.Time) bool {
	if m.session != nil || m.CommitPending(taskID) {
		return false
	}
	anchor = NormalizeDay(anchor)
	m.session = &Session{
		Kind:   kind,
		TaskID: taskID,
		Anchor: anchor,
		Origin: NewSpan(origin.Start, origin.End),
		hover:  &anchor,
	}
	return true
}

// Hover records the cell currently under the pointer.
func (m *Machine) Hover(date time.Time) {
	if m.session == nil {
		return
	}
	date = NormalizeDay(date)
	m.session.hover = &date
	if m.session.Kind == DragCreate {
		m.session.minVisited = MinDay(m.session.minVisited, date)
		m.session.maxVisited = MaxDay(m.session.maxVisited, date)
	}
}

// ClearHover marks the pointer as off-grid. A release in this state
// discards the session.
func (m *Machine) ClearHover() {
	if m.session == nil {
		return
	}
	m.session.hover = nil
}

// Preview returns the span the session would commit right now. False when
// no session is live or the pointer is off-grid.
func (m *Machine) Preview() (Span, bool) {
	if m.session == nil || m.session.hover == nil {
		return Span{}, false
	}
	return m.session.preview(*m.session.hover), true
}

func (s *Session) preview(hover time.Time) Span {
	switch s.Kind {
	case DragResizeStart:
		return Span{Start: MinDay(hover, s.Origin.End), End: s.Origin.End}
	case DragResizeEnd:
		return Span{Start: s.Origin.Start, End: MaxDay(hover, s.Origin.Start)}
	case DragMove:
		return Span{Start: hover, End: AddDays(hover, s.Origin.Days()-1)}
	case DragCreate:
		return Span{Start: s.minVisited, End: s.maxVisited}
	default:
		return Span{}
	}
}

// Release ends the session. It returns the commit intent and true when
// there is something to persist; a release with the pointer off-grid
// discards the session silently. Update commits mark the task in flight
// until SettleCommit.
func (m *Machine) Release() (Commit, bool) {
	s := m.session
	m.session = nil
	if s == nil || s.hover == nil {
		return Commit{}, false
	}
	commit := Commit{Kind: s.Kind, TaskID: s.TaskID, Span: s.preview(*s.hover)}
	if s.TaskID != "" {
		m.inflight[s.TaskID] = struct{}{}
	}
	return commit, true
}

// Cancel drops the session without producing a commit.
func (m *Machine) Cancel() {
	m.session = nil
}
