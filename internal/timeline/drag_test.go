package timeline

import (
	"testing"
	"time"
)

func jan(day int) time.Time { return Day(2024, time.January, day) }

func TestBeginRefusedWhileActive(t *testing.T) {
	m := NewMachine()
	if !m.BeginMove("t1", NewSpan(jan(10), jan(15)), jan(12)) {
		t.Fatal("first begin should succeed")
	}
	if m.BeginCreate(jan(20)) {
		t.Fatal("begin while a session is active should be refused")
	}
	if m.BeginResizeEnd("t2", NewSpan(jan(1), jan(2)), jan(2)) {
		t.Fatal("begin while a session is active should be refused")
	}
}

func TestCommitSerializationPerTask(t *testing.T) {
	m := NewMachine()
	m.BeginResizeEnd("t1", NewSpan(jan(1), jan(3)), jan(3))
	m.Hover(jan(10))
	if _, ok := m.Release(); !ok {
		t.Fatal("release should produce a commit")
	}
	if m.BeginMove("t1", NewSpan(jan(1), jan(10)), jan(5)) {
		t.Fatal("drag on a task with an in-flight commit should be refused")
	}
	if !m.BeginMove("t2", NewSpan(jan(1), jan(2)), jan(1)) {
		t.Fatal("other tasks stay draggable")
	}
	m.Cancel()
	m.SettleCommit("t1")
	if !m.BeginMove("t1", NewSpan(jan(1), jan(10)), jan(5)) {
		t.Fatal("settled task should be draggable again")
	}
}

func TestResizeStartClampsAtEnd(t *testing.T) {
	m := NewMachine()
	m.BeginResizeStart("t1", NewSpan(jan(10), jan(15)), jan(10))
	m.Hover(jan(5))
	if span, _ := m.Preview(); !SameDay(span.Start, jan(5)) || !SameDay(span.End, jan(15)) {
		t.Fatalf("preview = %+v", span)
	}
	// Dragging the start past the end collapses to [end, end].
	m.Hover(jan(20))
	span, ok := m.Preview()
	if !ok || !SameDay(span.Start, jan(15)) || !SameDay(span.End, jan(15)) {
		t.Fatalf("past-end preview = %+v", span)
	}
	commit, ok := m.Release()
	if !ok || commit.Kind != DragResizeStart || commit.TaskID != "t1" {
		t.Fatalf("commit = %+v ok=%v", commit, ok)
	}
	if !SameDay(commit.Span.Start, jan(15)) || !SameDay(commit.Span.End, jan(15)) {
		t.Fatalf("commit span = %+v", commit.Span)
	}
}

func TestResizeEndOfSingleDaySpan(t *testing.T) {
	m := NewMachine()
	m.BeginResizeEnd("t1", NewSpan(jan(10), jan(10)), jan(10))
	m.Hover(jan(5))
	commit, ok := m.Release()
	if !ok {
		t.Fatal("release should commit")
	}
	if !SameDay(commit.Span.Start, jan(10)) || !SameDay(commit.Span.End, jan(10)) {
		t.Fatalf("commit span = %+v, want [10,10]", commit.Span)
	}
}

func TestMoveStartsOnHoveredDate(t *testing.T) {
	m := NewMachine()
	m.BeginMove("t1", NewSpan(jan(5), jan(10)), jan(5))
	m.Hover(jan(20))
	commit, ok := m.Release()
	if !ok {
		t.Fatal("release should commit")
	}
	if !SameDay(commit.Span.Start, jan(20)) || !SameDay(commit.Span.End, jan(25)) {
		t.Fatalf("commit span = %+v, want [20,25]", commit.Span)
	}
	if commit.Span.Days() != 6 {
		t.Fatalf("duration changed: %d days", commit.Span.Days())
	}
}

// A mid-bar grab still lands the span start on the released cell.
func TestMoveMidBarGrabFollowsHover(t *testing.T) {
	m := NewMachine()
	m.BeginMove("t1", NewSpan(jan(10), jan(15)), jan(12))
	m.Hover(jan(22))
	commit, ok := m.Release()
	if !ok {
		t.Fatal("release should commit")
	}
	if !SameDay(commit.Span.Start, jan(22)) || !SameDay(commit.Span.End, jan(27)) {
		t.Fatalf("commit span = %+v, want [22,27]", commit.Span)
	}
}

func TestMovePreviewDoesNotAccumulate(t *testing.T) {
	m := NewMachine()
	m.BeginMove("t1", NewSpan(jan(10), jan(12)), jan(10))
	m.Hover(jan(20))
	m.Hover(jan(11))
	span, ok := m.Preview()
	if !ok || !SameDay(span.Start, jan(11)) || !SameDay(span.End, jan(13)) {
		t.Fatalf("preview = %+v, want [11,13]", span)
	}
}

func TestCreateIsOrderIndependent(t *testing.T) {
	forward := NewMachine()
	forward.BeginCreate(jan(5))
	forward.Hover(jan(10))
	a, ok := forward.Release()
	if !ok {
		t.Fatal("forward create should commit")
	}
	backward := NewMachine()
	backward.BeginCreate(jan(10))
	backward.Hover(jan(5))
	b, ok := backward.Release()
	if !ok {
		t.Fatal("backward create should commit")
	}
	if !a.Span.Equal(b.Span) {
		t.Fatalf("spans differ: %+v vs %+v", a.Span, b.Span)
	}
	if a.Kind != DragCreate || a.TaskID != "" {
		t.Fatalf("unexpected create commit %+v", a)
	}
}

func TestCreateTracksVisitedExtremes(t *testing.T) {
	m := NewMachine()
	m.BeginCreate(jan(10))
	m.Hover(jan(3))
	m.Hover(jan(8)) // back inside: extremes stick
	commit, ok := m.Release()
	if !ok {
		t.Fatal("release should commit")
	}
	if !SameDay(commit.Span.Start, jan(3)) || !SameDay(commit.Span.End, jan(10)) {
		t.Fatalf("commit span = %+v, want [3,10]", commit.Span)
	}
}

func TestReleaseOffGridDiscards(t *testing.T) {
	m := NewMachine()
	m.BeginMove("t1", NewSpan(jan(10), jan(15)), jan(12))
	m.Hover(jan(20))
	m.ClearHover()
	if _, ok := m.Release(); ok {
		t.Fatal("off-grid release must discard")
	}
	if m.CommitPending("t1") {
		t.Fatal("discarded session must not mark the task in flight")
	}
	if m.Active() {
		t.Fatal("machine should be idle after release")
	}
}

func TestCancelDropsSession(t *testing.T) {
	m := NewMachine()
	m.BeginCreate(jan(5))
	m.Cancel()
	if m.Active() {
		t.Fatal("cancel should idle the machine")
	}
	if _, ok := m.Release(); ok {
		t.Fatal("release after cancel must not commit")
	}
}

// End-to-end over the pure layers: project a board, locate the bar on the
// range, drag its end, and check the resulting commit.
func TestProjectMapDragRoundTrip(t *testing.T) {
	snap, err := NewSnapshot([]ColumnRecord{
		{ID: "c1", Name: "Todo", Position: 0, Tasks: []TaskRecord{
			{ID: "t1", Ticket: "T-1", Title: "ship it", Priority: "high", Position: 0,
				Start: dayPtr(2024, time.January, 1), Due: dayPtr(2024, time.January, 3)},
		}},
	})
	if err != nil {
		t.Fatalf("NewSnapshot() error = %v", err)
	}
	r := mustRange(t, Day(2024, time.January, 2), DefaultRangeConfig())

	items := Project(snap)
	if len(items) != 1 {
		t.Fatalf("expected one item, got %d", len(items))
	}
	span, ok := MapSpan(r, items[0])
	if !ok {
		t.Fatal("item should map onto the range")
	}
	if span.Width() != 3 {
		t.Fatalf("bar width = %d, want 3", span.Width())
	}
	if span.Start != r.IndexOf(jan(1)) {
		t.Fatalf("bar starts at col %d, want %d", span.Start, r.IndexOf(jan(1)))
	}

	m := NewMachine()
	endCell, _ := r.Cell(span.End)
	if !m.BeginResizeEnd(items[0].TaskID, NewSpan(items[0].Start, items[0].End), endCell.Date) {
		t.Fatal("begin resize-end failed")
	}
	target, _ := r.Cell(r.IndexOf(jan(10)))
	m.Hover(target.Date)
	commit, ok := m.Release()
	if !ok {
		t.Fatal("release should commit")
	}
	if !SameDay(commit.Span.Start, jan(1)) {
		t.Fatalf("start moved: %v", commit.Span.Start)
	}
	if !SameDay(commit.Span.End, jan(10)) {
		t.Fatalf("end = %v, want 2024-01-10", commit.Span.End)
	}
}
