package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"
	"github.com/tavla/spann/internal/app"
	"github.com/tavla/spann/internal/domain"
	"github.com/tavla/spann/internal/timeline"
)

// Service represents service data used by this package.
type Service interface {
	EnsureSeedBoard(context.Context) (domain.Project, error)
	Board(context.Context, string) (app.BoardView, error)
	CreateScheduledTask(context.Context, app.CreateTaskInput) (domain.Task, error)
	UpdateTaskSchedule(context.Context, string, *time.Time, *time.Time) (domain.Task, error)
	MoveTask(ctx context.Context, taskID, toColumnID string, position int) (domain.Task, error)
	GetTask(context.Context, string) (domain.Task, error)
	DeleteTask(context.Context, string, app.DeleteMode) error
	RestoreTask(context.Context, string) (domain.Task, error)
}

// inputMode represents a selectable mode.
type inputMode int

// modeNone and related constants define package defaults.
const (
	modeNone inputMode = iota
	modeNewTask
	modeTaskInfo
	modeConfirmDelete
)

// wheelScrollDays is the horizontal step of one mouse-wheel notch.
const wheelScrollDays = 3

// Model is the schedule view: a gutter of tasks on the left and a scrollable
// day grid on the right, with drag gestures for rescheduling.
type Model struct {
	svc Service

	ready  bool
	width  int
	height int
	status string
	err    error

	keys keyMap
	help help.Model

	timelineOpts      TimelineOptions
	palette           *timeline.Palette
	defaultDeleteMode app.DeleteMode
	defaultPriority   domain.Priority
	now               func() time.Time

	project domain.Project
	columns []domain.Column
	items   []timeline.Item
	tasks   map[string]domain.Task

	lastArchivedID     string
	lastArchivedTicket string

	rng     *timeline.DateRange
	vp      timeline.Viewport
	machine *timeline.Machine

	mode        inputMode
	titleInput  textinput.Model
	pendingSpan timeline.Span
	infoTask    domain.Task
	confirmItem timeline.Item
	selected    int
	rowOffset   int

	loadSeq int
	md      markdownRenderer
}

// loadedMsg carries message data through update handling.
type loadedMsg struct {
	seq     int
	project domain.Project
	columns []domain.Column
	items   []timeline.Item
	tasks   map[string]domain.Task

	// date bounds over the scheduled tasks, for the initial range center
	dated    bool
	earliest time.Time
	latest   time.Time

	err error
}

// actionMsg carries message data through update handling.
type actionMsg struct {
	err          error
	status       string
	reload       bool
	settleTaskID string

	archivedTaskID string
	archivedTicket string
}

// taskDetailMsg refreshes the detail overlay with stored task state.
type taskDetailMsg struct {
	task domain.Task
	err  error
}

// NewModel constructs a new value for this package.
func NewModel(svc Service, opts ...Option) Model {
	h := help.New()
	h.ShowAll = false
	titleInput := textinput.New()
	titleInput.Prompt = "title: "
	titleInput.Placeholder = "what needs doing"
	titleInput.CharLimit = 120
	m := Model{
		svc:               svc,
		status:            "loading...",
		help:              h,
		keys:              newKeyMap(),
		timelineOpts:      DefaultTimelineOptions(),
		palette:           fallbackPalette(),
		defaultDeleteMode: app.DeleteModeArchive,
		defaultPriority:   domain.PriorityNone,
		now:               time.Now,
		tasks:             map[string]domain.Task{},
		machine:           timeline.NewMachine(),
		titleInput:        titleInput,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	return m
}

// fallbackPalette supplies bar colors when no palette option is given.
func fallbackPalette() *timeline.Palette {
	p, err := timeline.NewPalette([]timeline.Entry{
		{Priority: "none", Hex: "#6272a4"},
		{Priority: "low", Hex: "#50fa7b"},
		{Priority: "medium", Hex: "#f1fa8c"},
		{Priority: "high", Hex: "#ffb86c"},
		{Priority: "urgent", Hex: "#ff5555"},
	})
	if err != nil {
		panic(err)
	}
	return p
}

// Init handles init.
func (m Model) Init() tea.Cmd {
	return m.loadData
}

// loadData fetches the board and flattens it into render items. The seq is
// captured when the command is created so stale responses can be dropped.
func (m Model) loadData() tea.Msg {
	ctx := context.Background()
	project, err := m.svc.EnsureSeedBoard(ctx)
	if err != nil {
		return loadedMsg{seq: m.loadSeq, err: err}
	}
	board, err := m.svc.Board(ctx, project.ID)
	if err != nil {
		return loadedMsg{seq: m.loadSeq, err: err}
	}
	snap, items, tasks, err := flattenBoard(board)
	if err != nil {
		return loadedMsg{seq: m.loadSeq, err: err}
	}
	columns := make([]domain.Column, 0, len(board.Columns))
	for _, cv := range board.Columns {
		columns = append(columns, cv.Column)
	}
	msg := loadedMsg{seq: m.loadSeq, project: project, columns: columns, items: items, tasks: tasks}
	msg.earliest, msg.latest, msg.dated = snap.DateBounds()
	return msg
}

// flattenBoard converts the ordered board read model into timeline items.
func flattenBoard(board app.BoardView) (timeline.Snapshot, []timeline.Item, map[string]domain.Task, error) {
	columns := make([]timeline.ColumnRecord, 0, len(board.Columns))
	tasks := make(map[string]domain.Task)
	for _, cv := range board.Columns {
		records := make([]timeline.TaskRecord, 0, len(cv.Tasks))
		for _, task := range cv.Tasks {
			tasks[task.ID] = task
			records = append(records, timeline.TaskRecord{
				ID:       task.ID,
				Ticket:   task.Ticket,
				Title:    task.Title,
				Priority: string(task.Priority),
				ColumnID: task.ColumnID,
				Position: task.Position,
				Start:    task.StartAt,
				Due:      task.DueAt,
			})
		}
		columns = append(columns, timeline.ColumnRecord{
			ID:       cv.Column.ID,
			Name:     cv.Column.Name,
			Position: cv.Column.Position,
			Tasks:    records,
		})
	}
	snap, err := timeline.NewSnapshot(columns)
	if err != nil {
		return timeline.Snapshot{}, nil, nil, err
	}
	return snap, timeline.Project(snap), tasks, nil
}

// Update updates state for the requested operation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.width = msg.Width
		m.height = msg.Height
		m.syncViewport()
		return m, nil

	case loadedMsg:
		if msg.seq != m.loadSeq {
			return m, nil
		}
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.project = msg.project
		m.columns = msg.columns
		m.items = msg.items
		m.tasks = msg.tasks
		if m.rng == nil {
			center := timeline.NormalizeDay(m.now())
			if msg.dated {
				earliest := timeline.NormalizeDay(msg.earliest)
				center = timeline.AddDays(earliest, timeline.DaysBetween(msg.earliest, msg.latest)/2)
			}
			if err := m.seedRange(center); err != nil {
				m.err = err
				return m, nil
			}
		}
		m.syncViewport()
		m.selected = clamp(m.selected, 0, len(m.items)-1)
		m.clampRowOffset()
		if m.status == "" || m.status == "loading..." {
			m.status = "ready"
		}
		return m, nil

	case actionMsg:
		if msg.settleTaskID != "" {
			m.machine.SettleCommit(msg.settleTaskID)
		}
		if msg.archivedTaskID != "" {
			m.lastArchivedID = msg.archivedTaskID
			m.lastArchivedTicket = msg.archivedTicket
		}
		if msg.err != nil {
			m.status = msg.err.Error()
		} else if msg.status != "" {
			m.status = msg.status
		}
		if msg.reload {
			m.loadSeq++
			return m, m.loadData
		}
		return m, nil

	case taskDetailMsg:
		if msg.err == nil && m.mode == modeTaskInfo && msg.task.ID == m.infoTask.ID {
			m.infoTask = msg.task
		}
		return m, nil

	case tea.KeyPressMsg:
		if m.mode != modeNone {
			return m.handleInputModeKey(msg)
		}
		return m.handleNormalModeKey(msg)

	case tea.MouseWheelMsg:
		return m.handleMouseWheel(msg)

	case tea.MouseClickMsg:
		return m.handleMouseClick(msg)

	case tea.MouseMotionMsg:
		return m.handleMouseMotion(msg)

	case tea.MouseReleaseMsg:
		return m.handleMouseRelease(msg)

	default:
		return m, nil
	}
}

// seedRange materializes the axis around the given center. The viewport
// starts on today when today landed inside the range, else on the center.
func (m *Model) seedRange(center time.Time) error {
	center = timeline.NormalizeDay(center)
	rng, err := timeline.NewDateRange(center, m.rangeConfig())
	if err != nil {
		return err
	}
	m.rng = rng
	m.syncViewport()
	focus := center
	if today := timeline.NormalizeDay(m.now()); rng.Contains(today) {
		focus = today
	}
	m.vp.CenterOn(rng.IndexOf(focus), rng.Len())
	return nil
}

func (m Model) rangeConfig() timeline.RangeConfig {
	return timeline.RangeConfig{
		ChunkMonths: m.timelineOpts.ChunkMonths,
		CapDays:     m.timelineOpts.CapDays,
	}
}

// syncViewport resizes the visible window to the terminal width.
func (m *Model) syncViewport() {
	if m.rng == nil {
		return
	}
	cols := (m.width - m.gutterWidth()) / m.timelineOpts.DayCellWidth
	if cols < 1 {
		cols = 1
	}
	m.vp.Width = cols
	m.vp.Clamp(m.rng.Len())
}

// scrollBy shifts the viewport and grows the axis when the edge is near.
func (m *Model) scrollBy(delta int) {
	if m.rng == nil {
		return
	}
	m.vp.ScrollBy(delta, m.rng.Len())
	m.maybeExtend()
}

// maybeExtend grows the axis by one chunk when the viewport sits within the
// threshold of either edge. Eviction happens at the opposite end, so the
// offset is rebased to keep the same days on screen.
func (m *Model) maybeExtend() {
	if m.rng == nil {
		return
	}
	if m.vp.NeedEarlier(m.timelineOpts.ThresholdDays) {
		res := m.rng.ExtendEarlier()
		m.vp.Offset += res.Added
	}
	if m.vp.NeedLater(m.rng.Len(), m.timelineOpts.ThresholdDays) {
		res := m.rng.ExtendLater()
		m.vp.Offset -= res.Evicted
	}
	m.vp.Clamp(m.rng.Len())
}

// jumpToToday recenters on today, rebuilding the axis if today was evicted.
func (m *Model) jumpToToday() {
	today := timeline.NormalizeDay(m.now())
	if m.rng == nil || !m.rng.Contains(today) {
		rng, err := timeline.NewDateRange(today, m.rangeConfig())
		if err != nil {
			m.status = err.Error()
			return
		}
		m.rng = rng
		m.machine.Cancel()
	}
	m.syncViewport()
	m.vp.CenterOn(m.rng.IndexOf(today), m.rng.Len())
	m.status = "today"
}

// jumpToTask centers the selected task's start column, rebuilding the axis
// around the task when its span lies outside the materialized days.
func (m *Model) jumpToTask() {
	item, ok := m.selectedItem()
	if !ok || m.rng == nil {
		return
	}
	if !item.Scheduled {
		m.status = item.Ticket + " is unscheduled"
		return
	}
	start := timeline.NormalizeDay(item.Start)
	if !m.rng.Contains(start) {
		rng, err := timeline.NewDateRange(start, m.rangeConfig())
		if err != nil {
			m.status = err.Error()
			return
		}
		m.rng = rng
		m.machine.Cancel()
	}
	m.syncViewport()
	m.vp.CenterOn(m.rng.IndexOf(start), m.rng.Len())
	m.status = "jumped to " + item.Ticket
}

// handleNormalModeKey handles normal mode key.
func (m Model) handleNormalModeKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.cancel):
		if m.machine.Active() {
			m.machine.Cancel()
			m.status = "drag cancelled"
		}
		return m, nil

	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.reload):
		m.loadSeq++
		m.status = "reloading..."
		return m, m.loadData

	case key.Matches(msg, m.keys.toggleHelp):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.scrollLeft):
		m.scrollBy(-1)
		return m, nil

	case key.Matches(msg, m.keys.scrollRight):
		m.scrollBy(1)
		return m, nil

	case key.Matches(msg, m.keys.pageEarlier):
		m.scrollBy(-m.timelineOpts.PageDays)
		return m, nil

	case key.Matches(msg, m.keys.pageLater):
		m.scrollBy(m.timelineOpts.PageDays)
		return m, nil

	case key.Matches(msg, m.keys.today):
		m.jumpToToday()
		return m, nil

	case key.Matches(msg, m.keys.jumpTask):
		m.jumpToTask()
		return m, nil

	case key.Matches(msg, m.keys.rowUp):
		m.selected = clamp(m.selected-1, 0, len(m.items)-1)
		m.clampRowOffset()
		return m, nil

	case key.Matches(msg, m.keys.rowDown):
		m.selected = clamp(m.selected+1, 0, len(m.items)-1)
		m.clampRowOffset()
		return m, nil

	case key.Matches(msg, m.keys.newTask):
		today := timeline.NormalizeDay(m.now())
		m.pendingSpan = timeline.NewSpan(today, today)
		return m.startQuickCreate()

	case key.Matches(msg, m.keys.taskInfo):
		item, ok := m.selectedItem()
		if !ok {
			return m, nil
		}
		task, found := m.tasks[item.TaskID]
		if !found {
			m.status = "task not loaded"
			return m, nil
		}
		// Show the projected copy at once, then swap in the stored task.
		m.infoTask = task
		m.mode = modeTaskInfo
		return m, m.refreshTaskCmd(item.TaskID)

	case key.Matches(msg, m.keys.moveColumn):
		item, ok := m.selectedItem()
		if !ok {
			return m, nil
		}
		next, found := m.nextColumn(item.ColumnID)
		if !found {
			m.status = "no other column"
			return m, nil
		}
		m.status = "moving..."
		return m, m.moveTaskCmd(item, next)

	case key.Matches(msg, m.keys.undoDelete):
		if m.lastArchivedID == "" {
			m.status = "nothing to restore"
			return m, nil
		}
		taskID, ticket := m.lastArchivedID, m.lastArchivedTicket
		m.lastArchivedID, m.lastArchivedTicket = "", ""
		m.status = "restoring " + ticket + "..."
		return m, m.restoreTaskCmd(taskID)

	case key.Matches(msg, m.keys.deleteTask):
		item, ok := m.selectedItem()
		if !ok {
			return m, nil
		}
		m.confirmItem = item
		m.mode = modeConfirmDelete
		return m, nil

	case key.Matches(msg, m.keys.yankTicket):
		item, ok := m.selectedItem()
		if !ok {
			return m, nil
		}
		if err := clipboard.WriteAll(item.Ticket); err != nil {
			m.status = "clipboard unavailable: " + err.Error()
			return m, nil
		}
		m.status = "yanked " + item.Ticket
		return m, nil
	}
	return m, nil
}

// handleInputModeKey handles input mode key.
func (m Model) handleInputModeKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeNewTask:
		switch msg.String() {
		case "esc":
			m.mode = modeNone
			m.titleInput.Blur()
			m.status = "create cancelled"
			return m, nil
		case "enter":
			title := strings.TrimSpace(m.titleInput.Value())
			if title == "" {
				m.status = "title is required"
				return m, nil
			}
			m.mode = modeNone
			m.titleInput.Blur()
			m.status = "creating..."
			return m, m.createTaskCmd(title, m.pendingSpan)
		}
		var cmd tea.Cmd
		m.titleInput, cmd = m.titleInput.Update(msg)
		return m, cmd

	case modeTaskInfo:
		switch msg.String() {
		case "esc", "enter", "i", "q":
			m.mode = modeNone
		}
		return m, nil

	case modeConfirmDelete:
		switch msg.String() {
		case "esc", "n":
			m.mode = modeNone
			m.status = "delete cancelled"
		case "enter", "y":
			m.mode = modeNone
			return m, m.deleteTaskCmd(m.confirmItem, m.defaultDeleteMode)
		case "H":
			m.mode = modeNone
			return m, m.deleteTaskCmd(m.confirmItem, app.DeleteModeHard)
		}
		return m, nil
	}
	return m, nil
}

// startQuickCreate opens the one-line create form for the pending span.
func (m Model) startQuickCreate() (tea.Model, tea.Cmd) {
	m.mode = modeNewTask
	m.titleInput.SetValue("")
	m.status = fmt.Sprintf("new task %s", spanLabel(m.pendingSpan))
	return m, m.titleInput.Focus()
}

// handleMouseWheel scrolls the grid horizontally.
func (m Model) handleMouseWheel(msg tea.MouseWheelMsg) (tea.Model, tea.Cmd) {
	if m.mode != modeNone || m.help.ShowAll {
		return m, nil
	}
	switch msg.Button {
	case tea.MouseWheelUp:
		m.scrollBy(-wheelScrollDays)
	case tea.MouseWheelDown:
		m.scrollBy(wheelScrollDays)
	}
	return m, nil
}

// handleMouseClick hit-tests the grid and starts the matching drag gesture:
// a bar edge resizes, the bar body moves, an empty cell begins a create
// sweep. Clicks on the gutter only move the selection.
func (m Model) handleMouseClick(msg tea.MouseClickMsg) (tea.Model, tea.Cmd) {
	if m.mode != modeNone || m.help.ShowAll {
		return m, nil
	}
	if msg.Button != tea.MouseLeft {
		return m, nil
	}
	idx, onRow := m.itemRowAt(msg.Y)
	if onRow {
		m.selected = idx
	}
	date, onGrid := m.dateAt(msg.X)
	if !onGrid {
		return m, nil
	}
	if onRow {
		item := m.items[idx]
		if gs, ok := timeline.MapSpan(m.rng, item); ok {
			col := m.rng.IndexOf(date)
			if col >= gs.Start && col <= gs.End {
				span := timeline.NewSpan(item.Start, item.End)
				started := false
				switch {
				case col == gs.Start && !gs.ClampedStart:
					started = m.machine.BeginResizeStart(item.TaskID, span, date)
				case col == gs.End && !gs.ClampedEnd:
					started = m.machine.BeginResizeEnd(item.TaskID, span, date)
				default:
					started = m.machine.BeginMove(item.TaskID, span, date)
				}
				if !started {
					m.status = item.Ticket + " is still saving"
				}
				return m, nil
			}
		}
	}
	if m.machine.BeginCreate(date) {
		m.status = "drag to size the new task"
	}
	return m, nil
}

// handleMouseMotion feeds hover cells into the live drag session.
func (m Model) handleMouseMotion(msg tea.MouseMotionMsg) (tea.Model, tea.Cmd) {
	if !m.machine.Active() {
		return m, nil
	}
	if date, ok := m.dateAt(msg.X); ok {
		m.machine.Hover(date)
	} else {
		m.machine.ClearHover()
	}
	return m, nil
}

// handleMouseRelease finishes the drag. Task drags persist their span;
// create drags open the quick-create form instead. A release with the
// pointer off the grid discards the gesture.
func (m Model) handleMouseRelease(msg tea.MouseReleaseMsg) (tea.Model, tea.Cmd) {
	if !m.machine.Active() {
		return m, nil
	}
	commit, ok := m.machine.Release()
	if !ok {
		m.status = "drag discarded"
		return m, nil
	}
	if commit.Kind == timeline.DragCreate {
		m.pendingSpan = commit.Span
		return m.startQuickCreate()
	}
	m.status = "saving..."
	return m, m.commitScheduleCmd(commit)
}

// commitScheduleCmd persists a drag commit and settles the task either way.
func (m Model) commitScheduleCmd(c timeline.Commit) tea.Cmd {
	return func() tea.Msg {
		start, due := c.Span.Start, c.Span.End
		task, err := m.svc.UpdateTaskSchedule(context.Background(), c.TaskID, &start, &due)
		if err != nil {
			return actionMsg{err: err, settleTaskID: c.TaskID, reload: true}
		}
		return actionMsg{
			status:       fmt.Sprintf("%s → %s", task.Ticket, spanLabel(c.Span)),
			settleTaskID: c.TaskID,
			reload:       true,
		}
	}
}

// createTaskCmd creates a task scheduled on the given span. The column is
// left blank so the service places it in the lowest-position column.
func (m Model) createTaskCmd(title string, span timeline.Span) tea.Cmd {
	projectID := m.project.ID
	priority := m.defaultPriority
	return func() tea.Msg {
		start, due := span.Start, span.End
		task, err := m.svc.CreateScheduledTask(context.Background(), app.CreateTaskInput{
			ProjectID: projectID,
			Title:     title,
			Priority:  priority,
			StartAt:   &start,
			DueAt:     &due,
		})
		if err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{status: task.Ticket + " created", reload: true}
	}
}

// deleteTaskCmd removes or archives a task per the chosen mode. Archived
// tasks are remembered so the next undo can restore them.
func (m Model) deleteTaskCmd(item timeline.Item, mode app.DeleteMode) tea.Cmd {
	return func() tea.Msg {
		if err := m.svc.DeleteTask(context.Background(), item.TaskID, mode); err != nil {
			return actionMsg{err: err}
		}
		if mode == app.DeleteModeHard {
			return actionMsg{status: item.Ticket + " deleted", reload: true}
		}
		return actionMsg{
			status:         item.Ticket + " archived (u restores)",
			reload:         true,
			archivedTaskID: item.TaskID,
			archivedTicket: item.Ticket,
		}
	}
}

// restoreTaskCmd brings the most recently archived task back onto the board.
func (m Model) restoreTaskCmd(taskID string) tea.Cmd {
	return func() tea.Msg {
		task, err := m.svc.RestoreTask(context.Background(), taskID)
		if err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{status: task.Ticket + " restored", reload: true}
	}
}

// refreshTaskCmd re-reads the task behind the detail overlay so it shows
// stored state rather than the board projection it was opened from.
func (m Model) refreshTaskCmd(taskID string) tea.Cmd {
	return func() tea.Msg {
		task, err := m.svc.GetTask(context.Background(), taskID)
		return taskDetailMsg{task: task, err: err}
	}
}

// nextColumn cycles to the column after the given one in board order.
func (m Model) nextColumn(columnID string) (domain.Column, bool) {
	if len(m.columns) < 2 {
		return domain.Column{}, false
	}
	for i, c := range m.columns {
		if c.ID == columnID {
			return m.columns[(i+1)%len(m.columns)], true
		}
	}
	return domain.Column{}, false
}

// moveTaskCmd sends the task to the end of the given column.
func (m Model) moveTaskCmd(item timeline.Item, col domain.Column) tea.Cmd {
	position := 0
	for _, it := range m.items {
		if it.ColumnID == col.ID && it.TaskPosition >= position {
			position = it.TaskPosition + 1
		}
	}
	return func() tea.Msg {
		task, err := m.svc.MoveTask(context.Background(), item.TaskID, col.ID, position)
		if err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{status: task.Ticket + " → " + col.Name, reload: true}
	}
}

// selectedItem returns the item under the selection cursor.
func (m Model) selectedItem() (timeline.Item, bool) {
	if m.selected < 0 || m.selected >= len(m.items) {
		return timeline.Item{}, false
	}
	return m.items[m.selected], true
}

// gutterWidth is the fixed left column holding ticket labels.
func (m Model) gutterWidth() int {
	return 16
}

// timelineTop is the row where item rows begin: title, months, days.
func (m Model) timelineTop() int {
	return 3
}

// visibleRows is how many item rows fit between the headers and the footer.
func (m Model) visibleRows() int {
	rows := m.height - m.timelineTop() - 2
	if rows < 1 {
		rows = 1
	}
	return rows
}

// clampRowOffset keeps the selected row inside the visible row window.
func (m *Model) clampRowOffset() {
	rows := m.visibleRows()
	if m.selected < m.rowOffset {
		m.rowOffset = m.selected
	}
	if m.selected >= m.rowOffset+rows {
		m.rowOffset = m.selected - rows + 1
	}
	m.rowOffset = clamp(m.rowOffset, 0, max(0, len(m.items)-1))
}

// dateAt maps a terminal x position to the day column under it.
func (m Model) dateAt(x int) (time.Time, bool) {
	if m.rng == nil || x < m.gutterWidth() {
		return time.Time{}, false
	}
	col := m.vp.Offset + (x-m.gutterWidth())/m.timelineOpts.DayCellWidth
	if !m.vp.Visible(col) {
		return time.Time{}, false
	}
	cell, ok := m.rng.Cell(col)
	if !ok {
		return time.Time{}, false
	}
	return cell.Date, true
}

// itemRowAt maps a terminal y position to an item index.
func (m Model) itemRowAt(y int) (int, bool) {
	row := y - m.timelineTop() + m.rowOffset
	if row < m.rowOffset || row >= min(len(m.items), m.rowOffset+m.visibleRows()) {
		return 0, false
	}
	return row, true
}

// spanLabel formats an inclusive span for status lines and overlays.
func spanLabel(s timeline.Span) string {
	if timeline.SameDay(s.Start, s.End) {
		return s.Start.Format("Jan 2")
	}
	if s.Start.Year() == s.End.Year() && s.Start.Month() == s.End.Month() {
		return fmt.Sprintf("%s–%d", s.Start.Format("Jan 2"), s.End.Day())
	}
	return fmt.Sprintf("%s – %s", s.Start.Format("Jan 2"), s.End.Format("Jan 2"))
}
