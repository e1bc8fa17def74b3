package tui

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/tavla/spann/internal/app"
	"github.com/tavla/spann/internal/timeline"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	monthStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("239"))
	accentStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	todayStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
)

// View handles view.
func (m Model) View() tea.View {
	if m.err != nil {
		v := tea.NewView("error: " + m.err.Error() + "\n\npress r to retry • q quit\n")
		v.MouseMode = tea.MouseModeCellMotion
		v.AltScreen = true
		return v
	}
	if !m.ready || m.rng == nil {
		v := tea.NewView("loading...")
		v.MouseMode = tea.MouseModeCellMotion
		v.AltScreen = true
		return v
	}

	content := m.renderTimeline()
	footer := m.renderFooter()
	contentHeight := max(0, m.height-lipgloss.Height(footer))
	full := fitLines(content, contentHeight) + "\n" + footer

	if overlay := m.renderOverlay(); overlay != "" {
		full = overlayOnContent(full, overlay, m.width, lipgloss.Height(full))
	}

	v := tea.NewView(full)
	v.MouseMode = tea.MouseModeCellMotion
	v.AltScreen = true
	return v
}

// renderTimeline draws the title row, the month and day headers, and one row
// per item, windowed to the visible columns and rows.
func (m Model) renderTimeline() string {
	today := timeline.NormalizeDay(m.now())
	rows := []string{
		m.renderTitleRow(),
		m.renderMonthHeader(),
		m.renderDayHeader(today),
	}

	visible := m.visibleRows()
	end := min(len(m.items), m.rowOffset+visible)
	for idx := m.rowOffset; idx < end; idx++ {
		rows = append(rows, m.renderItemRow(idx, m.items[idx]))
	}
	if row, ok := m.renderCreatePreviewRow(); ok {
		rows = append(rows, row)
	}
	if len(m.items) == 0 {
		rows = append(rows, "", mutedStyle.Render("  No tasks yet. Press n, or drag across empty cells."))
	}
	return strings.Join(rows, "\n")
}

// renderTitleRow shows the app name, project, and the visible span.
func (m Model) renderTitleRow() string {
	left := titleStyle.Render("spann") + " " + mutedStyle.Render(m.project.Name)
	span := ""
	if first, ok := m.rng.Cell(m.vp.Offset); ok {
		if last, ok2 := m.rng.Cell(m.vp.LastCol()); ok2 {
			span = spanLabel(timeline.Span{Start: first.Date, End: last.Date})
		}
	}
	right := dimStyle.Render(span)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 1
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderMonthHeader lays each month label over the columns it owns.
func (m Model) renderMonthHeader() string {
	cellW := m.timelineOpts.DayCellWidth
	viewStart, viewEnd := m.vp.Offset, m.vp.Offset+m.vp.Width
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", m.gutterWidth()))
	for _, mo := range m.rng.Months() {
		start := max(mo.StartCol, viewStart)
		end := min(mo.StartCol+mo.Days, viewEnd)
		if end <= start {
			continue
		}
		b.WriteString(monthStyle.Render(padOrTrunc(" "+mo.Label, (end-start)*cellW)))
	}
	return b.String()
}

// renderDayHeader draws day-of-month numbers, dimming weekends and
// highlighting today.
func (m Model) renderDayHeader(today time.Time) string {
	cellW := m.timelineOpts.DayCellWidth
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", m.gutterWidth()))
	for col := m.vp.Offset; col < m.vp.Offset+m.vp.Width; col++ {
		cell, ok := m.rng.Cell(col)
		if !ok {
			b.WriteString(strings.Repeat(" ", cellW))
			continue
		}
		style := mutedStyle
		if m.timelineOpts.DimWeekends && cell.Weekend {
			style = dimStyle
		}
		if timeline.SameDay(cell.Date, today) {
			style = todayStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("%*d", cellW, cell.DayOfMon)))
	}
	return b.String()
}

// renderItemRow draws the gutter label and, when the item is scheduled, its
// bar. A live drag on the item swaps the committed span for the preview.
func (m Model) renderItemRow(idx int, item timeline.Item) string {
	marker := "  "
	gutterStyle := mutedStyle
	if idx == m.selected {
		marker = "▸ "
		gutterStyle = accentStyle
	}
	gutter := gutterStyle.Render(padOrTrunc(marker+item.Ticket, m.gutterWidth()))

	bar := item
	previewing := false
	if sess, ok := m.machine.Session(); ok && sess.TaskID != "" && sess.TaskID == item.TaskID {
		if span, ok2 := m.machine.Preview(); ok2 {
			bar.Scheduled = true
			bar.Start, bar.End = span.Start, span.End
			previewing = true
		}
	}
	if !bar.Scheduled {
		return gutter + dimStyle.Render(" unscheduled")
	}
	gs, ok := timeline.MapSpan(m.rng, bar)
	if !ok {
		return gutter
	}
	return gutter + m.renderBarCells(bar, gs, previewing)
}

// renderCreatePreviewRow appends a phantom row while a create drag sweeps.
func (m Model) renderCreatePreviewRow() (string, bool) {
	sess, ok := m.machine.Session()
	if !ok || sess.Kind != timeline.DragCreate {
		return "", false
	}
	span, ok := m.machine.Preview()
	if !ok {
		return "", false
	}
	item := timeline.Item{
		Title:     "new task",
		Priority:  string(m.defaultPriority),
		Scheduled: true,
		Start:     span.Start,
		End:       span.End,
	}
	gs, ok := timeline.MapSpan(m.rng, item)
	if !ok {
		return "", false
	}
	gutter := dimStyle.Render(padOrTrunc("  +", m.gutterWidth()))
	return gutter + m.renderBarCells(item, gs, true), true
}

// renderBarCells draws the visible slice of one bar. The title flows across
// the bar cells; clamped edges are replaced with continuation arrows.
func (m Model) renderBarCells(item timeline.Item, gs timeline.GridSpan, previewing bool) string {
	cellW := m.timelineOpts.DayCellWidth
	viewStart, viewEnd := m.vp.Offset, m.vp.Offset+m.vp.Width

	visStart := max(gs.Start, viewStart)
	visEnd := min(gs.End+1, viewEnd)
	if visEnd <= visStart {
		return strings.Repeat(" ", (viewEnd-viewStart)*cellW)
	}

	full := []rune(padOrTrunc(" "+item.Title, gs.Width()*cellW))
	if gs.ClampedStart {
		full[0] = '◀'
	}
	if gs.ClampedEnd {
		full[len(full)-1] = '▶'
	}
	from := (visStart - gs.Start) * cellW
	slice := string(full[from : from+(visEnd-visStart)*cellW])

	style := lipgloss.NewStyle().
		Background(lipgloss.Color(m.palette.Background(item.Priority))).
		Foreground(lipgloss.Color(m.palette.Foreground(item.Priority)))
	if previewing {
		style = style.Faint(true)
	}

	leading := strings.Repeat(" ", (visStart-viewStart)*cellW)
	trailing := strings.Repeat(" ", (viewEnd-visEnd)*cellW)
	return leading + style.Render(slice) + trailing
}

// renderFooter stacks the status line over the bordered help line.
func (m Model) renderFooter() string {
	status := dimStyle.Render(padOrTrunc(" "+m.status, max(0, m.width)))
	helpBubble := m.help
	helpBubble.SetWidth(max(0, m.width-2))
	helpLine := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		BorderTop(true).
		BorderForeground(lipgloss.Color("239")).
		Padding(0, 1).
		Width(max(0, m.width)).
		Render(helpBubble.View(m.keys))
	return status + "\n" + helpLine
}

// renderOverlay draws the modal for the active input mode, if any.
func (m Model) renderOverlay() string {
	boxWidth := clamp(m.width-8, 28, 56)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2).
		Width(boxWidth)

	switch m.mode {
	case modeNewTask:
		content := strings.Join([]string{
			titleStyle.Render("New task"),
			mutedStyle.Render(spanLabel(m.pendingSpan)),
			"",
			m.titleInput.View(),
			"",
			dimStyle.Render("enter create · esc cancel"),
		}, "\n")
		return box.Render(content)

	case modeTaskInfo:
		task := m.infoTask
		prioritySwatch := lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.palette.Background(string(task.Priority)))).
			Render("■ " + string(task.Priority))
		schedule := "unscheduled"
		if task.Scheduled() {
			start, due := task.StartAt, task.DueAt
			if start == nil {
				start = due
			}
			if due == nil {
				due = start
			}
			schedule = spanLabel(timeline.NewSpan(*start, *due))
		}
		lines := []string{
			titleStyle.Render(task.Ticket + "  " + task.Title),
			"",
			mutedStyle.Render("priority  ") + prioritySwatch,
			mutedStyle.Render("schedule  ") + schedule,
		}
		if len(task.Labels) > 0 {
			lines = append(lines, mutedStyle.Render("labels    ")+"#"+strings.Join(task.Labels, " #"))
		}
		if desc := m.md.render(task.Description, boxWidth-6); desc != "" {
			lines = append(lines, "", desc)
		}
		lines = append(lines, "", dimStyle.Render("esc close"))
		return box.Render(strings.Join(lines, "\n"))

	case modeConfirmDelete:
		verb := "Archive"
		if m.defaultDeleteMode == app.DeleteModeHard {
			verb = "Delete"
		}
		content := strings.Join([]string{
			titleStyle.Render(fmt.Sprintf("%s %s?", verb, m.confirmItem.Ticket)),
			mutedStyle.Render(m.confirmItem.Title),
			"",
			dimStyle.Render("enter confirm · H hard delete · esc cancel"),
		}, "\n")
		return box.Render(content)
	}
	return ""
}

// clamp clamps the requested operation.
func clamp(v, minV, maxV int) int {
	if maxV < minV {
		return minV
	}
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

// fitLines fits lines.
func fitLines(content string, maxLines int) string {
	if maxLines <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	switch {
	case len(lines) > maxLines:
		if maxLines == 1 {
			lines = []string{"…"}
		} else {
			lines = append(lines[:maxLines-1], "…")
		}
	case len(lines) < maxLines:
		padding := make([]string, maxLines-len(lines))
		lines = append(lines, padding...)
	}
	return strings.Join(lines, "\n")
}

// overlayOnContent overlays on content.
func overlayOnContent(base, overlay string, width, height int) string {
	if width <= 0 || height <= 0 {
		if strings.TrimSpace(overlay) == "" {
			return base
		}
		return overlay + "\n\n" + base
	}

	base = fitLines(base, height)
	canvas := lipgloss.NewCanvas(width, height)
	baseLayer := lipgloss.NewLayer(base).X(0).Y(0).Z(0)
	centeredOverlay := lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		overlay,
	)
	overlayLayer := lipgloss.NewLayer(centeredOverlay).X(0).Y(0).Z(10)

	canvas.Compose(baseLayer)
	canvas.Compose(overlayLayer)
	return canvas.Render()
}

// padOrTrunc fits a string to an exact rune width.
func padOrTrunc(s string, width int) string {
	if width <= 0 {
		return ""
	}
	rs := []rune(s)
	if len(rs) > width {
		if width == 1 {
			return "…"
		}
		return string(rs[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(rs))
}
