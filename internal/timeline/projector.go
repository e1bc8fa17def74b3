package timeline

import (
	"sort"
	"time"
)

// Item is one renderable row of the schedule view: a task plus the
// normalized dates its bar spans. Dateless tasks still appear in the list
// with Scheduled false so the sidebar can show them without a bar.
type Item struct {
	TaskID         string
	Ticket         string
	Title          string
	Priority       string
	ColumnID       string
	ColumnName     string
	ColumnPosition int
	TaskPosition   int
	Scheduled      bool
	Start          time.Time
	End            time.Time
}

// Span returns the inclusive day length of the item's bar.
func (it Item) Span() int {
	if !it.Scheduled {
		return 0
	}
	return DaysBetween(it.Start, it.End) + 1
}

// Project flattens a board snapshot into the deterministic item list the
// view renders. Per task:
//   - both dates present: the bar runs min..max of the two (swapped input
//     never yields an inverted bar)
//   - one date present: a single-day bar on that date
//   - no dates: the item is kept with Scheduled false
//
// Ordering is column position, then task position, then ticket, so equal
// snapshots always project to identical output.
func Project(snap Snapshot) []Item {
	cols := snap.Columns()
	items := make([]Item, 0, snap.TaskCount())
	for _, col := range cols {
		for _, task := range col.Tasks {
			item := Item{
				TaskID:         task.ID,
				Ticket:         task.Ticket,
				Title:          task.Title,
				Priority:       task.Priority,
				ColumnID:       col.ID,
				ColumnName:     col.Name,
				ColumnPosition: col.Position,
				TaskPosition:   task.Position,
			}
			switch {
			case task.Start != nil && task.Due != nil:
				item.Scheduled = true
				item.Start = MinDay(*task.Start, *task.Due)
				item.End = MaxDay(*task.Start, *task.Due)
			case task.Start != nil:
				item.Scheduled = true
				item.Start, item.End = *task.Start, *task.Start
			case task.Due != nil:
				item.Scheduled = true
				item.Start, item.End = *task.Due, *task.Due
			}
			items = append(items, item)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.ColumnPosition != b.ColumnPosition {
			return a.ColumnPosition < b.ColumnPosition
		}
		if a.TaskPosition != b.TaskPosition {
			return a.TaskPosition < b.TaskPosition
		}
		return a.Ticket < b.Ticket
	})
	return items
}
