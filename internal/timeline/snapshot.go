package timeline

import (
	"strings"
	"time"
)

// TaskRecord is one task as ingested from the board layer. Optional dates
// stay pointer-typed; downstream code never probes magic zero values.
type TaskRecord struct {
	ID       string
	Ticket   string
	Title    string
	Priority string
	ColumnID string
	Position int
	Start    *time.Time
	Due      *time.Time
}

// ColumnRecord is one board column with its tasks in board order.
type ColumnRecord struct {
	ID       string
	Name     string
	Position int
	Tasks    []TaskRecord
}

// Snapshot is the validated board state the timeline projects from. It is
// built once at the ingestion boundary and treated as immutable afterwards.
type Snapshot struct {
	columns []ColumnRecord
}

// NewSnapshot validates and normalizes raw board data: IDs must be present
// and unique, titles are trimmed, and dates collapse to local calendar days.
func NewSnapshot(columns []ColumnRecord) (Snapshot, error) {
	seenColumns := map[string]struct{}{}
	seenTasks := map[string]struct{}{}
	out := make([]ColumnRecord, 0, len(columns))
	for _, col := range columns {
		col.ID = strings.TrimSpace(col.ID)
		col.Name = strings.TrimSpace(col.Name)
		if col.ID == "" {
			return Snapshot{}, ErrInvalidColumnID
		}
		if _, ok := seenColumns[col.ID]; ok {
			return Snapshot{}, ErrDuplicateColumnID
		}
		seenColumns[col.ID] = struct{}{}

		tasks := make([]TaskRecord, 0, len(col.Tasks))
		for _, task := range col.Tasks {
			task.ID = strings.TrimSpace(task.ID)
			task.Ticket = strings.TrimSpace(task.Ticket)
			task.Title = strings.TrimSpace(task.Title)
			task.Priority = strings.ToLower(strings.TrimSpace(task.Priority))
			task.ColumnID = col.ID
			task.Start = NormalizeDayPtr(task.Start)
			task.Due = NormalizeDayPtr(task.Due)
			if task.ID == "" {
				return Snapshot{}, ErrInvalidTaskID
			}
			if _, ok := seenTasks[task.ID]; ok {
				return Snapshot{}, ErrDuplicateTaskID
			}
			seenTasks[task.ID] = struct{}{}
			tasks = append(tasks, task)
		}
		col.Tasks = tasks
		out = append(out, col)
	}
	return Snapshot{columns: out}, nil
}

// Columns returns a copy of the validated columns.
func (s Snapshot) Columns() []ColumnRecord {
	out := make([]ColumnRecord, len(s.columns))
	copy(out, s.columns)
	for i := range out {
		tasks := make([]TaskRecord, len(out[i].Tasks))
		copy(tasks, out[i].Tasks)
		out[i].Tasks = tasks
	}
	return out
}

// LowestPositionColumn resolves the column new tasks land in.
func (s Snapshot) LowestPositionColumn() (ColumnRecord, bool) {
	var best ColumnRecord
	found := false
	for _, col := range s.columns {
		if !found || col.Position < best.Position {
			best = col
			found = true
		}
	}
	return best, found
}

// DateBounds returns the earliest and latest scheduled date across all
// tasks, used to pick the default range center.
func (s Snapshot) DateBounds() (earliest, latest time.Time, ok bool) {
	for _, col := range s.columns {
		for _, task := range col.Tasks {
			for _, d := range []*time.Time{task.Start, task.Due} {
				if d == nil {
					continue
				}
				if !ok {
					earliest, latest = *d, *d
					ok = true
					continue
				}
				earliest = MinDay(earliest, *d)
				latest = MaxDay(latest, *d)
			}
		}
	}
	return earliest, latest, ok
}

// TaskCount reports the total number of tasks across columns.
func (s Snapshot) TaskCount() int {
	n := 0
	for _, col := range s.columns {
		n += len(col.Tasks)
	}
	return n
}
