package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tavla/spann/internal/domain"
)

// SnapshotVersion defines a package constant value.
const SnapshotVersion = "spann.snapshot.v1"

const snapshotDateLayout = "2006-01-02"

// Snapshot is the portable JSON form of one board. Schedule dates are
// encoded as calendar dates, not instants.
type Snapshot struct {
	Version    string           `json:"version"`
	ExportedAt time.Time        `json:"exported_at"`
	Project    SnapshotProject  `json:"project"`
	Columns    []SnapshotColumn `json:"columns"`
	Tasks      []SnapshotTask   `json:"tasks"`
}

// SnapshotProject represents snapshot project data used by this package.
type SnapshotProject struct {
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	TicketPrefix string `json:"ticket_prefix"`
}

// SnapshotColumn represents snapshot column data used by this package.
type SnapshotColumn struct {
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// SnapshotTask represents snapshot task data used by this package.
type SnapshotTask struct {
	Ticket      string   `json:"ticket"`
	Column      string   `json:"column"`
	Position    int      `json:"position"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Priority    string   `json:"priority"`
	StartOn     string   `json:"start_on,omitempty"`
	DueOn       string   `json:"due_on,omitempty"`
	Labels      []string `json:"labels,omitempty"`
}

// ExportSnapshot serializes one project's active board.
func (s *Service) ExportSnapshot(ctx context.Context, projectID string) ([]byte, error) {
	view, err := s.Board(ctx, projectID)
	if err != nil {
		return nil, err
	}
	snap := Snapshot{
		Version:    SnapshotVersion,
		ExportedAt: s.clock().UTC(),
		Project: SnapshotProject{
			Slug:         view.Project.Slug,
			Name:         view.Project.Name,
			Description:  view.Project.Description,
			TicketPrefix: view.Project.TicketPrefix,
		},
	}
	for _, cv := range view.Columns {
		snap.Columns = append(snap.Columns, SnapshotColumn{
			Name:     cv.Column.Name,
			Position: cv.Column.Position,
		})
		for _, task := range cv.Tasks {
			snap.Tasks = append(snap.Tasks, SnapshotTask{
				Ticket:      task.Ticket,
				Column:      cv.Column.Name,
				Position:    task.Position,
				Title:       task.Title,
				Description: task.Description,
				Priority:    string(task.Priority),
				StartOn:     encodeDate(task.StartAt),
				DueOn:       encodeDate(task.DueAt),
				Labels:      task.Labels,
			})
		}
	}
	return json.MarshalIndent(snap, "", "  ")
}

// ImportSnapshot recreates a board from exported JSON under fresh IDs.
// Tickets and schedule dates are preserved verbatim.
func (s *Service) ImportSnapshot(ctx context.Context, data []byte) (domain.Project, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return domain.Project{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if snap.Version != SnapshotVersion {
		return domain.Project{}, fmt.Errorf("%w: unsupported version %q", ErrInvalidSnapshot, snap.Version)
	}
	if len(snap.Columns) == 0 {
		return domain.Project{}, fmt.Errorf("%w: no columns", ErrInvalidSnapshot)
	}

	now := s.clock()
	project, err := domain.NewProject(s.idGen(), snap.Project.Name, snap.Project.Description, snap.Project.TicketPrefix, now)
	if err != nil {
		return domain.Project{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if err := s.repo.CreateProject(ctx, project); err != nil {
		return domain.Project{}, err
	}

	columnIDs := map[string]string{}
	for _, sc := range snap.Columns {
		column, err := domain.NewColumn(s.idGen(), project.ID, sc.Name, sc.Position, now)
		if err != nil {
			return domain.Project{}, fmt.Errorf("%w: column %q: %v", ErrInvalidSnapshot, sc.Name, err)
		}
		if err := s.repo.CreateColumn(ctx, column); err != nil {
			return domain.Project{}, err
		}
		columnIDs[sc.Name] = column.ID
	}

	for _, st := range snap.Tasks {
		columnID, ok := columnIDs[st.Column]
		if !ok {
			return domain.Project{}, fmt.Errorf("%w: task %q references unknown column %q", ErrInvalidSnapshot, st.Ticket, st.Column)
		}
		startAt, err := decodeDate(st.StartOn)
		if err != nil {
			return domain.Project{}, fmt.Errorf("%w: task %q start: %v", ErrInvalidSnapshot, st.Ticket, err)
		}
		dueAt, err := decodeDate(st.DueOn)
		if err != nil {
			return domain.Project{}, fmt.Errorf("%w: task %q due: %v", ErrInvalidSnapshot, st.Ticket, err)
		}
		task, err := domain.NewTask(domain.TaskInput{
			ID:          s.idGen(),
			ProjectID:   project.ID,
			ColumnID:    columnID,
			Position:    st.Position,
			Ticket:      st.Ticket,
			Title:       st.Title,
			Description: st.Description,
			Priority:    domain.Priority(st.Priority),
			StartAt:     startAt,
			DueAt:       dueAt,
			Labels:      st.Labels,
		}, now)
		if err != nil {
			return domain.Project{}, fmt.Errorf("%w: task %q: %v", ErrInvalidSnapshot, st.Ticket, err)
		}
		if err := s.repo.CreateTask(ctx, task); err != nil {
			return domain.Project{}, err
		}
	}
	return project, nil
}

func encodeDate(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format(snapshotDateLayout)
}

func decodeDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	parsed, err := time.Parse(snapshotDateLayout, s)
	if err != nil {
		return nil, err
	}
	d := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.Local)
	return &d, nil
}
