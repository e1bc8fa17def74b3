package domain

import (
	"slices"
	"strings"
	"time"
)

type Priority string

const (
	PriorityNone   Priority = "none"
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

var validPriorities = []Priority{PriorityNone, PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// ParsePriority normalizes a priority name, defaulting blank to none.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return PriorityNone, nil
	}
	if !slices.Contains(validPriorities, p) {
		return "", ErrInvalidPriority
	}
	return p, nil
}

// Task is one schedulable board entry. StartAt and DueAt are calendar
// dates at local midnight; either or both may be absent.
type Task struct {
	ID          string
	ProjectID   string
	ColumnID    string
	Position    int
	Ticket      string
	Title       string
	Description string
	Priority    Priority
	StartAt     *time.Time
	DueAt       *time.Time
	Labels      []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ArchivedAt  *time.Time
}

type TaskInput struct {
	ID          string
	ProjectID   string
	ColumnID    string
	Position    int
	Ticket      string
	Title       string
	Description string
	Priority    Priority
	StartAt     *time.Time
	DueAt       *time.Time
	Labels      []string
}

func NewTask(in TaskInput, now time.Time) (Task, error) {
	in.ID = strings.TrimSpace(in.ID)
	in.ProjectID = strings.TrimSpace(in.ProjectID)
	in.ColumnID = strings.TrimSpace(in.ColumnID)
	in.Ticket = strings.ToUpper(strings.TrimSpace(in.Ticket))
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)

	if in.ID == "" {
		return Task{}, ErrInvalidID
	}
	if in.ProjectID == "" {
		return Task{}, ErrInvalidID
	}
	if in.ColumnID == "" {
		return Task{}, ErrInvalidColumnID
	}
	if in.Ticket == "" {
		return Task{}, ErrInvalidTicket
	}
	if in.Title == "" {
		return Task{}, ErrInvalidTitle
	}
	if in.Position < 0 {
		return Task{}, ErrInvalidPosition
	}

	if in.Priority == "" {
		in.Priority = PriorityNone
	}
	if !slices.Contains(validPriorities, in.Priority) {
		return Task{}, ErrInvalidPriority
	}

	return Task{
		ID:          in.ID,
		ProjectID:   in.ProjectID,
		ColumnID:    in.ColumnID,
		Position:    in.Position,
		Ticket:      in.Ticket,
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		StartAt:     normalizeDate(in.StartAt),
		DueAt:       normalizeDate(in.DueAt),
		Labels:      normalizeLabels(in.Labels),
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}, nil
}

func (t *Task) Move(columnID string, position int, now time.Time) error {
	columnID = strings.TrimSpace(columnID)
	if columnID == "" {
		return ErrInvalidColumnID
	}
	if position < 0 {
		return ErrInvalidPosition
	}
	t.ColumnID = columnID
	t.Position = position
	t.UpdatedAt = now.UTC()
	return nil
}

func (t *Task) UpdateDetails(title, description string, priority Priority, labels []string, now time.Time) error {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" {
		return ErrInvalidTitle
	}
	if !slices.Contains(validPriorities, priority) {
		return ErrInvalidPriority
	}
	t.Title = title
	t.Description = description
	t.Priority = priority
	t.Labels = normalizeLabels(labels)
	t.UpdatedAt = now.UTC()
	return nil
}

// Reschedule replaces both schedule dates at once. Passing nil clears the
// corresponding date.
func (t *Task) Reschedule(startAt, dueAt *time.Time, now time.Time) {
	t.StartAt = normalizeDate(startAt)
	t.DueAt = normalizeDate(dueAt)
	t.UpdatedAt = now.UTC()
}

// ClearSchedule removes both schedule dates.
func (t *Task) ClearSchedule(now time.Time) {
	t.StartAt = nil
	t.DueAt = nil
	t.UpdatedAt = now.UTC()
}

// Scheduled reports whether the task carries at least one date.
func (t *Task) Scheduled() bool {
	return t.StartAt != nil || t.DueAt != nil
}

func (t *Task) Archive(now time.Time) {
	ts := now.UTC()
	t.ArchivedAt = &ts
	t.UpdatedAt = ts
}

func (t *Task) Restore(now time.Time) {
	t.ArchivedAt = nil
	t.UpdatedAt = now.UTC()
}

// normalizeDate collapses a timestamp to its local calendar date. The
// truncation is by calendar components, not the UTC instant, so the day
// never shifts across a zone boundary.
func normalizeDate(d *time.Time) *time.Time {
	if d == nil {
		return nil
	}
	local := d.Local()
	ts := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)
	return &ts
}

func normalizeLabels(labels []string) []string {
	out := make([]string, 0, len(labels))
	seen := map[string]struct{}{}
	for _, raw := range labels {
		label := strings.ToLower(strings.TrimSpace(raw))
		if label == "" {
			continue
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}
	slices.Sort(out)
	return out
}
