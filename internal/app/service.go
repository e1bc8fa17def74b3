package app

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tavla/spann/internal/domain"
)

// DeleteMode represents a selectable mode.
type DeleteMode string

// DeleteModeArchive and related constants define package defaults.
const (
	DeleteModeArchive DeleteMode = "archive"
	DeleteModeHard    DeleteMode = "hard"
)

// ParseDeleteMode validates a delete mode name.
func ParseDeleteMode(s string) (DeleteMode, error) {
	switch DeleteMode(strings.ToLower(strings.TrimSpace(s))) {
	case DeleteModeArchive, "":
		return DeleteModeArchive, nil
	case DeleteModeHard:
		return DeleteModeHard, nil
	default:
		return "", ErrInvalidDeleteMode
	}
}

// ColumnTemplate seeds one column of a fresh board.
type ColumnTemplate struct {
	Name     string
	Position int
}

// ServiceConfig holds configuration for service.
type ServiceConfig struct {
	DefaultDeleteMode DeleteMode
	SeedBoardName     string
	SeedTicketPrefix  string
	SeedColumns       []ColumnTemplate
}

// IDGenerator returns unique identifiers for new entities.
type IDGenerator func() string

// Clock returns the current time.
type Clock func() time.Time

// Service owns board use cases: seeding, task creation with ticket
// assignment, scheduling, moves, and delete semantics.
type Service struct {
	repo              Repository
	idGen             IDGenerator
	clock             Clock
	defaultDeleteMode DeleteMode
	seedBoardName     string
	seedTicketPrefix  string
	seedColumns       []ColumnTemplate
}

// NewService constructs a new value for this package.
func NewService(repo Repository, idGen IDGenerator, clock Clock, cfg ServiceConfig) *Service {
	if idGen == nil {
		idGen = func() string { return "" }
	}
	if clock == nil {
		clock = time.Now
	}
	if cfg.DefaultDeleteMode == "" {
		cfg.DefaultDeleteMode = DeleteModeArchive
	}
	if cfg.SeedBoardName == "" {
		cfg.SeedBoardName = "Board"
	}
	if len(cfg.SeedColumns) == 0 {
		cfg.SeedColumns = []ColumnTemplate{
			{Name: "Todo", Position: 0},
			{Name: "Doing", Position: 1},
			{Name: "Done", Position: 2},
		}
	}

	return &Service{
		repo:              repo,
		idGen:             idGen,
		clock:             clock,
		defaultDeleteMode: cfg.DefaultDeleteMode,
		seedBoardName:     cfg.SeedBoardName,
		seedTicketPrefix:  cfg.SeedTicketPrefix,
		seedColumns:       cfg.SeedColumns,
	}
}

// DefaultDeleteMode exposes the configured delete behavior.
func (s *Service) DefaultDeleteMode() DeleteMode {
	return s.defaultDeleteMode
}

// EnsureSeedBoard returns the first project by creation, seeding a default
// board with its columns on first run.
func (s *Service) EnsureSeedBoard(ctx context.Context) (domain.Project, error) {
	projects, err := s.repo.ListProjects(ctx, false)
	if err != nil {
		return domain.Project{}, err
	}
	if len(projects) > 0 {
		sort.Slice(projects, func(i, j int) bool {
			return projects[i].CreatedAt.Before(projects[j].CreatedAt)
		})
		return projects[0], nil
	}

	now := s.clock()
	project, err := domain.NewProject(s.idGen(), s.seedBoardName, "Default board", s.seedTicketPrefix, now)
	if err != nil {
		return domain.Project{}, err
	}
	if err := s.repo.CreateProject(ctx, project); err != nil {
		return domain.Project{}, err
	}
	for _, tpl := range s.seedColumns {
		column, err := domain.NewColumn(s.idGen(), project.ID, tpl.Name, tpl.Position, now)
		if err != nil {
			return domain.Project{}, err
		}
		if err := s.repo.CreateColumn(ctx, column); err != nil {
			return domain.Project{}, err
		}
	}
	return project, nil
}

// ColumnView pairs a column with its tasks in position order.
type ColumnView struct {
	Column domain.Column
	Tasks  []domain.Task
}

// BoardView is the fully ordered read model of one project.
type BoardView struct {
	Project domain.Project
	Columns []ColumnView
}

// Board loads a project with its active columns and tasks, ordered by
// position.
func (s *Service) Board(ctx context.Context, projectID string) (BoardView, error) {
	project, err := s.repo.GetProject(ctx, projectID)
	if err != nil {
		return BoardView{}, err
	}
	columns, err := s.repo.ListColumns(ctx, projectID, false)
	if err != nil {
		return BoardView{}, err
	}
	tasks, err := s.repo.ListTasks(ctx, projectID, false)
	if err != nil {
		return BoardView{}, err
	}
	sort.Slice(columns, func(i, j int) bool {
		if columns[i].Position != columns[j].Position {
			return columns[i].Position < columns[j].Position
		}
		return columns[i].ID < columns[j].ID
	})
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].Position != tasks[j].Position {
			return tasks[i].Position < tasks[j].Position
		}
		return tasks[i].Ticket < tasks[j].Ticket
	})

	view := BoardView{Project: project, Columns: make([]ColumnView, 0, len(columns))}
	byColumn := map[string][]domain.Task{}
	for _, task := range tasks {
		byColumn[task.ColumnID] = append(byColumn[task.ColumnID], task)
	}
	for _, column := range columns {
		view.Columns = append(view.Columns, ColumnView{Column: column, Tasks: byColumn[column.ID]})
	}
	return view, nil
}

// ListProjects lists active projects ordered by creation.
func (s *Service) ListProjects(ctx context.Context) ([]domain.Project, error) {
	projects, err := s.repo.ListProjects(ctx, false)
	if err != nil {
		return nil, err
	}
	sort.Slice(projects, func(i, j int) bool {
		return projects[i].CreatedAt.Before(projects[j].CreatedAt)
	})
	return projects, nil
}

// CreateTaskInput holds input values for create task operations. A blank
// ColumnID targets the lowest-position column of the project.
type CreateTaskInput struct {
	ProjectID   string
	ColumnID    string
	Title       string
	Description string
	Priority    domain.Priority
	StartAt     *time.Time
	DueAt       *time.Time
	Labels      []string
}

// CreateScheduledTask creates a task with the next free ticket for the
// project, placed after the column's existing tasks.
func (s *Service) CreateScheduledTask(ctx context.Context, in CreateTaskInput) (domain.Task, error) {
	project, err := s.repo.GetProject(ctx, in.ProjectID)
	if err != nil {
		return domain.Task{}, err
	}
	columns, err := s.repo.ListColumns(ctx, in.ProjectID, false)
	if err != nil {
		return domain.Task{}, err
	}
	if len(columns) == 0 {
		return domain.Task{}, ErrNoColumns
	}
	columnID := strings.TrimSpace(in.ColumnID)
	if columnID == "" {
		lowest := columns[0]
		for _, c := range columns[1:] {
			if c.Position < lowest.Position {
				lowest = c
			}
		}
		columnID = lowest.ID
	}
	tasks, err := s.repo.ListTasks(ctx, in.ProjectID, true)
	if err != nil {
		return domain.Task{}, err
	}
	position := 0
	for _, t := range tasks {
		if t.ColumnID == columnID && t.ArchivedAt == nil && t.Position >= position {
			position = t.Position + 1
		}
	}

	task, err := domain.NewTask(domain.TaskInput{
		ID:          s.idGen(),
		ProjectID:   in.ProjectID,
		ColumnID:    columnID,
		Position:    position,
		Ticket:      nextTicket(project.TicketPrefix, tasks),
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		StartAt:     in.StartAt,
		DueAt:       in.DueAt,
		Labels:      in.Labels,
	}, s.clock())
	if err != nil {
		return domain.Task{}, err
	}
	if err := s.repo.CreateTask(ctx, task); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

// UpdateTaskSchedule replaces both schedule dates of a task. Nil clears
// the corresponding date.
func (s *Service) UpdateTaskSchedule(ctx context.Context, taskID string, startAt, dueAt *time.Time) (domain.Task, error) {
	task, err := s.repo.GetTask(ctx, taskID)
	if err != nil {
		return domain.Task{}, err
	}
	task.Reschedule(startAt, dueAt, s.clock())
	if err := s.repo.UpdateTask(ctx, task); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

// UpdateTaskInput holds input values for update task operations.
type UpdateTaskInput struct {
	TaskID      string
	Title       string
	Description string
	Priority    domain.Priority
	Labels      []string
}

// UpdateTaskDetails updates state for the requested operation.
func (s *Service) UpdateTaskDetails(ctx context.Context, in UpdateTaskInput) (domain.Task, error) {
	task, err := s.repo.GetTask(ctx, in.TaskID)
	if err != nil {
		return domain.Task{}, err
	}
	if err := task.UpdateDetails(in.Title, in.Description, in.Priority, in.Labels, s.clock()); err != nil {
		return domain.Task{}, err
	}
	if err := s.repo.UpdateTask(ctx, task); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

// MoveTask moves task.
func (s *Service) MoveTask(ctx context.Context, taskID, toColumnID string, position int) (domain.Task, error) {
	task, err := s.repo.GetTask(ctx, taskID)
	if err != nil {
		return domain.Task{}, err
	}
	if err := task.Move(toColumnID, position, s.clock()); err != nil {
		return domain.Task{}, err
	}
	if err := s.repo.UpdateTask(ctx, task); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

// GetTask loads one task.
func (s *Service) GetTask(ctx context.Context, taskID string) (domain.Task, error) {
	return s.repo.GetTask(ctx, taskID)
}

// DeleteTask deletes task. Blank mode uses the configured default.
func (s *Service) DeleteTask(ctx context.Context, taskID string, mode DeleteMode) error {
	if mode == "" {
		mode = s.defaultDeleteMode
	}
	switch mode {
	case DeleteModeArchive:
		task, err := s.repo.GetTask(ctx, taskID)
		if err != nil {
			return err
		}
		task.Archive(s.clock())
		return s.repo.UpdateTask(ctx, task)
	case DeleteModeHard:
		return s.repo.DeleteTask(ctx, taskID)
	default:
		return fmt.Errorf("%w: %q", ErrInvalidDeleteMode, mode)
	}
}

// RestoreTask restores an archived task.
func (s *Service) RestoreTask(ctx context.Context, taskID string) (domain.Task, error) {
	task, err := s.repo.GetTask(ctx, taskID)
	if err != nil {
		return domain.Task{}, err
	}
	task.Restore(s.clock())
	if err := s.repo.UpdateTask(ctx, task); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

// nextTicket assigns prefix-(max+1) over every ticket the project has ever
// issued, archived tasks included, so numbers are never reused.
func nextTicket(prefix string, tasks []domain.Task) string {
	highest := 0
	for _, t := range tasks {
		rest, ok := strings.CutPrefix(t.Ticket, prefix+"-")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(rest)
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("%s-%d", prefix, highest+1)
}
