package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/tavla/spann/internal/app"
	"github.com/tavla/spann/internal/domain"
	_ "modernc.org/sqlite"
)

func openTestRepo(t *testing.T) *Repository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "spann.db")
	repo, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() {
		_ = repo.Close()
	})
	return repo
}

func localDate(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
	return &d
}

func TestRepository_ProjectColumnTaskLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	now := time.Date(2026, 2, 21, 12, 0, 0, 0, time.UTC)
	project, err := domain.NewProject("p1", "Example", "desc", "SPN", now)
	if err != nil {
		t.Fatalf("NewProject() error = %v", err)
	}
	if err := repo.CreateProject(ctx, project); err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}

	loadedProject, err := repo.GetProject(ctx, project.ID)
	if err != nil {
		t.Fatalf("GetProject() error = %v", err)
	}
	if loadedProject.Name != "Example" || loadedProject.TicketPrefix != "SPN" {
		t.Fatalf("unexpected project %+v", loadedProject)
	}

	column, err := domain.NewColumn("c1", project.ID, "Todo", 0, now)
	if err != nil {
		t.Fatalf("NewColumn() error = %v", err)
	}
	if err := repo.CreateColumn(ctx, column); err != nil {
		t.Fatalf("CreateColumn() error = %v", err)
	}

	task, err := domain.NewTask(domain.TaskInput{
		ID:          "t1",
		ProjectID:   project.ID,
		ColumnID:    column.ID,
		Position:    0,
		Ticket:      "SPN-1",
		Title:       "Task title",
		Description: "Task details",
		Priority:    domain.PriorityHigh,
		StartAt:     localDate(2024, time.January, 1),
		DueAt:       localDate(2024, time.January, 3),
		Labels:      []string{"a", "b"},
	}, now)
	if err != nil {
		t.Fatalf("NewTask() error = %v", err)
	}
	if err := repo.CreateTask(ctx, task); err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}

	tasks, err := repo.ListTasks(ctx, project.ID, false)
	if err != nil {
		t.Fatalf("ListTasks() error = %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	loaded := tasks[0]
	if loaded.Ticket != "SPN-1" || loaded.Priority != domain.PriorityHigh {
		t.Fatalf("unexpected task %+v", loaded)
	}
	if len(loaded.Labels) != 2 {
		t.Fatalf("unexpected labels %#v", loaded.Labels)
	}
	if loaded.StartAt == nil || loaded.StartAt.Year() != 2024 || loaded.StartAt.Day() != 1 {
		t.Fatalf("start date lost: %v", loaded.StartAt)
	}
	if loaded.DueAt == nil || loaded.DueAt.Day() != 3 {
		t.Fatalf("due date lost: %v", loaded.DueAt)
	}

	task.Reschedule(localDate(2024, time.January, 1), localDate(2024, time.January, 10), now.Add(time.Minute))
	if err := repo.UpdateTask(ctx, task); err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}
	reloaded, err := repo.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetTask() error = %v", err)
	}
	if reloaded.DueAt == nil || reloaded.DueAt.Day() != 10 {
		t.Fatalf("reschedule lost: %v", reloaded.DueAt)
	}

	task.ClearSchedule(now.Add(2 * time.Minute))
	if err := repo.UpdateTask(ctx, task); err != nil {
		t.Fatalf("UpdateTask() error = %v", err)
	}
	cleared, err := repo.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetTask() error = %v", err)
	}
	if cleared.Scheduled() {
		t.Fatal("cleared schedule should round-trip as nil dates")
	}

	if err := repo.DeleteTask(ctx, task.ID); err != nil {
		t.Fatalf("DeleteTask() error = %v", err)
	}
	if _, err := repo.GetTask(ctx, task.ID); err != app.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := repo.DeleteTask(ctx, task.ID); err != app.ErrNotFound {
		t.Fatalf("expected ErrNotFound on double delete, got %v", err)
	}
}

func TestRepository_ArchivedFiltering(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)
	now := time.Now()

	project, _ := domain.NewProject("p1", "Example", "", "", now)
	if err := repo.CreateProject(ctx, project); err != nil {
		t.Fatalf("CreateProject() error = %v", err)
	}
	column, _ := domain.NewColumn("c1", project.ID, "Todo", 0, now)
	if err := repo.CreateColumn(ctx, column); err != nil {
		t.Fatalf("CreateColumn() error = %v", err)
	}
	task, _ := domain.NewTask(domain.TaskInput{
		ID: "t1", ProjectID: project.ID, ColumnID: column.ID, Ticket: "T-1", Title: "hidden",
	}, now)
	task.Archive(now)
	if err := repo.CreateTask(ctx, task); err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}

	active, err := repo.ListTasks(ctx, project.ID, false)
	if err != nil {
		t.Fatalf("ListTasks() error = %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("archived task leaked into active list: %d", len(active))
	}
	all, err := repo.ListTasks(ctx, project.ID, true)
	if err != nil {
		t.Fatalf("ListTasks(all) error = %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 archived task, got %d", len(all))
	}
}

func TestRepository_CorruptDateReadsAsUnset(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)
	now := time.Now()

	project, _ := domain.NewProject("p1", "Example", "", "", now)
	_ = repo.CreateProject(ctx, project)
	column, _ := domain.NewColumn("c1", project.ID, "Todo", 0, now)
	_ = repo.CreateColumn(ctx, column)
	task, _ := domain.NewTask(domain.TaskInput{
		ID: "t1", ProjectID: project.ID, ColumnID: column.ID, Ticket: "T-1", Title: "bad date",
	}, now)
	if err := repo.CreateTask(ctx, task); err != nil {
		t.Fatalf("CreateTask() error = %v", err)
	}
	if _, err := repo.db.ExecContext(ctx, `UPDATE tasks SET start_on = 'not-a-date' WHERE id = 't1'`); err != nil {
		t.Fatalf("corrupt row setup error = %v", err)
	}

	loaded, err := repo.GetTask(ctx, "t1")
	if err != nil {
		t.Fatalf("GetTask() error = %v", err)
	}
	if loaded.StartAt != nil {
		t.Fatalf("corrupt date should read as unset, got %v", loaded.StartAt)
	}
}

func TestRepository_MigrateIsIdempotent(t *testing.T) {
	repo := openTestRepo(t)
	if err := repo.migrate(context.Background()); err != nil {
		t.Fatalf("second migrate error = %v", err)
	}
}

func TestParseNullDate(t *testing.T) {
	if got := parseNullDate(sql.NullString{}); got != nil {
		t.Fatalf("null should decode as nil, got %v", got)
	}
	got := parseNullDate(sql.NullString{String: "2024-01-02", Valid: true})
	if got == nil || got.Year() != 2024 || got.Month() != time.January || got.Day() != 2 {
		t.Fatalf("unexpected date %v", got)
	}
	if got.Hour() != 0 {
		t.Fatalf("date should sit at local midnight, got %v", got)
	}
}
