package bolt

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/fastygo/tasktracker/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "data", "tasktracker.db"), "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSessionRecordLifecycle(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	// absent record is not an error
	session, err := store.LoadSession(ctx)
	if err != nil || session != nil {
		t.Fatalf("empty load = %v, %v", session, err)
	}

	if err := store.SaveSession(ctx, &domain.Session{Username: "Al"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	session, err = store.LoadSession(ctx)
	if err != nil || session == nil || session.Username != "Al" {
		t.Fatalf("load = %v, %v", session, err)
	}

	if err := store.DeleteSession(ctx); err != nil {
		t.Fatalf("delete: %v", err)
	}
	session, err = store.LoadSession(ctx)
	if err != nil || session != nil {
		t.Fatalf("load after delete = %v, %v", session, err)
	}
}

func TestTaskRecordLifecycle(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	tasks, err := store.LoadTasks(ctx)
	if err != nil || tasks != nil {
		t.Fatalf("empty load = %v, %v", tasks, err)
	}

	completedAt := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	saved := []domain.Task{
		{
			ID:          "t2",
			Title:       "newer",
			CreatedAt:   time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
			IsCompleted: false,
		},
		{
			ID:          "t1",
			Title:       "older",
			Description: "done already",
			CreatedAt:   time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
			CompletedAt: &completedAt,
			IsCompleted: true,
		},
	}
	if err := store.SaveTasks(ctx, saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	tasks, err = store.LoadTasks(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(tasks) != 2 || tasks[0].ID != "t2" || tasks[1].ID != "t1" {
		t.Fatalf("order not preserved: %v", tasks)
	}
	if tasks[1].CompletedAt == nil || !tasks[1].CompletedAt.Equal(completedAt) {
		t.Fatalf("completedAt lost: %+v", tasks[1])
	}
	if tasks[0].CompletedAt != nil {
		t.Fatalf("pending task grew a completedAt: %+v", tasks[0])
	}

	if err := store.DeleteTasks(ctx); err != nil {
		t.Fatalf("delete: %v", err)
	}
	tasks, err = store.LoadTasks(ctx)
	if err != nil || tasks != nil {
		t.Fatalf("load after delete = %v, %v", tasks, err)
	}
}

func TestRecordsSurviveReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasktracker.db")
	ctx := context.Background()

	store, err := Open(path, "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := store.SaveSession(ctx, &domain.Session{Username: "Al"}); err != nil {
		t.Fatalf("save session: %v", err)
	}
	if err := store.SaveTasks(ctx, []domain.Task{{ID: "t1", Title: "persists", CreatedAt: time.Now()}}); err != nil {
		t.Fatalf("save tasks: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := Open(path, "")
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	session, err := reopened.LoadSession(ctx)
	if err != nil || session == nil || session.Username != "Al" {
		t.Fatalf("session after reopen = %v, %v", session, err)
	}
	tasks, err := reopened.LoadTasks(ctx)
	if err != nil || len(tasks) != 1 || tasks[0].Title != "persists" {
		t.Fatalf("tasks after reopen = %v, %v", tasks, err)
	}
}

func TestCancelledContext(t *testing.T) {
	store := openTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := store.SaveSession(ctx, &domain.Session{Username: "Al"}); err == nil {
		t.Fatal("write with cancelled context should fail")
	}
	if _, err := store.LoadSession(ctx); err == nil {
		t.Fatal("read with cancelled context should fail")
	}
}
