package repository

import (
	"context"

	"github.com/fastygo/tasktracker/domain"
)

// SnapshotRepository mirrors the in-memory state to a durable key-value
// store. Two records exist: the session and the full task list. A missing
// record reads back as (nil, nil) / (nil, nil), never as an error.
//
// Writes are best-effort: in-memory state is the source of truth for the
// running process and a failed write must not roll it back.
type SnapshotRepository interface {
	LoadSession(ctx context.Context) (*domain.Session, error)
	SaveSession(ctx context.Context, session *domain.Session) error
	DeleteSession(ctx context.Context) error

	LoadTasks(ctx context.Context) ([]domain.Task, error)
	SaveTasks(ctx context.Context, tasks []domain.Task) error
	DeleteTasks(ctx context.Context) error

	Close() error
}
