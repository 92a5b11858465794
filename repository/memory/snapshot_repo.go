package memory

import (
	"context"

	"github.com/fastygo/tasktracker/domain"
)

// Store is an in-process snapshot repository. It backs tests and serves as
// the degraded fallback when the durable store cannot be opened: state
// survives for the process lifetime only.
type Store struct {
	session  *domain.Session
	tasks    []domain.Task
	hasTasks bool

	// FailWrites makes every write return this error, for exercising the
	// best-effort persistence path in tests.
	FailWrites error
}

// New returns an empty in-memory snapshot repository.
func New() *Store {
	return &Store{}
}

func (s *Store) LoadSession(ctx context.Context) (*domain.Session, error) {
	if s.session == nil {
		return nil, nil
	}
	copied := *s.session
	return &copied, nil
}

func (s *Store) SaveSession(ctx context.Context, session *domain.Session) error {
	if session == nil {
		return domain.ErrInvalidPayload
	}
	if s.FailWrites != nil {
		return s.FailWrites
	}
	copied := *session
	s.session = &copied
	return nil
}

func (s *Store) DeleteSession(ctx context.Context) error {
	if s.FailWrites != nil {
		return s.FailWrites
	}
	s.session = nil
	return nil
}

func (s *Store) LoadTasks(ctx context.Context) ([]domain.Task, error) {
	if !s.hasTasks {
		return nil, nil
	}
	out := make([]domain.Task, len(s.tasks))
	copy(out, s.tasks)
	return out, nil
}

func (s *Store) SaveTasks(ctx context.Context, tasks []domain.Task) error {
	if s.FailWrites != nil {
		return s.FailWrites
	}
	s.tasks = make([]domain.Task, len(tasks))
	copy(s.tasks, tasks)
	s.hasTasks = true
	return nil
}

func (s *Store) DeleteTasks(ctx context.Context) error {
	if s.FailWrites != nil {
		return s.FailWrites
	}
	s.tasks = nil
	s.hasTasks = false
	return nil
}

func (s *Store) Close() error { return nil }
