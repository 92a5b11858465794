package task

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fastygo/tasktracker/domain"
	"github.com/fastygo/tasktracker/repository"
)

// Store owns the in-memory task list and mirrors it to the snapshot
// repository after every mutation. It is the single mutator in the
// process; callers drive it synchronously from the view loop, so no
// locking is involved.
type Store struct {
	snapshots repository.SnapshotRepository
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string

	tasks          []domain.Task
	pendingDeletes map[string]string // confirmation token -> task id
}

// New creates an empty task store backed by the given snapshot repository.
func New(snapshots repository.SnapshotRepository, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		snapshots:      snapshots,
		logger:         logger,
		now:            time.Now,
		newID:          uuid.NewString,
		pendingDeletes: make(map[string]string),
	}
}

// WithClock overrides the time source, for deterministic tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	if now != nil {
		s.now = now
	}
	return s
}

// WithIDGenerator overrides the id source, for deterministic tests.
func (s *Store) WithIDGenerator(newID func() string) *Store {
	if newID != nil {
		s.newID = newID
	}
	return s
}

// Restore loads the persisted task list, replacing the in-memory one.
// A missing record means an empty store, not an error.
func (s *Store) Restore(ctx context.Context) error {
	tasks, err := s.snapshots.LoadTasks(ctx)
	if err != nil {
		return err
	}
	s.tasks = tasks
	return nil
}

// Add validates the fields, constructs a new task and prepends it to the
// store. The freshly generated id is unique among current tasks.
func (s *Store) Add(ctx context.Context, title, description string) (*domain.Task, error) {
	trimmed, err := domain.ValidateTaskFields(title, description)
	if err != nil {
		return nil, err
	}

	id := s.newID()
	for s.index(id) >= 0 {
		id = s.newID()
	}

	created := domain.Task{
		ID:          id,
		Title:       trimmed,
		Description: description,
		CreatedAt:   s.now(),
		IsCompleted: false,
		CompletedAt: nil,
	}
	s.tasks = append([]domain.Task{created}, s.tasks...)
	s.sync(ctx, "add")
	return &created, nil
}

// Update replaces the task with the given id wholesale. The id and
// creation instant are preserved; title and description are validated the
// same way as on Add, and the completion invariant is re-established if
// the replacement violates it.
func (s *Store) Update(ctx context.Context, id string, updated domain.Task) (*domain.Task, error) {
	trimmed, err := domain.ValidateTaskFields(updated.Title, updated.Description)
	if err != nil {
		return nil, err
	}
	idx := s.index(id)
	if idx < 0 {
		return nil, domain.ErrTaskNotFound
	}

	updated.ID = id
	updated.Title = trimmed
	if updated.CreatedAt.IsZero() {
		updated.CreatedAt = s.tasks[idx].CreatedAt
	}
	if updated.IsCompleted && updated.CompletedAt == nil {
		now := s.now()
		updated.CompletedAt = &now
	}
	if !updated.IsCompleted {
		updated.CompletedAt = nil
	}

	s.tasks[idx] = updated
	s.sync(ctx, "update")
	return &updated, nil
}

// Toggle flips the completion status of the task with the given id,
// stamping or clearing CompletedAt accordingly.
func (s *Store) Toggle(ctx context.Context, id string) (*domain.Task, error) {
	idx := s.index(id)
	if idx < 0 {
		return nil, domain.ErrTaskNotFound
	}

	t := &s.tasks[idx]
	if t.IsCompleted {
		t.MarkPending()
	} else {
		t.MarkCompleted(s.now())
	}
	s.sync(ctx, "toggle")
	copied := *t
	return &copied, nil
}

// RequestDelete starts the two-step delete protocol. It returns a
// single-use confirmation token and the task title for the caller to show
// in its confirmation prompt. The store itself does not remove anything
// until ConfirmDelete is called with the token.
func (s *Store) RequestDelete(id string) (token string, title string, err error) {
	idx := s.index(id)
	if idx < 0 {
		return "", "", domain.ErrTaskNotFound
	}
	token = s.newID()
	s.pendingDeletes[token] = id
	return token, s.tasks[idx].Title, nil
}

// ConfirmDelete consumes the token and removes its task. The removed task
// is returned. Tokens referencing a task already deleted through another
// token fail with ErrTaskNotFound.
func (s *Store) ConfirmDelete(ctx context.Context, token string) (*domain.Task, error) {
	id, ok := s.pendingDeletes[token]
	if !ok {
		return nil, domain.ErrDeleteTokenUnknown
	}
	delete(s.pendingDeletes, token)

	idx := s.index(id)
	if idx < 0 {
		return nil, domain.ErrTaskNotFound
	}
	removed := s.tasks[idx]
	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	s.sync(ctx, "delete")
	return &removed, nil
}

// CancelDelete discards a pending confirmation token.
func (s *Store) CancelDelete(token string) {
	delete(s.pendingDeletes, token)
}

// Get returns a copy of the task with the given id.
func (s *Store) Get(id string) (*domain.Task, error) {
	idx := s.index(id)
	if idx < 0 {
		return nil, domain.ErrTaskNotFound
	}
	copied := s.tasks[idx]
	return &copied, nil
}

// Tasks returns a copy of the list in store order, newest insertion first.
func (s *Store) Tasks() []domain.Task {
	out := make([]domain.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len reports the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Sorted returns the display order: pending tasks before completed ones,
// newest first within each group. Recomputed on every call.
func (s *Store) Sorted() []domain.Task {
	out := s.Tasks()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsCompleted != out[j].IsCompleted {
			return !out[i].IsCompleted
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Filtered returns the tasks matching the filter, in store order.
func (s *Store) Filtered(filter domain.Filter) []domain.Task {
	out := make([]domain.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if filter.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// Display is the sort-then-filter pipeline the view renders: the filter
// applied to the Sorted sequence, preserving its order.
func (s *Store) Display(filter domain.Filter) []domain.Task {
	sorted := s.Sorted()
	out := make([]domain.Task, 0, len(sorted))
	for _, t := range sorted {
		if filter.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// Counts aggregates the store by completion status.
func (s *Store) Counts() domain.Counts {
	counts := domain.Counts{All: len(s.tasks)}
	for _, t := range s.tasks {
		if t.IsCompleted {
			counts.Completed++
		} else {
			counts.Pending++
		}
	}
	return counts
}

// CompletionRate returns the completed share as an integer percentage,
// 0.5 rounding up. An empty store rates 0.
func (s *Store) CompletionRate() int {
	counts := s.Counts()
	if counts.All == 0 {
		return 0
	}
	return int(math.Round(float64(counts.Completed) / float64(counts.All) * 100))
}

// Reset drops every task and pending confirmation and removes the durable
// task-list record. Used on logout.
func (s *Store) Reset(ctx context.Context) error {
	s.tasks = nil
	s.pendingDeletes = make(map[string]string)
	if err := s.snapshots.DeleteTasks(ctx); err != nil {
		s.logger.Warn("task snapshot delete failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *Store) index(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// sync writes the full task list to the snapshot repository. Failures are
// logged and swallowed: the in-memory list is the source of truth and the
// durable copy is best-effort.
func (s *Store) sync(ctx context.Context, operation string) {
	if err := s.snapshots.SaveTasks(ctx, s.tasks); err != nil {
		s.logger.Warn("task snapshot write failed",
			zap.String("operation", operation),
			zap.Int("tasks", len(s.tasks)),
			zap.Error(err))
	}
}
