package auth

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/tasktracker/domain"
	"github.com/fastygo/tasktracker/repository"
)

// TaskResetter clears the task store on logout. Satisfied by
// *task.Store.
type TaskResetter interface {
	Reset(ctx context.Context) error
}

// Manager holds the current session, if any, and keeps its durable mirror
// in sync.
type Manager struct {
	snapshots  repository.SnapshotRepository
	tasks      TaskResetter
	logger     *zap.Logger
	loginDelay time.Duration

	session *domain.Session
}

// New creates a session manager. loginDelay is an artificial pause before
// login completes; zero disables it.
func New(snapshots repository.SnapshotRepository, tasks TaskResetter, logger *zap.Logger, loginDelay time.Duration) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		snapshots:  snapshots,
		tasks:      tasks,
		logger:     logger,
		loginDelay: loginDelay,
	}
}

// Login validates the display name and establishes the session. The
// configured delay is waited out first; cancelling ctx aborts the wait and
// leaves the session untouched. Tasks already in the store are untouched
// either way.
func (m *Manager) Login(ctx context.Context, username string) (*domain.Session, error) {
	trimmed, err := domain.ValidateUsername(username)
	if err != nil {
		return nil, err
	}

	if m.loginDelay > 0 {
		timer := time.NewTimer(m.loginDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	session := &domain.Session{Username: trimmed}
	m.session = session
	if err := m.snapshots.SaveSession(ctx, session); err != nil {
		m.logger.Warn("session snapshot write failed", zap.Error(err))
	}

	m.logger.Info("logged in", zap.String("username", trimmed))
	return session, nil
}

// Logout clears the session and the task store and removes both durable
// records. Irreversible; any confirmation happens in the view.
func (m *Manager) Logout(ctx context.Context) error {
	username := ""
	if m.session != nil {
		username = m.session.Username
	}
	m.session = nil

	if m.tasks != nil {
		if err := m.tasks.Reset(ctx); err != nil {
			m.logger.Warn("task store reset failed", zap.Error(err))
		}
	}
	if err := m.snapshots.DeleteSession(ctx); err != nil {
		m.logger.Warn("session snapshot delete failed", zap.Error(err))
	}

	m.logger.Info("logged out", zap.String("username", username))
	return nil
}

// Current returns the active session, or nil when logged out.
func (m *Manager) Current() *domain.Session {
	if m.session == nil {
		return nil
	}
	copied := *m.session
	return &copied
}

// LoggedIn reports whether a session is active.
func (m *Manager) LoggedIn() bool {
	return m.session != nil
}

// Restore loads a persisted session at process start. A missing record
// means no prior session and is not an error.
func (m *Manager) Restore(ctx context.Context) error {
	session, err := m.snapshots.LoadSession(ctx)
	if err != nil {
		return err
	}
	m.session = session
	return nil
}
