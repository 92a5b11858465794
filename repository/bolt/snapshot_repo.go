package bolt

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/fastygo/tasktracker/domain"
)

const defaultBucket = "tasktracker"

var (
	keySession = []byte("session")
	keyTasks   = []byte("tasks")
)

// Store persists session and task-list snapshots in a local BoltDB file.
type Store struct {
	db     *bolt.DB
	bucket []byte
}

// Open initializes the BoltDB file and ensures the bucket exists.
func Open(path string, bucket string) (*Store, error) {
	if bucket == "" {
		bucket = defaultBucket
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		db:     db,
		bucket: []byte(bucket),
	}, nil
}

func (s *Store) LoadSession(ctx context.Context) (*domain.Session, error) {
	var session *domain.Session
	err := s.view(ctx, func(tx *bolt.Tx) error {
		raw := tx.Bucket(s.bucket).Get(keySession)
		if raw == nil {
			return nil
		}
		var decoded domain.Session
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return domain.WrapError(domain.ErrCodeInternal, "corrupt session record", err)
		}
		session = &decoded
		return nil
	})
	return session, err
}

func (s *Store) SaveSession(ctx context.Context, session *domain.Session) error {
	if session == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.update(ctx, func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put(keySession, payload)
	})
}

func (s *Store) DeleteSession(ctx context.Context) error {
	return s.update(ctx, func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Delete(keySession)
	})
}

func (s *Store) LoadTasks(ctx context.Context) ([]domain.Task, error) {
	var tasks []domain.Task
	err := s.view(ctx, func(tx *bolt.Tx) error {
		raw := tx.Bucket(s.bucket).Get(keyTasks)
		if raw == nil {
			return nil
		}
		if err := json.Unmarshal(raw, &tasks); err != nil {
			return domain.WrapError(domain.ErrCodeInternal, "corrupt task-list record", err)
		}
		return nil
	})
	return tasks, err
}

func (s *Store) SaveTasks(ctx context.Context, tasks []domain.Task) error {
	if tasks == nil {
		tasks = []domain.Task{}
	}
	payload, err := json.Marshal(tasks)
	if err != nil {
		return err
	}
	return s.update(ctx, func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put(keyTasks, payload)
	})
}

func (s *Store) DeleteTasks(ctx context.Context) error {
	return s.update(ctx, func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Delete(keyTasks)
	})
}

// Close closes the Bolt database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Stats exposes Bolt statistics for diagnostics.
func (s *Store) Stats() bolt.Stats {
	if s == nil || s.db == nil {
		return bolt.Stats{}
	}
	return s.db.Stats()
}

func (s *Store) view(ctx context.Context, fn func(tx *bolt.Tx) error) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.View(fn)
}

func (s *Store) update(ctx context.Context, fn func(tx *bolt.Tx) error) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(fn)
}
