package board

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"pharus/internal/bus"
	"pharus/internal/model"
)

// Loader fetches the three lists the board is derived from.
type Loader interface {
	LoadBoard(ctx context.Context) ([]model.Column, []model.Task, []model.User, error)
}

// Store holds the in-memory replica behind both views. Reload is the only
// mutation entry point; everything else reads a copy of the snapshot.
// The poller and the change-signal listener both funnel through TryReload,
// so overlapping triggers collapse into one fetch.
type Store struct {
	loader  Loader
	mu      sync.RWMutex
	snap    Snapshot
	lastErr error
	loading atomic.Bool
}

func NewStore(loader Loader) *Store {
	return &Store{loader: loader}
}

// Reload refetches and replaces the snapshot. On failure the replica
// degrades to the empty three lists and the error is recorded; it is never
// propagated past the render boundary.
func (s *Store) Reload(ctx context.Context) error {
	columns, tasks, users, err := s.loader.LoadBoard(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.snap = Snapshot{}
		s.lastErr = err
		return err
	}
	s.snap = Snapshot{Columns: columns, Tasks: tasks, Users: users}
	s.lastErr = nil
	return nil
}

// TryReload runs Reload unless one is already in flight, in which case it
// reports false and does nothing.
func (s *Store) TryReload(ctx context.Context) (bool, error) {
	if !s.loading.CompareAndSwap(false, true) {
		return false, nil
	}
	defer s.loading.Store(false)
	return true, s.Reload(ctx)
}

// Snapshot returns a copy of the current replica.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Columns: append([]model.Column(nil), s.snap.Columns...),
		Tasks:   append([]model.Task(nil), s.snap.Tasks...),
		Users:   append([]model.User(nil), s.snap.Users...),
	}
}

// LastErr reports the error of the most recent reload, if it failed.
func (s *Store) LastErr() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// RunPoller refetches unconditionally at the given interval until the
// context ends.
func (s *Store) RunPoller(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.TryReload(ctx); err != nil {
				log.Printf("⚠️  Board poll failed: %v", err)
			}
		}
	}
}

// RunBusListener reloads on every task-change event until the context ends.
func (s *Store) RunBusListener(ctx context.Context, events <-chan bus.TaskChanged) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-events:
			if !ok {
				return
			}
			if _, err := s.TryReload(ctx); err != nil {
				log.Printf("⚠️  Board reload failed: %v", err)
			}
		}
	}
}
