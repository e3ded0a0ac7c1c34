// Package snapshot keeps the per-task undo history: a stack of captured
// status values, one popped per rollback.
package snapshot

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/viant/taskflow/internal/clock"
	"github.com/viant/taskflow/model"
)

// ErrEmptyHistory is returned by Restore when nothing has been saved.
var ErrEmptyHistory = errors.New("no snapshots to restore")

// Snapshot is an immutable capture of a task status.
type Snapshot struct {
	Status  string    `json:"status"`
	TakenAt time.Time `json:"takenAt"`
}

// Store is a LIFO of snapshots for a single task.
type Store struct {
	mu        sync.Mutex
	snapshots []Snapshot
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// Save pushes status onto the stack.
func (s *Store) Save(status string) error {
	if strings.TrimSpace(status) == "" {
		return fmt.Errorf("%w: status cannot be empty", model.ErrValidation)
	}
	s.mu.Lock()
	s.snapshots = append(s.snapshots, Snapshot{Status: status, TakenAt: clock.Now()})
	s.mu.Unlock()
	return nil
}

// Restore pops the most recently saved snapshot.
func (s *Store) Restore() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.snapshots)
	if n == 0 {
		return Snapshot{}, ErrEmptyHistory
	}
	last := s.snapshots[n-1]
	s.snapshots = s.snapshots[:n-1]
	return last, nil
}

// Len returns the number of saved snapshots.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.snapshots)
}
