package progress

import (
	"sync"
	"time"
)

// Store is the single owner of the current GameState.
// Dispatch serializes transitions so each one is applied atomically.
type Store struct {
	mu    sync.RWMutex
	state GameState
	now   func() time.Time
}

// NewStore creates a store at the initial snapshot for stageCount stages.
// A nil clock defaults to time.Now.
func NewStore(stageCount int, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		state: Initial(stageCount),
		now:   now,
	}
}

// Dispatch applies a and returns the resulting snapshot.
// On rejection the stored state is left untouched and the error is returned
// alongside the unchanged snapshot.
func (s *Store) Dispatch(a Action) (GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := Reduce(s.state, a, s.now())
	if err != nil {
		return s.state.Clone(), err
	}
	s.state = next
	return next.Clone(), nil
}

// State returns a copy of the current snapshot.
func (s *Store) State() GameState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.Clone()
}
