package session

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store for dev and tests.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]State
}

// NewMemoryStore constructs a MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]State)}
}

func (s *MemoryStore) Load(ctx context.Context, userID string) (State, error) {
	if err := ctx.Err(); err != nil {
		return State{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data[userID], nil
}

func (s *MemoryStore) Save(ctx context.Context, userID string, state State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[userID] = state
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context, userID string) (State, error) {
	if err := ctx.Err(); err != nil {
		return State{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := State{Generation: s.data[userID].Generation + 1}
	s.data[userID] = next
	return next, nil
}

var _ Store = (*MemoryStore)(nil)
