package audit

import (
	"context"
	"sync"
)

// InMemoryStore keeps the audit trail in process memory.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []Event
}

func NewMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, e Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return nil
}

func (s *InMemoryStore) List(_ context.Context) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out, nil
}
