package store

import (
	"context"
	"sort"
	"sync"

	"gatepass/internal/visitor/models"
	id "gatepass/pkg/domain"
	"gatepass/pkg/platform/sentinel"
)

// InMemoryStore keeps visitor records in process memory. It backs development
// and unit tests; production wires the Postgres store.
type InMemoryStore struct {
	mu       sync.RWMutex
	visitors map[id.VisitorID]*models.Visitor
	nextID   id.VisitorID
}

func NewMemory() *InMemoryStore {
	return &InMemoryStore{
		visitors: make(map[id.VisitorID]*models.Visitor),
		nextID:   1,
	}
}

func (s *InMemoryStore) Create(_ context.Context, v *models.Visitor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v.ID = s.nextID
	s.nextID++
	s.visitors[v.ID] = v.Clone()
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, visitorID id.VisitorID) (*models.Visitor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.visitors[visitorID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return v.Clone(), nil
}

// FindAll returns every record in ascending ID order. An empty store yields an
// empty slice, never an error.
func (s *InMemoryStore) FindAll(_ context.Context) ([]*models.Visitor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Visitor, 0, len(s.visitors))
	for _, v := range s.visitors {
		out = append(out, v.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *InMemoryStore) Update(_ context.Context, v *models.Visitor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.visitors[v.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.visitors[v.ID] = v.Clone()
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, visitorID id.VisitorID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.visitors[visitorID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.visitors, visitorID)
	return nil
}
