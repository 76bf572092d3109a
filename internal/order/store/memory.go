// Package store provides order persistence implementations.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"gatepass/internal/order/models"
	id "gatepass/pkg/domain"
	"gatepass/pkg/platform/sentinel"
)

// InMemoryStore keeps orders in process memory. Suitable for development and
// tests; production wires the PostgreSQL store.
type InMemoryStore struct {
	mu     sync.RWMutex
	orders map[id.OrderID]*models.Order
	seqs   map[string]int
}

func NewMemory() *InMemoryStore {
	return &InMemoryStore{
		orders: make(map[id.OrderID]*models.Order),
		seqs:   make(map[string]int),
	}
}

func (s *InMemoryStore) Create(_ context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.orders[o.ID]; exists {
		return sentinel.ErrConflict
	}
	s.orders[o.ID] = o.Clone()
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, orderID id.OrderID) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[orderID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return o.Clone(), nil
}

// FindAll returns every order, newest first.
func (s *InMemoryStore) FindAll(_ context.Context) ([]*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].Reference > out[j].Reference
	})
	return out, nil
}

func (s *InMemoryStore) Update(_ context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[o.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.orders[o.ID] = o.Clone()
	return nil
}

// NextSequence returns the next per-day reference sequence, starting at 1.
func (s *InMemoryStore) NextSequence(_ context.Context, day time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := day.UTC().Format("2006-01-02")
	s.seqs[key]++
	return s.seqs[key], nil
}
