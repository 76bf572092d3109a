// Package store provides user account persistence.
package store

import (
	"context"
	"strings"
	"sync"

	"gatepass/internal/auth/models"
	id "gatepass/pkg/domain"
	"gatepass/pkg/platform/sentinel"
)

// InMemoryStore keeps user accounts in process memory, indexed by email.
type InMemoryStore struct {
	mu      sync.RWMutex
	byID    map[id.UserID]*models.User
	byEmail map[string]*models.User
}

func NewMemory() *InMemoryStore {
	return &InMemoryStore{
		byID:    make(map[id.UserID]*models.User),
		byEmail: make(map[string]*models.User),
	}
}

func (s *InMemoryStore) Create(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(u.Email)
	if _, exists := s.byEmail[key]; exists {
		return sentinel.ErrConflict
	}
	c := *u
	s.byID[u.ID] = &c
	s.byEmail[key] = &c
	return nil
}

func (s *InMemoryStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (s *InMemoryStore) FindByID(_ context.Context, userID id.UserID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	c := *u
	return &c, nil
}
