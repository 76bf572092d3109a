package scansession

import (
	"context"
	"sync"

	"gatepass/pkg/platform/sentinel"
	"gatepass/pkg/requestcontext"
)

// InMemoryStore holds scan sessions in process memory. Expiry is lazy: a
// session past its deadline is removed on the consume attempt that finds it.
type InMemoryStore struct {
	mu       sync.Mutex
	sessions map[string]Session
}

func NewMemory() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string]Session)}
}

func (s *InMemoryStore) Put(_ context.Context, sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.Token] = sess
	return nil
}

func (s *InMemoryStore) Consume(ctx context.Context, token string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return Session{}, sentinel.ErrNotFound
	}
	delete(s.sessions, token)

	if requestcontext.Now(ctx).After(sess.ExpiresAt) {
		return Session{}, sentinel.ErrExpired
	}
	return sess, nil
}
