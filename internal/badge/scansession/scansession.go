// Package scansession stores short-lived, single-consumption sessions issued
// when a badge scan validates successfully. Consuming the session confirms
// check-in; a second consumption attempt fails, so a screenshot of a badge
// cannot be replayed after the visitor is through the gate.
//
// The store is injected as a dependency rather than held as process-global
// state so a multi-instance deployment can swap the in-memory implementation
// for the Redis one.
package scansession

import (
	"context"
	"time"

	id "gatepass/pkg/domain"
)

// Session pairs an opaque token with the visitor it admits.
type Session struct {
	Token     string
	VisitorID id.VisitorID
	ExpiresAt time.Time
}

// Store is an expiring key-value store with delete-on-consume semantics.
// Put inserts with a TTL; Consume returns the session exactly once and
// removes it. Missing or expired tokens surface sentinel.ErrNotFound or
// sentinel.ErrExpired.
type Store interface {
	Put(ctx context.Context, s Session) error
	Consume(ctx context.Context, token string) (Session, error)
}
