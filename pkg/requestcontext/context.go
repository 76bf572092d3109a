// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values.
//
// Values are set by middleware and consumed by services. Keeping this package
// free of net/http lets services import only what they need.
//
// Usage in services (read values):
//
//	userID := requestcontext.UserID(ctx)
//	now := requestcontext.Now(ctx)
//
// Usage in tests (inject values):
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
package requestcontext

import (
	"context"
	"time"

	id "gatepass/pkg/domain"
)

type (
	userIDKey      struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
)

// UserID retrieves the authenticated user ID from the context.
// Returns the zero value (nil UUID) if not set.
func UserID(ctx context.Context) id.UserID {
	if userID, ok := ctx.Value(userIDKey{}).(id.UserID); ok {
		return userID
	}
	return id.UserID{}
}

// WithUserID injects a user ID into the context.
func WithUserID(ctx context.Context, userID id.UserID) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(requestIDKey{}).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// Now retrieves the request-scoped time from context.
// Falls back to time.Now() for non-HTTP contexts (workers, CLI, tests that
// don't care about the clock). Badge validity rules read the clock only
// through this accessor so tests can pin it.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}
