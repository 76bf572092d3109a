package scansession

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatepass/pkg/platform/sentinel"
	"gatepass/pkg/requestcontext"
)

func TestInMemoryStore(t *testing.T) {
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)

	t.Run("consume returns the session exactly once", func(t *testing.T) {
		s := NewMemory()
		require.NoError(t, s.Put(ctx, Session{Token: "tok", VisitorID: 7, ExpiresAt: now.Add(time.Minute)}))

		sess, err := s.Consume(ctx, "tok")
		require.NoError(t, err)
		assert.EqualValues(t, 7, sess.VisitorID)

		_, err = s.Consume(ctx, "tok")
		require.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("unknown token returns ErrNotFound", func(t *testing.T) {
		s := NewMemory()
		_, err := s.Consume(ctx, "never-issued")
		require.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("expired session returns ErrExpired and is removed", func(t *testing.T) {
		s := NewMemory()
		require.NoError(t, s.Put(ctx, Session{Token: "old", VisitorID: 7, ExpiresAt: now.Add(time.Minute)}))

		later := requestcontext.WithTime(context.Background(), now.Add(2*time.Minute))
		_, err := s.Consume(later, "old")
		require.ErrorIs(t, err, sentinel.ErrExpired)

		_, err = s.Consume(later, "old")
		require.ErrorIs(t, err, sentinel.ErrNotFound)
	})
}
