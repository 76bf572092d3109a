//go:build integration

package scansession

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatepass/pkg/platform/sentinel"
	"gatepass/pkg/testutil/containers"
)

func TestRedisStore_Integration(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	ctx := context.Background()
	store := NewRedis(rc.Client)

	t.Run("session round trips and consumes once", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))
		sess := Session{Token: "tok-1", VisitorID: 7, ExpiresAt: time.Now().Add(time.Minute)}
		require.NoError(t, store.Put(ctx, sess))

		got, err := store.Consume(ctx, "tok-1")
		require.NoError(t, err)
		assert.EqualValues(t, 7, got.VisitorID)

		_, err = store.Consume(ctx, "tok-1")
		require.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("redis TTL expires the session", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))
		sess := Session{Token: "tok-2", VisitorID: 8, ExpiresAt: time.Now().Add(150 * time.Millisecond)}
		require.NoError(t, store.Put(ctx, sess))

		time.Sleep(400 * time.Millisecond)

		_, err := store.Consume(ctx, "tok-2")
		require.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("putting an already expired session is rejected", func(t *testing.T) {
		err := store.Put(ctx, Session{Token: "tok-3", VisitorID: 9, ExpiresAt: time.Now().Add(-time.Second)})
		require.Error(t, err)
	})
}
