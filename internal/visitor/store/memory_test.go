package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatepass/internal/visitor/models"
	id "gatepass/pkg/domain"
	"gatepass/pkg/platform/sentinel"
)

func newVisitor(t *testing.T, name string) *models.Visitor {
	t.Helper()
	v, err := models.NewVisitor(name, "Acme", "audit", time.Now().AddDate(0, 0, 1), "10:00", "H. Mansouri", time.Now())
	require.NoError(t, err)
	return v
}

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("create assigns sequential IDs", func(t *testing.T) {
		s := NewMemory()
		a := newVisitor(t, "Alice Koné")
		b := newVisitor(t, "Bob Smith")
		require.NoError(t, s.Create(ctx, a))
		require.NoError(t, s.Create(ctx, b))
		assert.Equal(t, id.VisitorID(1), a.ID)
		assert.Equal(t, id.VisitorID(2), b.ID)
	})

	t.Run("FindByID returns ErrNotFound for missing record", func(t *testing.T) {
		s := NewMemory()
		_, err := s.FindByID(ctx, 99)
		require.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("FindAll on empty store returns empty slice", func(t *testing.T) {
		s := NewMemory()
		all, err := s.FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("FindAll preserves insertion order by ID", func(t *testing.T) {
		s := NewMemory()
		for _, name := range []string{"First", "Second", "Third"} {
			require.NoError(t, s.Create(ctx, newVisitor(t, name)))
		}
		all, err := s.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "First", all[0].Name)
		assert.Equal(t, "Third", all[2].Name)
	})

	t.Run("stored records are isolated from caller mutation", func(t *testing.T) {
		s := NewMemory()
		v := newVisitor(t, "Mutable")
		require.NoError(t, s.Create(ctx, v))
		v.Name = "changed outside"

		got, err := s.FindByID(ctx, v.ID)
		require.NoError(t, err)
		assert.Equal(t, "Mutable", got.Name)
	})

	t.Run("update replaces record and delete removes it", func(t *testing.T) {
		s := NewMemory()
		v := newVisitor(t, "Temp")
		require.NoError(t, s.Create(ctx, v))

		v.ApplyBadgeToken("tok", time.Now())
		require.NoError(t, s.Update(ctx, v))

		got, err := s.FindByID(ctx, v.ID)
		require.NoError(t, err)
		assert.Equal(t, "tok", got.BadgeToken)

		require.NoError(t, s.Delete(ctx, v.ID))
		_, err = s.FindByID(ctx, v.ID)
		require.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("update of missing record returns ErrNotFound", func(t *testing.T) {
		s := NewMemory()
		v := newVisitor(t, "Ghost")
		v.ID = 42
		require.ErrorIs(t, s.Update(ctx, v), sentinel.ErrNotFound)
	})
}
