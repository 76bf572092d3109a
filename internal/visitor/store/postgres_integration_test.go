//go:build integration

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatepass/internal/visitor/models"
	"gatepass/pkg/platform/sentinel"
	"gatepass/pkg/testutil/containers"
)

const visitorsSchema = `
CREATE TABLE IF NOT EXISTS visitors (
    id             BIGSERIAL PRIMARY KEY,
    name           TEXT NOT NULL,
    company        TEXT NOT NULL DEFAULT '',
    purpose        TEXT NOT NULL DEFAULT '',
    visit_date     DATE NOT NULL,
    visit_time     TEXT NOT NULL DEFAULT '',
    contact_person TEXT NOT NULL,
    badge_token    TEXT NOT NULL DEFAULT '',
    notified       BOOLEAN NOT NULL DEFAULT FALSE,
    created_at     TIMESTAMPTZ NOT NULL,
    updated_at     TIMESTAMPTZ NOT NULL
)`

func TestPostgresStore_Integration(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	ctx := context.Background()

	_, err := pg.DB.ExecContext(ctx, visitorsSchema)
	require.NoError(t, err)

	s := NewPostgres(pg.DB)

	t.Run("round trips a visitor through create and find", func(t *testing.T) {
		v, err := models.NewVisitor("Alice Koné", "Acme", "audit",
			time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), "09:30", "H. Mansouri", time.Now().UTC())
		require.NoError(t, err)

		require.NoError(t, s.Create(ctx, v))
		require.NotZero(t, v.ID)

		got, err := s.FindByID(ctx, v.ID)
		require.NoError(t, err)
		assert.Equal(t, v.Name, got.Name)
		assert.Equal(t, v.Company, got.Company)
		assert.Equal(t, v.VisitDate.Format("2006-01-02"), got.VisitDate.Format("2006-01-02"))
		assert.False(t, got.Notified)
	})

	t.Run("update persists badge token and notified flag", func(t *testing.T) {
		v, err := models.NewVisitor("Bob Smith", "Globex", "delivery",
			time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC), "14:00", "K. Alaoui", time.Now().UTC())
		require.NoError(t, err)
		require.NoError(t, s.Create(ctx, v))

		v.ApplyBadgeToken(`{"id":1}`, time.Now().UTC())
		v.ApplyNotified(time.Now().UTC())
		require.NoError(t, s.Update(ctx, v))

		got, err := s.FindByID(ctx, v.ID)
		require.NoError(t, err)
		assert.Equal(t, `{"id":1}`, got.BadgeToken)
		assert.True(t, got.Notified)
	})

	t.Run("missing records return ErrNotFound", func(t *testing.T) {
		_, err := s.FindByID(ctx, 999999)
		require.ErrorIs(t, err, sentinel.ErrNotFound)
		require.ErrorIs(t, s.Delete(ctx, 999999), sentinel.ErrNotFound)
	})
}
