package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatepass/internal/auth/store"
	"gatepass/internal/auth/token"
	dErrors "gatepass/pkg/domain-errors"
)

func newTestAuthService() *AuthService {
	tokens := token.NewService("test-signing-key", "gatepass", "gatepass-api")
	return New(store.NewMemory(), tokens, time.Hour, slog.New(slog.DiscardHandler))
}

func TestAuthService(t *testing.T) {
	ctx := context.Background()

	t.Run("login issues a token that validates", func(t *testing.T) {
		svc := newTestAuthService()
		u, err := svc.CreateUser(ctx, "nadia@gatepass.local", "Nadia", "s3cret-enough")
		require.NoError(t, err)

		result, err := svc.Login(ctx, "nadia@gatepass.local", "s3cret-enough")
		require.NoError(t, err)
		assert.Equal(t, u.ID, result.User.ID)

		claims, err := svc.tokens.Validate(result.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, u.ID.String(), claims.UserID)
	})

	t.Run("email comparison is case-insensitive", func(t *testing.T) {
		svc := newTestAuthService()
		_, err := svc.CreateUser(ctx, "Nadia@Gatepass.Local", "Nadia", "s3cret-enough")
		require.NoError(t, err)

		_, err = svc.Login(ctx, "nadia@gatepass.local", "s3cret-enough")
		assert.NoError(t, err)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		svc := newTestAuthService()
		_, err := svc.CreateUser(ctx, "nadia@gatepass.local", "Nadia", "s3cret-enough")
		require.NoError(t, err)

		_, wrongPassword := svc.Login(ctx, "nadia@gatepass.local", "wrong")
		_, unknownEmail := svc.Login(ctx, "nobody@gatepass.local", "whatever")

		require.Error(t, wrongPassword)
		require.Error(t, unknownEmail)
		assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
		assert.True(t, dErrors.HasCode(wrongPassword, dErrors.CodeUnauthorized))
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		svc := newTestAuthService()
		_, err := svc.CreateUser(ctx, "nadia@gatepass.local", "Nadia", "s3cret-enough")
		require.NoError(t, err)

		_, err = svc.CreateUser(ctx, "nadia@gatepass.local", "Other", "s3cret-enough")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	})

	t.Run("short passwords are rejected", func(t *testing.T) {
		svc := newTestAuthService()
		_, err := svc.CreateUser(ctx, "nadia@gatepass.local", "Nadia", "short")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}
