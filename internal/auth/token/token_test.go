package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "gatepass/pkg/domain"
	dErrors "gatepass/pkg/domain-errors"
)

func TestService(t *testing.T) {
	svc := NewService("test-signing-key", "gatepass", "gatepass-api")
	userID := id.UserID(uuid.New())
	sessionID := id.SessionID(uuid.New())
	now := time.Now()

	t.Run("round trips claims", func(t *testing.T) {
		signed, err := svc.Generate(userID, sessionID, time.Hour, now)
		require.NoError(t, err)

		claims, err := svc.Validate(signed)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, sessionID.String(), claims.SessionID)
		assert.Equal(t, "gatepass", claims.Issuer)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		signed, err := svc.Generate(userID, sessionID, time.Hour, now.Add(-2*time.Hour))
		require.NoError(t, err)

		_, err = svc.Validate(signed)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("rejects a token signed with another key", func(t *testing.T) {
		other := NewService("different-key", "gatepass", "gatepass-api")
		signed, err := other.Generate(userID, sessionID, time.Hour, now)
		require.NoError(t, err)

		_, err = svc.Validate(signed)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := svc.Validate("not-a-token")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}
