// Package token handles JWT creation and validation for employee sessions.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	id "gatepass/pkg/domain"
	dErrors "gatepass/pkg/domain-errors"
)

// Claims are the access token claims.
type Claims struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// Service signs and validates HS256 access tokens.
type Service struct {
	signingKey []byte
	issuer     string
	audience   string
}

func NewService(signingKey, issuer, audience string) *Service {
	return &Service{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		audience:   audience,
	}
}

// Generate signs an access token for a user session.
func (s *Service) Generate(userID id.UserID, sessionID id.SessionID, expiresIn time.Duration, now time.Time) (string, error) {
	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:    userID.String(),
		SessionID: sessionID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			Audience:  []string{s.audience},
			ID:        uuid.NewString(),
		},
	})
	return newToken.SignedString(s.signingKey)
}

// Validate parses and verifies an access token, rejecting any signing method
// other than HMAC.
func (s *Service) Validate(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	if !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	return claims, nil
}
