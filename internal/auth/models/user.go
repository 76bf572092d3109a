package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	id "gatepass/pkg/domain"
	dErrors "gatepass/pkg/domain-errors"
)

// User is an employee account. Only employees authenticate; visitors never
// have accounts, their identity lives on the badge.
type User struct {
	ID           id.UserID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewUser validates account fields and builds a user record. The caller
// supplies an already-hashed password; plaintext never reaches this layer.
func NewUser(email, name string, passwordHash []byte, now time.Time) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "a valid email is required")
	}
	if len(passwordHash) == 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "password hash is required")
	}

	return &User{
		ID:           id.UserID(uuid.New()),
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: passwordHash,
		CreatedAt:    now,
	}, nil
}
