// Package service handles employee authentication.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"gatepass/internal/auth/models"
	"gatepass/internal/auth/token"
	id "gatepass/pkg/domain"
	dErrors "gatepass/pkg/domain-errors"
	"gatepass/pkg/platform/sentinel"
	"gatepass/pkg/requestcontext"
)

// Store abstracts user account persistence.
type Store interface {
	Create(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, userID id.UserID) (*models.User, error)
}

// AuthService issues access tokens against stored credentials.
type AuthService struct {
	users     Store
	tokens    *token.Service
	accessTTL time.Duration
	logger    *slog.Logger
}

func New(users Store, tokens *token.Service, accessTTL time.Duration, logger *slog.Logger) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		accessTTL: accessTTL,
		logger:    logger,
	}
}

// CreateUser hashes the password and stores a new account.
func (s *AuthService) CreateUser(ctx context.Context, email, name, password string) (*models.User, error) {
	if len(password) < 8 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
	}

	u, err := models.NewUser(email, name, hash, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "email already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create user")
	}

	s.logger.InfoContext(ctx, "user created", "user_id", u.ID, "email", u.Email)
	return u, nil
}

// LoginResult carries the issued token and its owner.
type LoginResult struct {
	AccessToken string
	ExpiresIn   time.Duration
	User        *models.User
}

// Login verifies credentials and issues an access token. Unknown email and
// wrong password return the same error so the endpoint never leaks which
// accounts exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	invalid := dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, invalid
		}
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "user store unavailable")
	}

	if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) != nil {
		s.logger.WarnContext(ctx, "failed login attempt", "email", u.Email)
		return nil, invalid
	}

	sessionID := id.SessionID(uuid.New())
	accessToken, err := s.tokens.Generate(u.ID, sessionID, s.accessTTL, requestcontext.Now(ctx))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign access token")
	}

	s.logger.InfoContext(ctx, "user logged in", "user_id", u.ID, "session_id", sessionID)
	return &LoginResult{
		AccessToken: accessToken,
		ExpiresIn:   s.accessTTL,
		User:        u,
	}, nil
}
