package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gatepass/internal/auth/service"
	"gatepass/pkg/platform/httputil"
	"gatepass/pkg/requestcontext"
)

// Service defines the authentication operations the handler exposes.
type Service interface {
	Login(ctx context.Context, email, password string) (*service.LoginResult, error)
}

// Handler wires authentication endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts auth endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/auth/login", h.HandleLogin)
}

// LoginRequest carries employee credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the issued bearer token.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	UserID      string `json:"user_id"`
	Name        string `json:"name,omitempty"`
}

// HandleLogin handles POST /auth/login requests.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[LoginRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, LoginResponse{
		AccessToken: result.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(result.ExpiresIn.Seconds()),
		UserID:      result.User.ID.String(),
		Name:        result.User.Name,
	})
}
