package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authhandler "gatepass/internal/auth/handler"
	authservice "gatepass/internal/auth/service"
	authstore "gatepass/internal/auth/store"
	"gatepass/internal/auth/token"
	"gatepass/pkg/requestcontext"
)

type protectedProbe struct{}

func (protectedProbe) Register(r chi.Router) {
	r.Get("/probe", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(requestcontext.UserID(r.Context()).String()))
	})
}

func newTestRouter(t *testing.T) (http.Handler, *authservice.AuthService) {
	t.Helper()
	log := slog.New(slog.DiscardHandler)
	tokens := token.NewService("router-test-key", "gatepass", "gatepass-api")
	authSvc := authservice.New(authstore.NewMemory(), tokens, time.Hour, log)

	router := NewRouter(Deps{
		Logger:    log,
		Validator: tokens,
		Public:    []Registrar{authhandler.New(authSvc, log)},
		Protected: []Registrar{protectedProbe{}},
		HealthChecks: map[string]func(ctx context.Context) error{
			"always_ok": func(context.Context) error { return nil },
		},
	})
	return router, authSvc
}

func TestRouter(t *testing.T) {
	router, authSvc := newTestRouter(t)
	ctx := context.Background()

	_, err := authSvc.CreateUser(ctx, "nadia@gatepass.local", "Nadia", "s3cret-enough")
	require.NoError(t, err)

	t.Run("healthz reports ok", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "ok", body["status"])
	})

	t.Run("healthz degrades when a check fails", func(t *testing.T) {
		failing := NewRouter(Deps{
			Logger: slog.New(slog.DiscardHandler),
			HealthChecks: map[string]func(ctx context.Context) error{
				"postgres": func(context.Context) error { return errors.New("connection refused") },
			},
		})
		rec := httptest.NewRecorder()
		failing.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("metrics endpoint is exposed", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("protected routes reject missing tokens", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/probe", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("protected routes pass the authenticated user through", func(t *testing.T) {
		login := httptest.NewRequest(http.MethodPost, "/auth/login",
			strings.NewReader(`{"email":"nadia@gatepass.local","password":"s3cret-enough"}`))
		loginRec := httptest.NewRecorder()
		router.ServeHTTP(loginRec, login)
		require.Equal(t, http.StatusOK, loginRec.Code)

		var loginBody struct {
			AccessToken string `json:"access_token"`
			UserID      string `json:"user_id"`
		}
		require.NoError(t, json.Unmarshal(loginRec.Body.Bytes(), &loginBody))

		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer "+loginBody.AccessToken)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, loginBody.UserID, rec.Body.String())
	})

	t.Run("login with bad credentials is unauthorized", func(t *testing.T) {
		login := httptest.NewRequest(http.MethodPost, "/auth/login",
			strings.NewReader(`{"email":"nadia@gatepass.local","password":"wrong"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, login)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
