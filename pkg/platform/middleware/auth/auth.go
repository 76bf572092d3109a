// Package auth provides bearer token middleware for protected routes.
package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"gatepass/internal/auth/token"
	id "gatepass/pkg/domain"
	dErrors "gatepass/pkg/domain-errors"
	"gatepass/pkg/platform/httputil"
	"gatepass/pkg/requestcontext"
)

// TokenValidator validates a raw bearer token into claims.
type TokenValidator interface {
	Validate(tokenString string) (*token.Claims, error)
}

// RequireAuth rejects requests without a valid bearer token and stores the
// authenticated user ID in the request context.
func RequireAuth(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestcontext.RequestID(ctx),
					"path", r.URL.Path,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing or invalid Authorization header"))
				return
			}

			claims, err := validator.Validate(raw)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"request_id", requestcontext.RequestID(ctx),
					"error", err,
				)
				httputil.WriteError(w, err)
				return
			}

			userID, err := id.ParseUserID(claims.UserID)
			if err != nil {
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims"))
				return
			}

			next.ServeHTTP(w, r.WithContext(requestcontext.WithUserID(ctx, userID)))
		})
	}
}
