// Package httpapi assembles the HTTP surface: module handlers, shared
// middleware, and the operational endpoints.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authmw "gatepass/pkg/platform/middleware/auth"
	"gatepass/pkg/platform/middleware/requestid"
	"gatepass/pkg/platform/middleware/requesttime"
)

// Registrar is anything that can mount its routes on the router. Every module
// handler implements it.
type Registrar interface {
	Register(r chi.Router)
}

// Deps carries everything the router needs. Protected handlers are mounted
// behind bearer authentication; public ones (badge scanning happens on shared
// terminals before anyone is logged in) are not.
type Deps struct {
	Logger    *slog.Logger
	Validator authmw.TokenValidator

	Public    []Registrar
	Protected []Registrar

	// HealthChecks run on /healthz; any failure turns the response 503.
	HealthChecks map[string]func(ctx context.Context) error
}

// NewRouter wires all endpoints.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(requesttime.Middleware)

	r.Get("/healthz", handleHealth(deps))
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		for _, h := range deps.Public {
			h.Register(r)
		}
	})

	r.Group(func(r chi.Router) {
		r.Use(authmw.RequireAuth(deps.Validator, deps.Logger))
		for _, h := range deps.Protected {
			h.Register(r)
		}
	})

	return r
}

func handleHealth(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		checks := make(map[string]string, len(deps.HealthChecks))
		for name, check := range deps.HealthChecks {
			if err := check(ctx); err != nil {
				checks[name] = err.Error()
				status = http.StatusServiceUnavailable
				deps.Logger.WarnContext(ctx, "health check failed", "check", name, "error", err)
				continue
			}
			checks[name] = "ok"
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		body := map[string]any{"status": "ok", "checks": checks}
		if status != http.StatusOK {
			body["status"] = "degraded"
		}
		_ = json.NewEncoder(w).Encode(body)
	}
}
