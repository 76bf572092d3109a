package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gatepass/internal/visitor/models"
	"gatepass/internal/visitor/service"
	id "gatepass/pkg/domain"
	"gatepass/pkg/platform/httputil"
	"gatepass/pkg/requestcontext"
)

// Service defines the visitor lifecycle operations the handler exposes.
type Service interface {
	Register(ctx context.Context, in service.RegisterInput) (*models.Visitor, error)
	Get(ctx context.Context, visitorID id.VisitorID) (*models.Visitor, error)
	List(ctx context.Context) ([]*models.Visitor, error)
	Update(ctx context.Context, visitorID id.VisitorID, in service.UpdateInput) (*models.Visitor, error)
	Delete(ctx context.Context, visitorID id.VisitorID) error
}

// Handler wires visitor CRUD endpoints to the visitor service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts visitor endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/visitors", h.HandleRegister)
	r.Get("/visitors", h.HandleList)
	r.Get("/visitors/{visitorID}", h.HandleGet)
	r.Patch("/visitors/{visitorID}", h.HandleUpdate)
	r.Delete("/visitors/{visitorID}", h.HandleDelete)
}

// HandleRegister handles POST /visitors requests.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[RegisterRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	in, err := req.ToInput()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	v, err := h.service.Register(ctx, in)
	if err != nil {
		h.logger.ErrorContext(ctx, "visitor registration failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, FromVisitor(v))
}

// HandleList handles GET /visitors requests.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	visitors, err := h.service.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "visitor listing failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromVisitors(visitors))
}

// HandleGet handles GET /visitors/{visitorID} requests.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	visitorID, err := id.ParseVisitorID(chi.URLParam(r, "visitorID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	v, err := h.service.Get(ctx, visitorID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromVisitor(v))
}

// HandleUpdate handles PATCH /visitors/{visitorID} requests.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	visitorID, err := id.ParseVisitorID(chi.URLParam(r, "visitorID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpdateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	in, err := req.ToInput()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	v, err := h.service.Update(ctx, visitorID, in)
	if err != nil {
		h.logger.ErrorContext(ctx, "visitor update failed",
			"request_id", requestID,
			"visitor_id", visitorID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromVisitor(v))
}

// HandleDelete handles DELETE /visitors/{visitorID} requests.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	visitorID, err := id.ParseVisitorID(chi.URLParam(r, "visitorID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.Delete(ctx, visitorID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
