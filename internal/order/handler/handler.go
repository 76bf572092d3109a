package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"gatepass/internal/order/models"
	"gatepass/internal/order/service"
	id "gatepass/pkg/domain"
	dErrors "gatepass/pkg/domain-errors"
	"gatepass/pkg/platform/httputil"
	"gatepass/pkg/requestcontext"
)

// Service defines the order operations the handler exposes.
type Service interface {
	Place(ctx context.Context, userID id.UserID, draft models.Draft) (*service.PlacedOrder, error)
	Get(ctx context.Context, orderID id.OrderID) (*models.Order, error)
	List(ctx context.Context) ([]*models.Order, error)
	UpdateStatus(ctx context.Context, orderID id.OrderID, status models.Status) (*models.Order, error)
}

// Handler wires order endpoints to the order service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts order endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/orders", h.HandlePlace)
	r.Get("/orders", h.HandleList)
	r.Get("/orders/{orderID}", h.HandleGet)
	r.Patch("/orders/{orderID}/status", h.HandleUpdateStatus)
}

// HandlePlace handles POST /orders requests.
func (h *Handler) HandlePlace(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	userID := requestcontext.UserID(ctx)
	if userID == (id.UserID{}) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[PlaceRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	placed, err := h.service.Place(ctx, userID, req.ToDraft())
	if err != nil {
		h.logger.ErrorContext(ctx, "order placement failed",
			"request_id", requestID,
			"user_id", userID,
			"supplier", req.Supplier,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "order placed",
		"request_id", requestID,
		"user_id", userID,
		"reference", placed.Order.Reference,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusCreated, FromPlacedOrder(placed))
}

// HandleList handles GET /orders requests.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orders, err := h.service.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "order listing failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromOrders(orders))
}

// HandleGet handles GET /orders/{orderID} requests.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, err := id.ParseOrderID(chi.URLParam(r, "orderID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	o, err := h.service.Get(ctx, orderID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromOrder(o))
}

// HandleUpdateStatus handles PATCH /orders/{orderID}/status requests.
func (h *Handler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	orderID, err := id.ParseOrderID(chi.URLParam(r, "orderID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpdateStatusRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	status, err := models.ParseStatus(req.Status)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	o, err := h.service.UpdateStatus(ctx, orderID, status)
	if err != nil {
		h.logger.ErrorContext(ctx, "order status update failed",
			"request_id", requestID,
			"order_id", orderID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromOrder(o))
}
