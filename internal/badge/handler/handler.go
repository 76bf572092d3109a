package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"gatepass/internal/badge"
	"gatepass/internal/notify"
	vhandler "gatepass/internal/visitor/handler"
	"gatepass/internal/visitor/models"
	id "gatepass/pkg/domain"
	"gatepass/pkg/platform/httputil"
	"gatepass/pkg/requestcontext"
)

// Service defines the badge pipeline operations the handler exposes.
type Service interface {
	Generate(ctx context.Context, visitorID id.VisitorID) (string, error)
	Validate(ctx context.Context, rawToken string) (*badge.ValidationReport, error)
	ConfirmCheckIn(ctx context.Context, sessionToken string) (*models.Visitor, error)
	NotifySecurity(ctx context.Context, visitorID id.VisitorID) (notify.DispatchResult, error)
}

// Handler wires badge issuance, validation, and notification endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts badge endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/visitors/{visitorID}/badge", h.HandleGenerate)
	r.Post("/visitors/{visitorID}/notify", h.HandleNotify)
	r.Post("/badges/validate", h.HandleValidate)
	r.Post("/badges/checkin", h.HandleCheckIn)
}

// ValidateRequest carries the raw scanned token.
type ValidateRequest struct {
	Code string `json:"code"`
}

// CheckInRequest carries the scan session issued by a valid scan.
type CheckInRequest struct {
	ScanSession string `json:"scan_session"`
}

// ValidationResponse is the wire shape of a validation report.
type ValidationResponse struct {
	IsValid     bool                     `json:"is_valid"`
	Policy      string                   `json:"policy"`
	Evaluation  badge.Evaluation         `json:"evaluation"`
	Visitor     vhandler.VisitorResponse `json:"visitor"`
	ScanSession string                   `json:"scan_session,omitempty"`
}

// HandleGenerate handles POST /visitors/{visitorID}/badge requests.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	visitorID, err := id.ParseVisitorID(chi.URLParam(r, "visitorID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	token, err := h.service.Generate(ctx, visitorID)
	if err != nil {
		h.logger.ErrorContext(ctx, "badge generation failed",
			"request_id", requestcontext.RequestID(ctx),
			"visitor_id", visitorID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, map[string]string{"badge_token": token})
}

// HandleValidate handles POST /badges/validate requests.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[ValidateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	report, err := h.service.Validate(ctx, req.Code)
	if err != nil {
		h.logger.WarnContext(ctx, "badge validation rejected",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "badge validated",
		"request_id", requestID,
		"visitor_id", report.Visitor.ID,
		"is_valid", report.IsValid,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, ValidationResponse{
		IsValid:     report.IsValid,
		Policy:      report.Policy,
		Evaluation:  report.Evaluation,
		Visitor:     vhandler.FromVisitor(report.Visitor),
		ScanSession: report.ScanSession,
	})
}

// HandleCheckIn handles POST /badges/checkin requests.
func (h *Handler) HandleCheckIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CheckInRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	v, err := h.service.ConfirmCheckIn(ctx, req.ScanSession)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, vhandler.FromVisitor(v))
}

// HandleNotify handles POST /visitors/{visitorID}/notify requests.
func (h *Handler) HandleNotify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	visitorID, err := id.ParseVisitorID(chi.URLParam(r, "visitorID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.service.NotifySecurity(ctx, visitorID)
	if err != nil {
		h.logger.ErrorContext(ctx, "security notification failed",
			"request_id", requestID,
			"visitor_id", visitorID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "security notified",
		"request_id", requestID,
		"visitor_id", visitorID,
		"all_succeeded", result.AllSucceeded,
	)
	httputil.WriteJSON(w, http.StatusOK, result)
}
