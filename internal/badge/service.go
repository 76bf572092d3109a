package badge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"gatepass/internal/audit"
	"gatepass/internal/badge/metrics"
	"gatepass/internal/badge/scansession"
	"gatepass/internal/notify"
	"gatepass/internal/visitor/models"
	id "gatepass/pkg/domain"
	dErrors "gatepass/pkg/domain-errors"
	"gatepass/pkg/platform/sentinel"
	"gatepass/pkg/requestcontext"
)

// VisitorStore is the slice of visitor persistence the badge pipeline needs.
type VisitorStore interface {
	FindByID(ctx context.Context, visitorID id.VisitorID) (*models.Visitor, error)
	FindAll(ctx context.Context) ([]*models.Visitor, error)
	Update(ctx context.Context, v *models.Visitor) error
}

// Dispatcher fans one event out to the configured notification channels.
type Dispatcher interface {
	Dispatch(ctx context.Context, ev notify.Event) notify.DispatchResult
}

// Service orchestrates badge issuance, the decode→resolve→evaluate pipeline,
// and security notification.
type Service struct {
	visitors   VisitorStore
	dispatcher Dispatcher
	sessions   scansession.Store
	policy     ValidationPolicy
	sessionTTL time.Duration
	metrics    *metrics.Metrics
	emitter    *audit.Emitter
	logger     *slog.Logger
}

type Option func(*Service)

// WithPolicy overrides the rule composition used for the final verdict.
func WithPolicy(p ValidationPolicy) Option {
	return func(s *Service) { s.policy = p }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithAudit(e *audit.Emitter) Option {
	return func(s *Service) { s.emitter = e }
}

func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.sessionTTL = ttl
		}
	}
}

func NewService(visitors VisitorStore, dispatcher Dispatcher, sessions scansession.Store, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		visitors:   visitors,
		dispatcher: dispatcher,
		sessions:   sessions,
		policy:     DefaultPolicy,
		sessionTTL: 5 * time.Minute,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate issues a badge token for a visitor and persists it on the record.
// Regeneration overwrites the previous token; there is no revocation list.
func (s *Service) Generate(ctx context.Context, visitorID id.VisitorID) (string, error) {
	v, err := s.visitors.FindByID(ctx, visitorID)
	if err != nil {
		return "", translateStoreErr(err)
	}

	token, err := Encode(v)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode badge")
	}

	v.ApplyBadgeToken(token, requestcontext.Now(ctx))
	if err := s.visitors.Update(ctx, v); err != nil {
		return "", translateStoreErr(err)
	}

	if s.metrics != nil {
		s.metrics.BadgesGenerated.Inc()
	}
	s.emit(ctx, audit.ActionBadgeGenerated, v.ID.String(), nil)
	s.logger.InfoContext(ctx, "badge generated", "visitor_id", v.ID)
	return token, nil
}

// ValidationReport is the outcome of one badge scan: the resolved record,
// the per-rule evaluation, and the composed verdict. ScanSession is set only
// for valid scans and admits exactly one check-in confirmation.
type ValidationReport struct {
	IsValid     bool            `json:"is_valid"`
	Policy      string          `json:"policy"`
	Evaluation  Evaluation      `json:"evaluation"`
	Visitor     *models.Visitor `json:"visitor"`
	ScanSession string          `json:"scan_session,omitempty"`
}

// Validate runs the decode→resolve→evaluate pipeline over a raw token.
//
// Failure taxonomy, each distinct to the caller:
//   - malformed token        → bad_request ("invalid badge code format")
//   - no matching record     → not_found ("visitor not found")
//   - several fuzzy matches  → conflict (resolution refuses to guess)
//   - rules fail             → NOT an error: report with IsValid=false
func (s *Service) Validate(ctx context.Context, rawToken string) (*ValidationReport, error) {
	decoded := Decode(rawToken)
	if decoded.Format == FormatInvalid {
		s.observeValidation("decode_error")
		s.emit(ctx, audit.ActionBadgeRejected, "", map[string]any{"reason": decoded.Reason})
		return nil, dErrors.New(dErrors.CodeBadRequest, "invalid badge code format")
	}

	records, err := s.visitors.FindAll(ctx)
	if err != nil {
		s.observeValidation("error")
		return nil, translateStoreErr(err)
	}

	match := Resolve(decoded.Candidate, records)
	switch match.Status {
	case MatchNone:
		s.observeValidation("not_found")
		s.emit(ctx, audit.ActionBadgeRejected, "", map[string]any{"reason": "visitor_not_found"})
		return nil, dErrors.New(dErrors.CodeNotFound, "visitor not found")
	case MatchAmbiguous:
		s.observeValidation("ambiguous")
		s.logger.WarnContext(ctx, "badge matched multiple visitors",
			"candidate_name", decoded.Candidate.Name,
			"matches", len(match.CandidateIDs),
		)
		return nil, dErrors.New(dErrors.CodeConflict, "badge matches multiple visitors")
	}

	evaluation := Evaluate(match.Record, decoded.Candidate, requestcontext.Now(ctx))
	report := &ValidationReport{
		IsValid:    s.policy.IsValid(evaluation),
		Policy:     s.policy.Name,
		Evaluation: evaluation,
		Visitor:    match.Record,
	}

	if report.IsValid {
		s.observeValidation("valid")
		s.emit(ctx, audit.ActionBadgeValidated, match.Record.ID.String(), nil)
		if token, err := s.openScanSession(ctx, match.Record.ID); err == nil {
			report.ScanSession = token
		} else {
			// Best effort: a session store outage degrades to unconfirmed
			// check-in, it does not reject a valid badge.
			s.logger.WarnContext(ctx, "scan session not issued",
				"visitor_id", match.Record.ID, "error", err)
		}
	} else {
		s.observeValidation("rejected")
		s.emit(ctx, audit.ActionBadgeRejected, match.Record.ID.String(), map[string]any{
			"name_ok":    evaluation.NameOK,
			"company_ok": evaluation.CompanyOK,
			"date_ok":    evaluation.DateOK,
		})
	}

	return report, nil
}

// ConfirmCheckIn consumes a scan session issued by Validate. Each session
// admits exactly one confirmation.
func (s *Service) ConfirmCheckIn(ctx context.Context, sessionToken string) (*models.Visitor, error) {
	if s.sessions == nil {
		return nil, dErrors.New(dErrors.CodeConflict, "scan sessions are not enabled")
	}

	sess, err := s.sessions.Consume(ctx, sessionToken)
	if err != nil {
		switch {
		case errors.Is(err, sentinel.ErrNotFound), errors.Is(err, sentinel.ErrExpired), errors.Is(err, sentinel.ErrAlreadyUsed):
			return nil, dErrors.New(dErrors.CodeConflict, "scan session expired or already consumed")
		case errors.Is(err, sentinel.ErrUnavailable):
			return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "scan session store unavailable")
		default:
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to consume scan session")
		}
	}

	v, err := s.visitors.FindByID(ctx, sess.VisitorID)
	if err != nil {
		return nil, translateStoreErr(err)
	}
	s.logger.InfoContext(ctx, "check-in confirmed", "visitor_id", v.ID)
	return v, nil
}

// NotifySecurity announces a visitor arrival to the security desk over every
// configured channel, then marks the record notified.
//
// Dispatch-then-record: the notified flag is written after the join
// regardless of per-channel outcome. A crash between the two steps leaves a
// record marked not-notified even if a channel delivered — acceptable for an
// advisory notification, and the reason the flag is never trusted as a
// delivery receipt.
func (s *Service) NotifySecurity(ctx context.Context, visitorID id.VisitorID) (notify.DispatchResult, error) {
	v, err := s.visitors.FindByID(ctx, visitorID)
	if err != nil {
		return notify.DispatchResult{}, translateStoreErr(err)
	}

	result := s.dispatcher.Dispatch(ctx, ArrivalEvent(v))

	v.ApplyNotified(requestcontext.Now(ctx))
	if err := s.visitors.Update(ctx, v); err != nil {
		// The dispatch already happened; surface the store failure but keep
		// the outcomes so the caller can still render them.
		return result, translateStoreErr(err)
	}

	if s.metrics != nil {
		s.metrics.ObserveNotification(result.AllSucceeded)
	}
	s.emit(ctx, audit.ActionSecurityNotified, v.ID.String(), map[string]any{
		"all_succeeded": result.AllSucceeded,
	})
	return result, nil
}

// ArrivalEvent renders a visitor record as a dispatchable event.
func ArrivalEvent(v *models.Visitor) notify.Event {
	ev := notify.Event{
		Kind:      notify.KindVisitorArrival,
		Reference: fmt.Sprintf("V-%d", v.ID),
		PartyName: v.Name,
		Company:   v.Company,
		Time:      v.VisitTime,
		Contact:   v.ContactPerson,
		Summary:   v.Purpose,
	}
	if !v.VisitDate.IsZero() {
		ev.Date = v.VisitDate.Format("2006-01-02")
	}
	return ev
}

func (s *Service) openScanSession(ctx context.Context, visitorID id.VisitorID) (string, error) {
	if s.sessions == nil {
		return "", sentinel.ErrUnavailable
	}
	token := uuid.NewString()
	err := s.sessions.Put(ctx, scansession.Session{
		Token:     token,
		VisitorID: visitorID,
		ExpiresAt: requestcontext.Now(ctx).Add(s.sessionTTL),
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

func (s *Service) observeValidation(outcome string) {
	if s.metrics != nil {
		s.metrics.ObserveValidation(outcome)
	}
}

func (s *Service) emit(ctx context.Context, action audit.Action, subject string, detail map[string]any) {
	s.emitter.Emit(ctx, audit.Event{
		Action:     action,
		Subject:    subject,
		OccurredAt: requestcontext.Now(ctx),
		Detail:     detail,
	})
}

func translateStoreErr(err error) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "visitor not found")
	case errors.Is(err, sentinel.ErrUnavailable):
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "visitor store unavailable")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "visitor store failure")
	}
}
