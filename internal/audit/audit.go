// Package audit records an append-only trail of security-relevant actions:
// badge validations, security notifications, placed orders.
package audit

import (
	"context"
	"log/slog"
	"time"
)

// Action identifies what happened.
type Action string

const (
	ActionBadgeGenerated   Action = "badge_generated"
	ActionBadgeValidated   Action = "badge_validated"
	ActionBadgeRejected    Action = "badge_rejected"
	ActionSecurityNotified Action = "security_notified"
	ActionOrderPlaced      Action = "order_placed"
)

// Event is one audit trail entry.
type Event struct {
	Action     Action         `json:"action"`
	Subject    string         `json:"subject"` // visitor ID, order reference
	OccurredAt time.Time      `json:"occurred_at"`
	Detail     map[string]any `json:"detail,omitempty"`
}

// Store appends and reads audit events.
type Store interface {
	Append(ctx context.Context, e Event) error
	List(ctx context.Context) ([]Event, error)
}

// Emitter hands events to the audit worker without blocking the request
// path: a full buffer drops the event with a warning rather than stalling
// a check-in because the audit store is slow.
type Emitter struct {
	inbox  chan<- Event
	logger *slog.Logger
}

func NewEmitter(inbox chan<- Event, logger *slog.Logger) *Emitter {
	return &Emitter{inbox: inbox, logger: logger}
}

// Emit enqueues an event. Safe to call on a nil emitter so services can run
// without an audit trail wired (tests, CLI tools).
func (e *Emitter) Emit(ctx context.Context, event Event) {
	if e == nil {
		return
	}
	select {
	case e.inbox <- event:
	default:
		e.logger.WarnContext(ctx, "audit buffer full, event dropped",
			"action", event.Action,
			"subject", event.Subject,
		)
	}
}
