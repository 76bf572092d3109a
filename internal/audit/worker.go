package audit

import (
	"context"
	"log/slog"
)

// Worker consumes audit events from a channel and persists them. It keeps
// background processing testable without wiring queue implementations.
type Worker struct {
	store  Store
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(store Store, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{store: store, inbox: inbox, logger: logger}
}

// Run drains the inbox until the context is cancelled. A store failure is
// logged, not fatal: losing one trail entry must not stop the trail.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil {
				w.logger.ErrorContext(ctx, "audit append failed",
					"action", event.Action,
					"error", err,
				)
			}
		}
	}
}
