package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"gatepass/internal/notify/metrics"
)

const defaultDispatchTimeout = 10 * time.Second

// Dispatcher sends one event through all configured channels concurrently
// and joins on completion. Channel order in Outcomes matches configuration
// order; completion order between channels is not defined.
type Dispatcher struct {
	channels []Channel
	timeout  time.Duration
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

type Option func(*Dispatcher)

// WithTimeout bounds one fan-out across all channels. The original system
// imposed none; a hung adapter would stall the join indefinitely, so the
// budget is deliberate here.
func WithTimeout(d time.Duration) Option {
	return func(disp *Dispatcher) {
		if d > 0 {
			disp.timeout = d
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(disp *Dispatcher) { disp.metrics = m }
}

func NewDispatcher(logger *slog.Logger, channels []Channel, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		channels: channels,
		timeout:  defaultDispatchTimeout,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch fans ev out to every channel and returns once all have finished
// or the timeout expires. It never returns an error: channel failures are
// values in the result, and a panicking adapter is caught and recorded as a
// failed outcome so the remaining channels still run and report.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) DispatchResult {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	outcomes := make([]Outcome, len(d.channels))

	g := new(errgroup.Group)
	for i, ch := range d.channels {
		g.Go(func() error {
			outcomes[i] = d.sendOne(ctx, ch, ev)
			return nil
		})
	}
	// Join, not race: every goroutine writes exactly its own slot.
	_ = g.Wait()

	result := DispatchResult{AllSucceeded: true, Outcomes: outcomes}
	for _, o := range outcomes {
		if !o.OK {
			result.AllSucceeded = false
		}
	}

	d.logger.InfoContext(ctx, "notification dispatch completed",
		"kind", ev.Kind,
		"reference", ev.Reference,
		"channels", len(d.channels),
		"all_succeeded", result.AllSucceeded,
	)
	return result
}

func (d *Dispatcher) sendOne(ctx context.Context, ch Channel, ev Event) (out Outcome) {
	out = Outcome{Channel: ch.Name(), OK: true}

	defer func() {
		if r := recover(); r != nil {
			out.OK = false
			out.Detail = fmt.Sprintf("channel panicked: %v", r)
			d.logger.ErrorContext(ctx, "notification channel panicked",
				"channel", ch.Name(), "panic", r)
			d.observe(ch.Name(), false)
		}
	}()

	if err := ch.Send(ctx, ev); err != nil {
		out.OK = false
		out.Detail = err.Error()
		d.logger.WarnContext(ctx, "notification channel failed",
			"channel", ch.Name(),
			"kind", ev.Kind,
			"reference", ev.Reference,
			"error", err,
		)
		d.observe(ch.Name(), false)
		return out
	}

	d.observe(ch.Name(), true)
	return out
}

func (d *Dispatcher) observe(channel string, ok bool) {
	if d.metrics != nil {
		d.metrics.ObserveSend(channel, ok)
	}
}
