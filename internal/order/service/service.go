// Package service orchestrates supply order placement and supplier
// notification.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gatepass/internal/audit"
	"gatepass/internal/notify"
	"gatepass/internal/order/models"
	id "gatepass/pkg/domain"
	dErrors "gatepass/pkg/domain-errors"
	"gatepass/pkg/platform/sentinel"
	"gatepass/pkg/requestcontext"
)

// Store abstracts order persistence. NextSequence hands out per-day reference
// sequence numbers.
type Store interface {
	Create(ctx context.Context, o *models.Order) error
	FindByID(ctx context.Context, orderID id.OrderID) (*models.Order, error)
	FindAll(ctx context.Context) ([]*models.Order, error)
	Update(ctx context.Context, o *models.Order) error
	NextSequence(ctx context.Context, day time.Time) (int, error)
}

// Dispatcher fans one event out to the configured notification channels.
type Dispatcher interface {
	Dispatch(ctx context.Context, ev notify.Event) notify.DispatchResult
}

// OrderService handles order placement and the supplier/employee fan-out.
type OrderService struct {
	store      Store
	dispatcher Dispatcher
	partners   *PartnerDirectory
	emitter    *audit.Emitter
	logger     *slog.Logger
}

type Option func(*OrderService)

func WithAudit(e *audit.Emitter) Option {
	return func(s *OrderService) { s.emitter = e }
}

func New(store Store, dispatcher Dispatcher, partners *PartnerDirectory, logger *slog.Logger, opts ...Option) *OrderService {
	s := &OrderService{
		store:      store,
		dispatcher: dispatcher,
		partners:   partners,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PlacedOrder is the outcome of Place: the persisted order plus the
// per-channel notification outcomes.
type PlacedOrder struct {
	Order    *models.Order
	Dispatch notify.DispatchResult
}

// Place validates the draft, persists the order, then announces it to the
// supplier (WhatsApp) and the employee (email).
//
// Dispatch-then-record: channel failures are recorded as outcomes and never
// roll the order back. An order exists once persisted, notified or not.
func (s *OrderService) Place(ctx context.Context, userID id.UserID, draft models.Draft) (*PlacedOrder, error) {
	now := requestcontext.Now(ctx)

	o, err := models.NewOrder(userID, draft, now)
	if err != nil {
		return nil, err
	}

	seq, err := s.store.NextSequence(ctx, now)
	if err != nil {
		return nil, wrapOrderStoreErr(err, "failed to allocate order reference")
	}
	o.Reference = fmt.Sprintf("ORD-%s-%03d", now.UTC().Format("20060102"), seq)

	if err := s.store.Create(ctx, o); err != nil {
		return nil, wrapOrderStoreErr(err, "failed to persist order")
	}

	result := s.dispatcher.Dispatch(ctx, s.orderEvent(o))

	o.ApplyNotified(requestcontext.Now(ctx))
	if err := s.store.Update(ctx, o); err != nil {
		// The order and the dispatch both happened; surface the bookkeeping
		// failure without discarding either.
		return &PlacedOrder{Order: o, Dispatch: result}, wrapOrderStoreErr(err, "failed to record notification")
	}

	s.emit(ctx, audit.ActionOrderPlaced, o.Reference, map[string]any{
		"supplier":      o.Supplier,
		"total_amount":  o.TotalAmount,
		"all_succeeded": result.AllSucceeded,
	})
	s.logger.InfoContext(ctx, "order placed",
		"reference", o.Reference,
		"supplier", o.Supplier,
		"items", len(o.Items),
		"total_amount", o.TotalAmount,
		"all_succeeded", result.AllSucceeded,
	)
	return &PlacedOrder{Order: o, Dispatch: result}, nil
}

func (s *OrderService) Get(ctx context.Context, orderID id.OrderID) (*models.Order, error) {
	o, err := s.store.FindByID(ctx, orderID)
	if err != nil {
		return nil, wrapOrderStoreErr(err, "failed to load order")
	}
	return o, nil
}

func (s *OrderService) List(ctx context.Context) ([]*models.Order, error) {
	all, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, wrapOrderStoreErr(err, "failed to list orders")
	}
	return all, nil
}

// UpdateStatus moves an order through its lifecycle. Any transition is
// allowed; procurement corrects mistakes by setting the status again.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID id.OrderID, status models.Status) (*models.Order, error) {
	o, err := s.store.FindByID(ctx, orderID)
	if err != nil {
		return nil, wrapOrderStoreErr(err, "failed to load order")
	}

	o.Status = status
	o.UpdatedAt = requestcontext.Now(ctx)
	if err := s.store.Update(ctx, o); err != nil {
		return nil, wrapOrderStoreErr(err, "failed to update order")
	}

	s.logger.InfoContext(ctx, "order status updated",
		"reference", o.Reference,
		"status", o.Status,
	)
	return o, nil
}

// orderEvent renders an order as a dispatchable event. The supplier contact
// comes from the partner directory, the confirmation email goes to the
// employee who placed the order.
func (s *OrderService) orderEvent(o *models.Order) notify.Event {
	items := make([]notify.EventItem, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, notify.EventItem{
			Name:          item.ProductName,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			Justification: item.Justification,
		})
	}
	return notify.Event{
		Kind:              notify.KindOrderPlaced,
		Reference:         o.Reference,
		PartyName:         o.UserName,
		Company:           o.Supplier,
		Date:              o.OrderDate.Format("2006-01-02"),
		Summary:           o.Justification,
		Amount:            fmt.Sprintf("%.2f MAD", o.TotalAmount),
		Items:             items,
		EmailRecipient:    o.UserEmail,
		WhatsAppRecipient: s.partners.Recipient(o.Supplier),
	}
}

func (s *OrderService) emit(ctx context.Context, action audit.Action, subject string, detail map[string]any) {
	s.emitter.Emit(ctx, audit.Event{
		Action:     action,
		Subject:    subject,
		OccurredAt: requestcontext.Now(ctx),
		Detail:     detail,
	})
}

func wrapOrderStoreErr(err error, msg string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "order not found")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.Wrap(err, dErrors.CodeConflict, "order reference already exists")
	case errors.Is(err, sentinel.ErrUnavailable):
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "order store unavailable")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, msg)
	}
}
