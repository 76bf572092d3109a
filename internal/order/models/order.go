package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	id "gatepass/pkg/domain"
	dErrors "gatepass/pkg/domain-errors"
)

// Status tracks an order through its procurement lifecycle.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// ParseStatus validates a wire status value.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, nil
	case StatusApproved:
		return StatusApproved, nil
	case StatusDelivered:
		return StatusDelivered, nil
	case StatusCancelled:
		return StatusCancelled, nil
	default:
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "unknown order status %q", s)
	}
}

// OrderItem is one line of a supply order. Prices are in MAD.
type OrderItem struct {
	ProductName   string  `json:"product_name"`
	Quantity      int     `json:"quantity"`
	UnitPrice     float64 `json:"unit_price"`
	Justification string  `json:"justification,omitempty"`
}

func (i OrderItem) LineTotal() float64 {
	return float64(i.Quantity) * i.UnitPrice
}

// Order is the aggregate root for one supply order placed by an employee.
//
// Invariants:
//   - at least one item; every item has a name, positive quantity, and a
//     non-negative unit price
//   - TotalAmount is the sum of line totals, fixed at placement
//   - Notified flips false→true on the first dispatch attempt and never resets
type Order struct {
	ID            id.OrderID  `json:"id"`
	Reference     string      `json:"reference"`
	UserID        id.UserID   `json:"user_id"`
	UserName      string      `json:"user_name,omitempty"`
	UserEmail     string      `json:"user_email,omitempty"`
	Supplier      string      `json:"supplier"`
	OrderDate     time.Time   `json:"order_date"`
	Status        Status      `json:"status"`
	Items         []OrderItem `json:"items"`
	TotalAmount   float64     `json:"total_amount"`
	Justification string      `json:"justification,omitempty"`
	Notified      bool        `json:"notified"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// Draft carries the fields an employee submits when placing an order.
type Draft struct {
	Supplier      string
	Items         []OrderItem
	Justification string
	UserName      string
	UserEmail     string
}

// NewOrder validates a draft and builds an order record. The reference is
// assigned by the service, the ID here. Items without their own justification
// inherit the order-level one.
func NewOrder(userID id.UserID, draft Draft, now time.Time) (*Order, error) {
	if len(draft.Items) == 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "order requires at least one item")
	}

	items := make([]OrderItem, 0, len(draft.Items))
	total := 0.0
	for _, item := range draft.Items {
		item.ProductName = strings.TrimSpace(item.ProductName)
		if item.ProductName == "" {
			return nil, dErrors.New(dErrors.CodeInvalidInput, "order item requires a product name")
		}
		if item.Quantity <= 0 {
			return nil, dErrors.Newf(dErrors.CodeInvalidInput, "invalid quantity for %s", item.ProductName)
		}
		if item.UnitPrice < 0 {
			return nil, dErrors.Newf(dErrors.CodeInvalidInput, "invalid unit price for %s", item.ProductName)
		}
		if item.Justification == "" {
			item.Justification = draft.Justification
		}
		total += item.LineTotal()
		items = append(items, item)
	}

	return &Order{
		ID:            id.OrderID(uuid.New()),
		UserID:        userID,
		UserName:      strings.TrimSpace(draft.UserName),
		UserEmail:     strings.TrimSpace(draft.UserEmail),
		Supplier:      strings.TrimSpace(draft.Supplier),
		OrderDate:     now,
		Status:        StatusPending,
		Items:         items,
		TotalAmount:   total,
		Justification: strings.TrimSpace(draft.Justification),
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// ApplyNotified marks the supplier notification as attempted.
func (o *Order) ApplyNotified(now time.Time) {
	o.Notified = true
	o.UpdatedAt = now
}

// Clone returns a deep copy so stores never alias their internal state.
func (o *Order) Clone() *Order {
	c := *o
	c.Items = make([]OrderItem, len(o.Items))
	copy(c.Items, o.Items)
	return &c
}
