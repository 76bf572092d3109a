// Package notify fans domain events out to external notification channels.
//
// Delivery is best-effort and advisory: a channel failure is recorded, never
// propagated, and never rolls back the state change that triggered the
// dispatch. Callers that need stronger guarantees must add idempotency keys
// on the channel side before retrying.
package notify

import "context"

// EventKind discriminates what a dispatch announces.
type EventKind string

const (
	KindVisitorArrival EventKind = "visitor_arrival"
	KindOrderPlaced    EventKind = "order_placed"
)

// Event carries the structured content every channel needs. Channels render
// it in their own format; fields a channel cannot fill render as
// "not provided" rather than failing the send.
type Event struct {
	Kind EventKind

	Reference string // badge reference (V-7) or order reference (ORD-...)
	PartyName string // visitor name, or employee who placed the order
	Company   string // visitor's company, or the supplier
	Date      string
	Time      string
	Contact   string // internal contact person or supplier contact
	Summary   string // visit purpose, or order justification
	Amount    string // order total with currency, empty for visits

	Items []EventItem

	EmailRecipient    string
	WhatsAppRecipient string
}

// EventItem is one order line.
type EventItem struct {
	Name          string
	Quantity      int
	UnitPrice     float64
	Justification string
}

// Channel is one outbound transport. Send failures are returned as errors;
// the dispatcher converts them to recorded outcomes. An adapter must not
// panic past its boundary, but the dispatcher guards against it anyway.
type Channel interface {
	Name() string
	Send(ctx context.Context, ev Event) error
}

// Outcome is the per-channel result of one dispatch.
type Outcome struct {
	Channel string `json:"channel"`
	OK      bool   `json:"ok"`
	Detail  string `json:"detail,omitempty"`
}

// DispatchResult aggregates channel outcomes for one event.
type DispatchResult struct {
	AllSucceeded bool      `json:"all_succeeded"`
	Outcomes     []Outcome `json:"outcomes"`
}
