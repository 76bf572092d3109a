// Package domain defines strongly typed identifiers shared across modules.
// Distinct types keep a VisitorID from ever being passed where an OrderID is
// expected; the compiler enforces what code review would otherwise have to.
package domain

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	dErrors "gatepass/pkg/domain-errors"
)

// VisitorID identifies a visitor record. Visitor IDs are store-assigned
// sequence numbers because badges already issued in the field embed them as
// integers; changing the shape would orphan every printed badge.
type VisitorID int64

// ParseVisitorID parses a decimal visitor ID, rejecting zero and negatives.
func ParseVisitorID(s string) (VisitorID, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "visitor ID must be a positive integer")
	}
	return VisitorID(n), nil
}

func (id VisitorID) String() string { return strconv.FormatInt(int64(id), 10) }

// UserID identifies an employee account.
type UserID uuid.UUID

// OrderID identifies a supply order.
type OrderID uuid.UUID

// SessionID identifies an authenticated session.
type SessionID uuid.UUID

// ParseUserID parses and validates a user ID string.
// IDs must be valid, non-empty, non-nil UUIDs.
func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s, "user ID")
	return UserID(u), err
}

// ParseOrderID parses and validates an order ID string.
func ParseOrderID(s string) (OrderID, error) {
	u, err := parseUUID(s, "order ID")
	return OrderID(u), err
}

func (id UserID) String() string    { return uuid.UUID(id).String() }
func (id OrderID) String() string   { return uuid.UUID(id).String() }
func (id SessionID) String() string { return uuid.UUID(id).String() }

func parseUUID(s, what string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s is required", what)
	}
	u, err := uuid.Parse(s)
	if err != nil || u == uuid.Nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s must be a valid UUID", what)
	}
	return u, nil
}
