package models

import (
	"strings"
	"time"

	id "gatepass/pkg/domain"
	dErrors "gatepass/pkg/domain-errors"
)

// Visitor is the aggregate root for a registered facility visitor.
//
// Invariants:
//   - Name and ContactPerson are non-empty
//   - BadgeToken is empty until first issued; regeneration overwrites it
//     (there is no revocation list, an old screenshot still decodes)
//   - Notified flips false→true on the first security notification attempt
//     and is never reset
type Visitor struct {
	ID            id.VisitorID `json:"id"`
	Name          string       `json:"name"`
	Company       string       `json:"company"`
	Purpose       string       `json:"purpose"`
	VisitDate     time.Time    `json:"visit_date"`
	VisitTime     string       `json:"visit_time"`
	ContactPerson string       `json:"contact_person"`
	BadgeToken    string       `json:"badge_token,omitempty"`
	Notified      bool         `json:"notified"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// NewVisitor validates registration input and builds a visitor record.
// The store assigns the ID on create.
func NewVisitor(name, company, purpose string, visitDate time.Time, visitTime, contactPerson string, now time.Time) (*Visitor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "visitor name is required")
	}
	contactPerson = strings.TrimSpace(contactPerson)
	if contactPerson == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "contact person is required")
	}
	if visitDate.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "visit date is required")
	}

	return &Visitor{
		Name:          name,
		Company:       strings.TrimSpace(company),
		Purpose:       strings.TrimSpace(purpose),
		VisitDate:     visitDate,
		VisitTime:     strings.TrimSpace(visitTime),
		ContactPerson: contactPerson,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// ApplyBadgeToken records a freshly issued badge token, overwriting any
// previous one.
func (v *Visitor) ApplyBadgeToken(token string, now time.Time) {
	v.BadgeToken = token
	v.UpdatedAt = now
}

// ApplyNotified marks the security notification as attempted. The flag never
// resets, so repeated notifications stay idempotent from the record's view.
func (v *Visitor) ApplyNotified(now time.Time) {
	v.Notified = true
	v.UpdatedAt = now
}

// Clone returns a deep copy so stores can hand out records without aliasing
// their internal state.
func (v *Visitor) Clone() *Visitor {
	c := *v
	return &c
}
