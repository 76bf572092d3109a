package handler

import (
	"gatepass/internal/visitor/models"
	id "gatepass/pkg/domain"
)

// VisitorResponse is the wire shape of a visitor record. Dates are rendered
// as calendar days; timestamps keep RFC 3339.
type VisitorResponse struct {
	ID            id.VisitorID `json:"id"`
	Name          string       `json:"name"`
	Company       string       `json:"company,omitempty"`
	Purpose       string       `json:"purpose,omitempty"`
	VisitDate     string       `json:"visit_date,omitempty"`
	VisitTime     string       `json:"visit_time,omitempty"`
	ContactPerson string       `json:"contact_person"`
	BadgeToken    string       `json:"badge_token,omitempty"`
	Notified      bool         `json:"notified"`
	CreatedAt     string       `json:"created_at"`
	UpdatedAt     string       `json:"updated_at"`
}

func FromVisitor(v *models.Visitor) VisitorResponse {
	resp := VisitorResponse{
		ID:            v.ID,
		Name:          v.Name,
		Company:       v.Company,
		Purpose:       v.Purpose,
		VisitTime:     v.VisitTime,
		ContactPerson: v.ContactPerson,
		BadgeToken:    v.BadgeToken,
		Notified:      v.Notified,
		CreatedAt:     v.CreatedAt.Format(timestampLayout),
		UpdatedAt:     v.UpdatedAt.Format(timestampLayout),
	}
	if !v.VisitDate.IsZero() {
		resp.VisitDate = v.VisitDate.Format(dateLayout)
	}
	return resp
}

func FromVisitors(visitors []*models.Visitor) []VisitorResponse {
	out := make([]VisitorResponse, 0, len(visitors))
	for _, v := range visitors {
		out = append(out, FromVisitor(v))
	}
	return out
}

const timestampLayout = "2006-01-02T15:04:05Z07:00"
