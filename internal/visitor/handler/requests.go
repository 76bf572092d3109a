package handler

import (
	"strings"
	"time"

	"gatepass/internal/visitor/service"
	dErrors "gatepass/pkg/domain-errors"
)

const dateLayout = "2006-01-02"

// RegisterRequest is the reception-desk registration payload.
type RegisterRequest struct {
	Name          string `json:"name"`
	Company       string `json:"company"`
	Purpose       string `json:"purpose"`
	VisitDate     string `json:"visit_date"`
	VisitTime     string `json:"visit_time"`
	ContactPerson string `json:"contact_person"`
}

// ToInput parses the wire payload into service input. Field presence is
// validated by the domain constructor; only the date format is checked here.
func (r RegisterRequest) ToInput() (service.RegisterInput, error) {
	date, err := parseDate(r.VisitDate)
	if err != nil {
		return service.RegisterInput{}, err
	}
	return service.RegisterInput{
		Name:          r.Name,
		Company:       r.Company,
		Purpose:       r.Purpose,
		VisitDate:     date,
		VisitTime:     r.VisitTime,
		ContactPerson: r.ContactPerson,
	}, nil
}

// UpdateRequest carries a partial update; absent fields stay untouched.
type UpdateRequest struct {
	Company       *string `json:"company"`
	Purpose       *string `json:"purpose"`
	VisitDate     *string `json:"visit_date"`
	VisitTime     *string `json:"visit_time"`
	ContactPerson *string `json:"contact_person"`
}

func (r UpdateRequest) ToInput() (service.UpdateInput, error) {
	in := service.UpdateInput{
		Company:       r.Company,
		Purpose:       r.Purpose,
		VisitTime:     r.VisitTime,
		ContactPerson: r.ContactPerson,
	}
	if r.VisitDate != nil {
		date, err := parseDate(*r.VisitDate)
		if err != nil {
			return service.UpdateInput{}, err
		}
		in.VisitDate = &date
	}
	return in, nil
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, dErrors.New(dErrors.CodeInvalidInput, "visit_date must be YYYY-MM-DD")
	}
	return date.UTC(), nil
}
