package badge

import (
	"time"

	"gatepass/internal/visitor/models"
)

// Evaluation holds the three rule outcomes for one badge check. The final
// pass/fail composition belongs to ValidationPolicy, not here, so a product
// decision on which rules count can flip without touching the evaluator.
type Evaluation struct {
	NameOK    bool `json:"name_ok"`
	CompanyOK bool `json:"company_ok"`
	DateOK    bool `json:"date_ok"`
}

// Evaluate checks a resolved record against the original candidate. Pure:
// the clock is an argument, never read from the environment.
//
// Rule A (name): bidirectional substring match; vacuously true when the
// candidate supplies no name.
// Rule B (company): exact equality; vacuously true when absent.
// Rule C (date): the record's visit date, time-of-day stripped, must be
// today or later; a record without a date is vacuously valid.
func Evaluate(record *models.Visitor, cand Candidate, now time.Time) Evaluation {
	e := Evaluation{NameOK: true, CompanyOK: true, DateOK: true}

	if cand.Name != "" {
		e.NameOK = namesOverlap(record.Name, cand.Name)
	}
	if cand.Company != "" {
		e.CompanyOK = record.Company == cand.Company
	}
	if !record.VisitDate.IsZero() {
		today := truncateToDay(now)
		visit := truncateToDay(record.VisitDate)
		e.DateOK = !visit.Before(today)
	}
	return e
}

// ValidationPolicy names a composition of rule outcomes into the final
// verdict. The legacy validation path never AND-ed the company check into
// the result; DefaultPolicy preserves that, StrictPolicy includes it.
type ValidationPolicy struct {
	Name                string
	RequireCompanyMatch bool
}

var (
	DefaultPolicy = ValidationPolicy{Name: "legacy"}
	StrictPolicy  = ValidationPolicy{Name: "strict", RequireCompanyMatch: true}
)

// IsValid composes the rule outcomes under this policy.
func (p ValidationPolicy) IsValid(e Evaluation) bool {
	valid := e.NameOK && e.DateOK
	if p.RequireCompanyMatch {
		valid = valid && e.CompanyOK
	}
	return valid
}

// truncateToDay normalizes to a calendar date in UTC so records and clocks
// in different zones compare by date, not instant.
func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
