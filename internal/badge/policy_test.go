package badge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	now := time.Date(2026, 8, 29, 15, 30, 0, 0, time.UTC)
	today := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	t.Run("temporal boundary", func(t *testing.T) {
		cases := []struct {
			name      string
			visitDate time.Time
			want      bool
		}{
			{"today is valid", today, true},
			{"tomorrow is valid", today.AddDate(0, 0, 1), true},
			{"yesterday is invalid", today.AddDate(0, 0, -1), false},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				record := visitorFixture(7, "Alice Koné", "Acme", tc.visitDate)
				e := Evaluate(record, Candidate{Name: "Alice Koné"}, now)
				assert.Equal(t, tc.want, e.DateOK)
			})
		}
	})

	t.Run("time of day on the visit date never matters", func(t *testing.T) {
		record := visitorFixture(7, "Alice", "Acme", time.Date(2026, 8, 29, 23, 59, 0, 0, time.UTC))
		earlyClock := time.Date(2026, 8, 29, 0, 1, 0, 0, time.UTC)
		assert.True(t, Evaluate(record, Candidate{}, earlyClock).DateOK)
	})

	t.Run("missing date is vacuously valid", func(t *testing.T) {
		record := visitorFixture(7, "Alice", "Acme", time.Time{})
		assert.True(t, Evaluate(record, Candidate{}, now).DateOK)
	})

	t.Run("name rule is bidirectional and vacuous when absent", func(t *testing.T) {
		record := visitorFixture(7, "John Smith", "Acme", today)
		assert.True(t, Evaluate(record, Candidate{Name: "John"}, now).NameOK)
		assert.True(t, Evaluate(record, Candidate{Name: "John Smith and party"}, now).NameOK)
		assert.False(t, Evaluate(record, Candidate{Name: "Mary"}, now).NameOK)
		assert.True(t, Evaluate(record, Candidate{}, now).NameOK)
	})

	t.Run("company rule is exact equality and vacuous when absent", func(t *testing.T) {
		record := visitorFixture(7, "Alice", "Acme", today)
		assert.True(t, Evaluate(record, Candidate{Company: "Acme"}, now).CompanyOK)
		assert.False(t, Evaluate(record, Candidate{Company: "acme"}, now).CompanyOK)
		assert.True(t, Evaluate(record, Candidate{}, now).CompanyOK)
	})

	t.Run("evaluation is idempotent for a fixed clock", func(t *testing.T) {
		record := visitorFixture(7, "Alice", "Acme", today)
		cand := Candidate{Name: "Alice", Company: "Acme"}
		first := Evaluate(record, cand, now)
		second := Evaluate(record, cand, now)
		assert.Equal(t, first, second)
	})
}

func TestValidationPolicy(t *testing.T) {
	t.Run("default policy ignores the company outcome", func(t *testing.T) {
		e := Evaluation{NameOK: true, CompanyOK: false, DateOK: true}
		assert.True(t, DefaultPolicy.IsValid(e))
	})

	t.Run("strict policy requires the company match", func(t *testing.T) {
		e := Evaluation{NameOK: true, CompanyOK: false, DateOK: true}
		assert.False(t, StrictPolicy.IsValid(e))
		e.CompanyOK = true
		assert.True(t, StrictPolicy.IsValid(e))
	})

	t.Run("both policies require name and date", func(t *testing.T) {
		for _, p := range []ValidationPolicy{DefaultPolicy, StrictPolicy} {
			assert.False(t, p.IsValid(Evaluation{NameOK: false, CompanyOK: true, DateOK: true}), p.Name)
			assert.False(t, p.IsValid(Evaluation{NameOK: true, CompanyOK: true, DateOK: false}), p.Name)
		}
	})
}
