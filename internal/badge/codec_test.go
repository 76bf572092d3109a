package badge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatepass/internal/visitor/models"
	id "gatepass/pkg/domain"
)

func visitorFixture(visitorID id.VisitorID, name, company string, visitDate time.Time) *models.Visitor {
	return &models.Visitor{
		ID:            visitorID,
		Name:          name,
		Company:       company,
		Purpose:       "meeting",
		VisitDate:     visitDate,
		VisitTime:     "10:00",
		ContactPerson: "H. Mansouri",
	}
}

func TestEncode(t *testing.T) {
	t.Run("is deterministic for identical input", func(t *testing.T) {
		v := visitorFixture(7, "Alice Koné", "Acme", time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC))
		a, err := Encode(v)
		require.NoError(t, err)
		b, err := Encode(v)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("always emits the structured form", func(t *testing.T) {
		v := visitorFixture(7, "Alice Koné", "Acme", time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC))
		token, err := Encode(v)
		require.NoError(t, err)

		decoded := Decode(token)
		assert.Equal(t, FormatStructured, decoded.Format)
		assert.Equal(t, id.VisitorID(7), decoded.Candidate.ID)
		assert.Equal(t, "Alice Koné", decoded.Candidate.Name)
		assert.Equal(t, "Acme", decoded.Candidate.Company)
		assert.Equal(t, "2026-08-29", decoded.Candidate.Date)
	})

	t.Run("omits the date when the record has none", func(t *testing.T) {
		v := visitorFixture(3, "Bob", "", time.Time{})
		token, err := Encode(v)
		require.NoError(t, err)
		assert.Empty(t, Decode(token).Candidate.Date)
	})
}

func TestDecode(t *testing.T) {
	t.Run("structured payload with id only", func(t *testing.T) {
		decoded := Decode(`{"id":42}`)
		require.Equal(t, FormatStructured, decoded.Format)
		assert.Equal(t, id.VisitorID(42), decoded.Candidate.ID)
		assert.Empty(t, decoded.Candidate.Name)
	})

	t.Run("structured payload with name only is an identity reference", func(t *testing.T) {
		decoded := Decode(`{"name":"Jane Doe"}`)
		require.Equal(t, FormatStructured, decoded.Format)
		assert.Equal(t, "Jane Doe", decoded.Candidate.Name)
		assert.Zero(t, decoded.Candidate.ID)
	})

	t.Run("valid JSON without identity reference is invalid", func(t *testing.T) {
		decoded := Decode(`{"company":"Acme","date":"2026-08-29"}`)
		assert.Equal(t, FormatInvalid, decoded.Format)
	})

	t.Run("legacy token takes the final segment as name", func(t *testing.T) {
		decoded := Decode("VISITOR:anything:Jane Doe")
		require.Equal(t, FormatLegacy, decoded.Format)
		assert.Equal(t, "Jane Doe", decoded.Candidate.Name)
		assert.Zero(t, decoded.Candidate.ID)
		assert.Empty(t, decoded.Candidate.Company)
	})

	t.Run("legacy prefix without a name is a decode error", func(t *testing.T) {
		decoded := Decode("VISITOR:")
		assert.Equal(t, FormatInvalid, decoded.Format)
	})

	t.Run("free text is a decode error", func(t *testing.T) {
		decoded := Decode("hello badge")
		assert.Equal(t, FormatInvalid, decoded.Format)
		assert.NotEmpty(t, decoded.Reason)
	})

	t.Run("empty token is a decode error", func(t *testing.T) {
		assert.Equal(t, FormatInvalid, Decode("  ").Format)
	})

	t.Run("formats never merge partial data", func(t *testing.T) {
		// A structured token naming a legacy-looking company stays structured.
		decoded := Decode(`{"id":1,"company":"VISITOR:x"}`)
		require.Equal(t, FormatStructured, decoded.Format)
		assert.Equal(t, "VISITOR:x", decoded.Candidate.Company)
	})
}
