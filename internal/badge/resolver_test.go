package badge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatepass/internal/visitor/models"
	id "gatepass/pkg/domain"
)

func TestResolve(t *testing.T) {
	tomorrow := time.Now().AddDate(0, 0, 1)
	records := []*models.Visitor{
		visitorFixture(1, "John Smith", "Acme", tomorrow),
		visitorFixture(2, "Mary Jones", "Globex", tomorrow),
		visitorFixture(3, "Johnny Cash", "Initech", tomorrow),
	}

	t.Run("exact ID match wins and ignores name and company", func(t *testing.T) {
		m := Resolve(Candidate{ID: 2, Name: "Completely Wrong", Company: "Nope"}, records)
		require.Equal(t, MatchFound, m.Status)
		assert.Equal(t, id.VisitorID(2), m.Record.ID)
	})

	t.Run("ID miss never falls through to fuzzy matching", func(t *testing.T) {
		m := Resolve(Candidate{ID: 99, Name: "Mary Jones"}, records)
		assert.Equal(t, MatchNone, m.Status)
		assert.Nil(t, m.Record)
	})

	t.Run("substring match is bidirectional", func(t *testing.T) {
		// Candidate contained in record name.
		m := Resolve(Candidate{Name: "Mary"}, records)
		require.Equal(t, MatchFound, m.Status)
		assert.Equal(t, id.VisitorID(2), m.Record.ID)

		// Record name contained in candidate.
		m = Resolve(Candidate{Name: "Mary Jones (guest)"}, records)
		require.Equal(t, MatchFound, m.Status)
		assert.Equal(t, id.VisitorID(2), m.Record.ID)
	})

	t.Run("matching is case-insensitive", func(t *testing.T) {
		m := Resolve(Candidate{Name: "mary jones"}, records)
		require.Equal(t, MatchFound, m.Status)
		assert.Equal(t, id.VisitorID(2), m.Record.ID)
	})

	t.Run("overlapping names surface ambiguity instead of store order", func(t *testing.T) {
		m := Resolve(Candidate{Name: "John"}, records)
		require.Equal(t, MatchAmbiguous, m.Status)
		assert.Nil(t, m.Record)
		assert.ElementsMatch(t, []id.VisitorID{1, 3}, m.CandidateIDs)
	})

	t.Run("no match is MatchNone", func(t *testing.T) {
		m := Resolve(Candidate{Name: "Zorro"}, records)
		assert.Equal(t, MatchNone, m.Status)
	})

	t.Run("empty candidate matches nothing", func(t *testing.T) {
		m := Resolve(Candidate{}, records)
		assert.Equal(t, MatchNone, m.Status)
	})

	t.Run("empty record set matches nothing", func(t *testing.T) {
		m := Resolve(Candidate{Name: "John"}, nil)
		assert.Equal(t, MatchNone, m.Status)
	})
}
