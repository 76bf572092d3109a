package badge

import (
	"strings"

	"gatepass/internal/visitor/models"
	id "gatepass/pkg/domain"
)

// MatchStatus classifies the outcome of identity resolution.
type MatchStatus string

const (
	// MatchFound pairs the candidate with exactly one record.
	MatchFound MatchStatus = "found"
	// MatchNone means no record matched; callers surface this as an unknown
	// visitor, distinct from a malformed token.
	MatchNone MatchStatus = "none"
	// MatchAmbiguous means the fuzzy rule matched several records. The store
	// defines no tie-break, so resolution refuses to guess and reports all
	// candidate IDs instead.
	MatchAmbiguous MatchStatus = "ambiguous"
)

// Match is the transient pairing of a decoded candidate with zero-or-one
// visitor record. Never persisted.
type Match struct {
	Status       MatchStatus
	Record       *models.Visitor
	CandidateIDs []id.VisitorID // populated for MatchAmbiguous
}

// Resolve matches a candidate against the record set. Pure function.
//
// Policy, in priority order:
//  1. candidate carries an ID → exact ID match; name and company are ignored
//  2. name-only candidate → case-insensitive bidirectional substring match,
//     tolerating the truncated or padded names legacy badges carry
//
// Rule 1 ends resolution whether or not it finds a record: an ID-bearing
// token that misses never falls through to fuzzy matching.
func Resolve(cand Candidate, records []*models.Visitor) Match {
	if cand.ID > 0 {
		for _, r := range records {
			if r.ID == cand.ID {
				return Match{Status: MatchFound, Record: r}
			}
		}
		return Match{Status: MatchNone}
	}

	if cand.Name == "" {
		return Match{Status: MatchNone}
	}

	var hits []*models.Visitor
	for _, r := range records {
		if namesOverlap(r.Name, cand.Name) {
			hits = append(hits, r)
		}
	}

	switch len(hits) {
	case 0:
		return Match{Status: MatchNone}
	case 1:
		return Match{Status: MatchFound, Record: hits[0]}
	default:
		ids := make([]id.VisitorID, len(hits))
		for i, r := range hits {
			ids[i] = r.ID
		}
		return Match{Status: MatchAmbiguous, CandidateIDs: ids}
	}
}

// namesOverlap reports bidirectional case-insensitive substring containment:
// "John" matches "John Smith" and vice versa.
func namesOverlap(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	return strings.Contains(la, lb) || strings.Contains(lb, la)
}
