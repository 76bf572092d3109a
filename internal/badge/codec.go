// Package badge implements badge issuance, decoding, identity resolution and
// validity evaluation for visitor badges.
//
// Two incompatible token formats circulate in the field: the structured JSON
// payload current badges embed in their QR code, and a colon-delimited legacy
// string older printed badges carry. Both must keep scanning, so the decoder
// sniffs the format instead of assuming a schema. Formats never merge: a
// token is decoded under exactly one format or rejected.
package badge

import (
	"encoding/json"
	"strings"

	"gatepass/internal/visitor/models"
	id "gatepass/pkg/domain"
)

// legacyPrefix marks the colon-delimited token format of pre-rollout badges.
const legacyPrefix = "VISITOR:"

// Format tags which branch the decoder took.
type Format string

const (
	FormatStructured Format = "structured"
	FormatLegacy     Format = "legacy"
	FormatInvalid    Format = "invalid"
)

// Candidate is the not-yet-verified identity descriptor decoded from a token.
// A zero ID means the token carried no ID (legacy name-only badges).
type Candidate struct {
	ID      id.VisitorID
	Name    string
	Company string
	Date    string // raw "2006-01-02" string as carried by the token
}

// DecodedToken is the tagged result of decoding: exactly one of the format
// branches applies, and Candidate is meaningful only when Format is not
// FormatInvalid. Downstream code switches on Format rather than probing
// fields defensively.
type DecodedToken struct {
	Format    Format
	Candidate Candidate
	Reason    string // set when Format is FormatInvalid
}

type structuredPayload struct {
	ID      int64  `json:"id,omitempty"`
	Name    string `json:"name,omitempty"`
	Company string `json:"company,omitempty"`
	Date    string `json:"date,omitempty"`
}

// Encode serializes a visitor record into the structured token format.
// Deterministic for identical input; carries no signature and no expiry.
func Encode(v *models.Visitor) (string, error) {
	payload := structuredPayload{
		ID:      int64(v.ID),
		Name:    v.Name,
		Company: v.Company,
	}
	if !v.VisitDate.IsZero() {
		payload.Date = v.VisitDate.Format("2006-01-02")
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// Decode sniffs the token format and produces a candidate descriptor.
//
// Attempted in order:
//  1. structured JSON payload — accepted when it yields an identity
//     reference (ID or name)
//  2. legacy "VISITOR:<anything>:<name>" string — the final segment is the
//     name-only candidate
//
// Anything else is FormatInvalid.
func Decode(raw string) DecodedToken {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return invalid("empty token")
	}

	var payload structuredPayload
	if err := json.Unmarshal([]byte(raw), &payload); err == nil {
		if payload.ID <= 0 && strings.TrimSpace(payload.Name) == "" {
			return invalid("structured payload carries no identity reference")
		}
		cand := Candidate{
			Name:    strings.TrimSpace(payload.Name),
			Company: strings.TrimSpace(payload.Company),
			Date:    strings.TrimSpace(payload.Date),
		}
		if payload.ID > 0 {
			cand.ID = id.VisitorID(payload.ID)
		}
		return DecodedToken{Format: FormatStructured, Candidate: cand}
	}

	if strings.HasPrefix(raw, legacyPrefix) {
		segments := strings.Split(raw, ":")
		if len(segments) < 2 {
			return invalid("legacy token has too few segments")
		}
		name := strings.TrimSpace(segments[len(segments)-1])
		if name == "" {
			return invalid("legacy token carries no name")
		}
		return DecodedToken{Format: FormatLegacy, Candidate: Candidate{Name: name}}
	}

	return invalid("unrecognized token format")
}

func invalid(reason string) DecodedToken {
	return DecodedToken{Format: FormatInvalid, Reason: reason}
}
