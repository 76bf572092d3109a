package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and channel adapters return
// these (optionally wrapped) so services can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: record does not exist in the store
// - ErrConflict: write collided with an existing record
// - ErrExpired: scan session or token has passed its TTL
// - ErrAlreadyUsed: single-consumption resource (scan session) already consumed
// - ErrUnavailable: store or transport temporarily unreachable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrExpired     = errors.New("expired")
	ErrAlreadyUsed = errors.New("already used")
	ErrUnavailable = errors.New("unavailable")
)
