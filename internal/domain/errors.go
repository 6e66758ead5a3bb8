package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Callers classify failures with errors.Is. Validation failures are
// rejected before any write; everything else aborts the enclosing
// store transaction, so no partial event state is ever observable.

var (
	// ErrValidation marks missing or invalid event parameters
	// (negative score, empty user ID, malformed date). Client error.
	ErrValidation = errors.New("invalid event parameters")

	// ErrNotFound marks operations on an entity that must already
	// exist (a catalog badge during seeding). A missing per-user
	// summary or streak row is NOT an error — those rows are created
	// implicitly on first use.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a lost race on a per-user row. The whole event
	// rolled back and is safe to retry.
	ErrConflict = errors.New("concurrent update conflict")
)
