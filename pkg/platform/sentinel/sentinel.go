package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and provider adapters
// return these (optionally wrapped) so services can translate them into coded
// domain errors without inspecting driver-specific failures.
var (
	// ErrNotFound: record does not exist in the store or cache.
	ErrNotFound = errors.New("not found")

	// ErrConflict: write lost to a concurrent update or duplicate key.
	ErrConflict = errors.New("conflict")

	// ErrInvalidState: verification request is in a terminal state and the
	// requested transition is not allowed.
	ErrInvalidState = errors.New("invalid state")

	// ErrUnavailable: backing service temporarily unreachable.
	ErrUnavailable = errors.New("unavailable")
)
