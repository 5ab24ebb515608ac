package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDatasetUnavailable indicates the primary dataset could not be
	// loaded or parsed. This is fatal for the page that needs it and is
	// surfaced to the user, never swallowed.
	ErrDatasetUnavailable = errors.New("dataset unavailable")
)
