package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrScanFailed indicates the repository could not be walked at all.
	// Individual unreadable files are skipped, never escalated to this.
	ErrScanFailed = errors.New("repository scan failed")
)
