package types

import "errors"

// Store lifecycle errors.
var (
	ErrStoreClosed = errors.New("store is closed")
	ErrAlreadyOpen = errors.New("store is already open")
)

// Operation errors.
var (
	// ErrNotFound is returned by get-by-id operations when no record
	// matches. Listing operations return empty slices instead.
	ErrNotFound = errors.New("not found")

	// ErrInvalidID is returned when an identifier argument is empty or
	// malformed.
	ErrInvalidID = errors.New("invalid identifier")

	// ErrDraftNotPromoted is returned by draft song mutations when the
	// draft has no promoted catalog to read song sources from.
	ErrDraftNotPromoted = errors.New("draft has no promoted catalog")
)

// Collaborator errors.
var (
	// ErrParseFailed wraps catalog source parse failures.
	ErrParseFailed = errors.New("catalog parse failed")

	// ErrFetchFailed wraps catalog download failures.
	ErrFetchFailed = errors.New("catalog fetch failed")
)
