package store

import "errors"

// Common store errors. Implementations translate driver-specific
// failures into these sentinels so callers can use errors.Is without
// knowing the backend.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrSessionNotFound indicates the study session does not exist.
	ErrSessionNotFound = errors.New("study session not found")

	// ErrItemNotFound indicates the learnable item does not exist.
	ErrItemNotFound = errors.New("learnable item not found")

	// ErrDuplicate indicates a record with the same key already exists.
	ErrDuplicate = errors.New("record already exists")
)
