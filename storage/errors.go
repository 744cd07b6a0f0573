package storage

import "errors"

// Common storage errors.
var (
	// ErrNotFound is returned when a document record is not found.
	ErrNotFound = errors.New("document record not found")
)
