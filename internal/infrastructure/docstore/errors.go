package docstore

import "errors"

// Domain-specific errors for document store operations.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("docstore: document not found")

	// ErrUnavailable is returned when the store cannot be reached or
	// responds with an unexpected status on a read.
	ErrUnavailable = errors.New("docstore: store unavailable")

	// ErrInvalidDocument is returned when a document body cannot be decoded.
	ErrInvalidDocument = errors.New("docstore: invalid document")

	// ErrWriteFailed is returned when a set or remove is rejected.
	ErrWriteFailed = errors.New("docstore: write failed")
)
