package sprinkler

import "errors"

// Domain-specific errors for sprinkler control-plane operations.
var (
	// ErrHostUnreachable is returned when the host does not answer.
	ErrHostUnreachable = errors.New("sprinkler: host unreachable")

	// ErrInvalidResponse is returned when the host answers with an
	// unexpected status or body.
	ErrInvalidResponse = errors.New("sprinkler: invalid response")

	// ErrCommandRejected is returned when the host refuses a state change.
	ErrCommandRejected = errors.New("sprinkler: command rejected")
)
