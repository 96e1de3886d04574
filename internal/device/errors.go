package device

import "errors"

// Domain-specific errors for device operations.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrInvalidDevice is returned when a record fails structural validation.
	ErrInvalidDevice = errors.New("device: invalid device record")

	// ErrNotHost is returned when a zone operation targets a record that is
	// not a multi-zone host.
	ErrNotHost = errors.New("device: not a multi-zone host")

	// ErrRefreshFailed is returned when a kind with hard-failure semantics
	// (battery) cannot be refreshed.
	ErrRefreshFailed = errors.New("device: live-state refresh failed")

	// ErrExpandFailed is returned when a reachable host's zone list cannot
	// be fetched.
	ErrExpandFailed = errors.New("device: zone expansion failed")

	// ErrUnsupportedCommand is returned when a state command targets a kind
	// that has no control-plane write path.
	ErrUnsupportedCommand = errors.New("device: kind does not support commands")

	// ErrNotFound is returned by command paths that require an existing,
	// non-sentinel record.
	ErrNotFound = errors.New("device: device not found")
)
