package device

import (
	"context"
	"time"
)

// State history source values.
const (
	StateHistorySourcePoll    = "poll"
	StateHistorySourceCommand = "command"
)

// StateHistoryEntry is a single recorded live-status change.
//
// Entries snapshot the full live status at the time of the change, giving
// a local audit trail even when the remote store or telemetry backend is
// unavailable.
type StateHistoryEntry struct {
	// ID is the auto-incremented primary key for the history row.
	ID int64 `json:"id"`

	// DeviceID is the device the change belongs to.
	DeviceID string `json:"device_id"`

	// Status is the live-status snapshot.
	Status any `json:"status"`

	// Source identifies how the change was observed (poll, command).
	Source string `json:"source"`

	// CreatedAt is the timestamp of the change (UTC).
	CreatedAt time.Time `json:"created_at"`
}

// StateHistoryRepository stores and retrieves live-status change history.
//
// Implementations must be thread-safe and use UTC timestamps.
type StateHistoryRepository interface {
	// RecordStateChange appends one history entry.
	RecordStateChange(ctx context.Context, deviceID string, status any, source string) error

	// GetHistory returns recent entries for a device, newest first. The
	// implementation may clamp limit.
	GetHistory(ctx context.Context, deviceID string, limit int) ([]StateHistoryEntry, error)
}
