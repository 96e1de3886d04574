package device

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

// SQLiteStateHistoryRepository implements StateHistoryRepository on SQLite.
//
// Status snapshots are stored as JSON text in the state_history table.
type SQLiteStateHistoryRepository struct {
	db *sql.DB
}

// NewSQLiteStateHistoryRepository creates a SQLite-backed history repository.
func NewSQLiteStateHistoryRepository(db *sql.DB) *SQLiteStateHistoryRepository {
	return &SQLiteStateHistoryRepository{db: db}
}

// RecordStateChange inserts one history entry.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - deviceID: Device the change belongs to
//   - status: Live-status snapshot to persist
//   - source: Origin of the change (poll, command)
func (r *SQLiteStateHistoryRepository) RecordStateChange(ctx context.Context, deviceID string, status any, source string) error {
	if deviceID == "" {
		return fmt.Errorf("device id is required")
	}
	if source == "" {
		source = StateHistorySourcePoll
	}

	statusJSON, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("marshalling status: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		"INSERT INTO state_history (device_id, status, source) VALUES (?, ?, ?)",
		deviceID,
		string(statusJSON),
		source,
	)
	if err != nil {
		return fmt.Errorf("inserting state history: %w", err)
	}

	return nil
}

// GetHistory returns recent entries for a device, newest first.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - deviceID: Device to query
//   - limit: Maximum entries to return (default 50, max 200)
func (r *SQLiteStateHistoryRepository) GetHistory(ctx context.Context, deviceID string, limit int) ([]StateHistoryEntry, error) {
	if deviceID == "" {
		return nil, fmt.Errorf("device id is required")
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, device_id, status, source, created_at
		 FROM state_history
		 WHERE device_id = ?
		 ORDER BY created_at DESC
		 LIMIT ?`,
		deviceID,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying state history: %w", err)
	}
	defer rows.Close()

	entries := make([]StateHistoryEntry, 0, limit)
	for rows.Next() {
		var entry StateHistoryEntry
		var statusJSON string
		var createdAt string

		if err := rows.Scan(&entry.ID, &entry.DeviceID, &statusJSON, &entry.Source, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning state history: %w", err)
		}

		if err := json.Unmarshal([]byte(statusJSON), &entry.Status); err != nil {
			return nil, fmt.Errorf("unmarshalling status: %w", err)
		}

		timestamp, err := parseHistoryTimestamp(createdAt)
		if err != nil {
			return nil, err
		}
		entry.CreatedAt = timestamp

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating state history: %w", err)
	}

	return entries, nil
}

// PruneHistory deletes entries older than the given retention window.
//
// Returns the number of rows deleted.
func (r *SQLiteStateHistoryRepository) PruneHistory(ctx context.Context, olderThan time.Duration) (int64, error) {
	if olderThan <= 0 {
		return 0, fmt.Errorf("olderThan must be positive")
	}

	cutoff := time.Now().UTC().Add(-olderThan).Format(time.RFC3339)
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM state_history WHERE created_at < ?",
		cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("deleting state history: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking rows affected: %w", err)
	}

	return rowsAffected, nil
}

// parseHistoryTimestamp parses a timestamp stored by SQLite.
func parseHistoryTimestamp(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("created_at is empty")
	}

	timestamp, err := time.Parse(time.RFC3339, value)
	if err == nil {
		return timestamp, nil
	}

	fallback, fallbackErr := time.Parse("2006-01-02 15:04:05", value)
	if fallbackErr == nil {
		return fallback.UTC(), nil
	}

	return time.Time{}, fmt.Errorf("parsing created_at: %w", err)
}
