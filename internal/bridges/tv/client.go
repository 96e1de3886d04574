package tv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// statusPort is the TCP port the TV status agent listens on.
const statusPort = 1060

// maxResponseSize caps status response bodies (1MB).
const maxResponseSize = 1 << 20

// Domain-specific errors for TV status operations.
var (
	// ErrUnreachable is returned when the TV's status agent does not answer.
	ErrUnreachable = errors.New("tv: status agent unreachable")

	// ErrInvalidResponse is returned when the agent answers with something
	// that is not a JSON object.
	ErrInvalidResponse = errors.New("tv: invalid status response")
)

// Client fetches live status from TV status agents.
//
// TVs run a small HTTP agent exposing GET /status with a JSON object of
// power, volume and mute state. The object's fields are merged into the
// device's stored state rather than replacing it, so fields the agent
// omits survive a refresh.
type Client struct {
	http *http.Client
	port int
}

// New creates a TV status client with the given per-request timeout.
func New(timeout time.Duration) *Client {
	return &Client{
		http: &http.Client{Timeout: timeout},
		port: statusPort,
	}
}

// Status fetches the TV's current status fields.
//
// Returns:
//   - map[string]any: Status fields to merge into the device state
//   - error: ErrUnreachable or ErrInvalidResponse
func (c *Client) Status(ctx context.Context, host string) (map[string]any, error) {
	url := fmt.Sprintf("http://%s:%d/status", host, c.port)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("tv: build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrInvalidResponse, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrUnreachable, err)
	}

	var status map[string]any
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	return status, nil
}
