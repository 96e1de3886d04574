package ups

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxResponseSize caps status response bodies (1MB).
const maxResponseSize = 1 << 20

// Domain-specific errors for UPS status operations.
var (
	// ErrUnreachable is returned when the UPS status page does not answer.
	ErrUnreachable = errors.New("ups: status page unreachable")

	// ErrInvalidResponse is returned when the page returns non-JSON.
	ErrInvalidResponse = errors.New("ups: invalid status response")
)

// Client reads battery telemetry from a UPS status page.
//
// UPS monitoring hosts serve GET /ups_status.php on port 80 with a JSON
// document of charge, load and runtime figures. The document replaces the
// device's stored state wholesale on every refresh.
type Client struct {
	http *http.Client
}

// New creates a UPS status client with the given per-request timeout.
func New(timeout time.Duration) *Client {
	return &Client{
		http: &http.Client{Timeout: timeout},
	}
}

// Status fetches the UPS status document from a host.
func (c *Client) Status(ctx context.Context, host string) (map[string]any, error) {
	url := fmt.Sprintf("http://%s/ups_status.php", host)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("ups: build request: %w", err)
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
