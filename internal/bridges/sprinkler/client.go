package sprinkler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// controlPort is the TCP port sprinkler hosts listen on.
const controlPort = 3030

// maxResponseSize caps control-plane response bodies (1MB).
const maxResponseSize = 1 << 20

// Client talks to sprinkler host control planes over HTTP.
//
// A single Client serves every sprinkler host; the host address is passed
// per call because each multi-zone host has its own IP.
type Client struct {
	http *http.Client
	port int
}

// New creates a sprinkler control-plane client.
//
// Parameters:
//   - timeout: Per-request timeout for status and command calls
func New(timeout time.Duration) *Client {
	return &Client{
		http: &http.Client{Timeout: timeout},
		port: controlPort,
	}
}

// baseURL builds the control-plane URL for a host.
func (c *Client) baseURL(host string) string {
	return fmt.Sprintf("http://%s:%d", host, c.port)
}

// SystemState reports whether the host's watering schedule is enabled.
//
// An empty response body means the host answered but has no state yet;
// that reads as disabled rather than an error.
func (c *Client) SystemState(ctx context.Context, host string) (bool, error) {
	body, err := c.get(ctx, c.baseURL(host)+"/system/state")
	if err != nil {
		return false, err
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return false, nil
	}

	var state systemState
	if err := json.Unmarshal(body, &state); err != nil {
		return false, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	return state.SystemEnabled, nil
}

// SetSystem enables or disables the host's watering schedule.
func (c *Client) SetSystem(ctx context.Context, host string, enabled bool) error {
	payload, err := json.Marshal(systemState{SystemEnabled: enabled})
	if err != nil {
		return fmt.Errorf("sprinkler: marshal system state: %w", err)
	}
	return c.put(ctx, c.baseURL(host)+"/system/state", payload)
}

// Zones fetches the full zone list from a host.
func (c *Client) Zones(ctx context.Context, host string) ([]Zone, error) {
	body, err := c.get(ctx, c.baseURL(host)+"/zone/info")
	if err != nil {
		return nil, err
	}

	var zones []Zone
	if err := json.Unmarshal(body, &zones); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	return zones, nil
}

// SetZone turns a single zone on or off by its host-scoped zone index.
func (c *Client) SetZone(ctx context.Context, host string, zoneIndex int, on bool) error {
	payload, err := json.Marshal(zoneToggle{ID: zoneIndex, State: on})
	if err != nil {
		return fmt.Errorf("sprinkler: marshal zone toggle: %w", err)
	}
	return c.put(ctx, c.baseURL(host)+"/zone", payload)
}

// get performs an HTTP GET and returns the response body.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("sprinkler: build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHostUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d from %s", ErrInvalidResponse, resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrHostUnreachable, err)
	}
	return body, nil
}

// put performs an HTTP PUT with a JSON body.
func (c *Client) put(ctx context.Context, url string, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("sprinkler: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrHostUnreachable, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d from %s", ErrCommandRejected, resp.StatusCode, url)
	}
	return nil
}
