package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/peasenet/homelink/internal/infrastructure/config"
)

// maxResponseSize caps document reads to guard against a misbehaving store.
const maxResponseSize = 4 << 20 // 4MB

// Client is an HTTP client for the remote JSON document store.
//
// The store is addressed by slash-separated document paths; each document is
// read and replaced whole (last-write-wins). Paths map to URLs as
// {base_url}/{path}.json with an optional auth token query parameter.
//
// Thread Safety:
//   - All methods are safe for concurrent use from multiple goroutines.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a document store client from configuration.
//
// Parameters:
//   - cfg: Docstore configuration (base URL, auth token, request timeout)
//
// Returns:
//   - *Client: Client ready for use (no connection is established up front)
func New(cfg config.DocstoreConfig) *Client {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		token:   cfg.Token,
		http:    &http.Client{Timeout: timeout},
	}
}

// Get reads the document at path and unmarshals it into v.
//
// Returns ErrNotFound if the document does not exist (the store reports
// absent documents as HTTP 404 or a JSON null body).
func (c *Client) Get(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.documentURL(path), nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("reading document body: %w", err)
	}

	// The store reports an absent document as a literal JSON null.
	if isNull(body) {
		return ErrNotFound
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return nil
}

// Set replaces the document at path with the JSON encoding of v.
func (c *Client) Set(ctx context.Context, path string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.documentURL(path), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("%w: status %d", ErrWriteFailed, resp.StatusCode)
	}
	return nil
}

// Remove deletes the document at path. Removing an absent document is not
// an error; the store treats the delete as idempotent.
func (c *Client) Remove(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.documentURL(path), nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("%w: status %d", ErrWriteFailed, resp.StatusCode)
	}
	return nil
}

// HealthCheck verifies the document store is reachable.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//
// Returns:
//   - error: nil if reachable, error describing the issue otherwise
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.documentURL(".health"), nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("docstore health check: %w", err)
	}
	defer resp.Body.Close()

	// Any response at all means the store is up; the health document itself
	// may not exist.
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("docstore health check: status %d", resp.StatusCode)
	}
	return nil
}

// documentURL builds the full URL for a document path.
func (c *Client) documentURL(path string) string {
	u := c.baseURL + "/" + strings.Trim(path, "/") + ".json"
	if c.token != "" {
		u += "?auth=" + url.QueryEscape(c.token)
	}
	return u
}

// isNull reports whether body is a literal JSON null (ignoring whitespace).
func isNull(body []byte) bool {
	return string(bytes.TrimSpace(body)) == "null"
}
