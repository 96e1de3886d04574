package influxdb

import (
	"context"
	"fmt"
	"sync"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/peasenet/homelink/internal/infrastructure/config"
)

// healthCheckTimeout bounds the InfluxDB health probe.
const healthCheckTimeout = 5 * time.Second

// Client wraps the InfluxDB v2 client for writing poll telemetry.
//
// Writes go through the non-blocking write API: points are batched in the
// background and flushed on the configured interval, so a slow or absent
// InfluxDB never stalls the refresh path.
//
// Thread Safety:
//   - All methods are safe for concurrent use.
type Client struct {
	client   influxdb2.Client
	writeAPI api.WriteAPI
	cfg      config.InfluxDBConfig

	onError func(err error)
	errMu   sync.RWMutex

	closeOnce sync.Once
}

// Connect creates an InfluxDB client and verifies the server is reachable.
//
// Parameters:
//   - ctx: Context for the initial health probe
//   - cfg: InfluxDB configuration from config.yaml
//
// Returns:
//   - *Client: Ready client with background batching started
//   - error: If the server is unreachable or reports unhealthy
func Connect(ctx context.Context, cfg config.InfluxDBConfig) (*Client, error) {
	opts := influxdb2.DefaultOptions().
		SetBatchSize(uint(cfg.BatchSize)).
		SetFlushInterval(uint(cfg.FlushInterval * 1000))

	client := influxdb2.NewClientWithOptions(cfg.URL, cfg.Token, opts)

	probeCtx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	health, err := client.Health(probeCtx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}
	if health.Status != "pass" {
		client.Close()
		return nil, fmt.Errorf("%w: status %s", ErrConnectionFailed, health.Status)
	}

	c := &Client{
		client:   client,
		writeAPI: client.WriteAPI(cfg.Org, cfg.Bucket),
		cfg:      cfg,
	}

	// Async write errors surface on a channel; forward them to the
	// registered callback so they reach the log.
	go func() {
		for err := range c.writeAPI.Errors() {
			c.errMu.RLock()
			callback := c.onError
			c.errMu.RUnlock()
			if callback != nil {
				callback(err)
			}
		}
	}()

	return c, nil
}

// SetOnError registers a callback for asynchronous write failures.
func (c *Client) SetOnError(callback func(err error)) {
	c.errMu.Lock()
	c.onError = callback
	c.errMu.Unlock()
}

// HealthCheck verifies the InfluxDB server is reachable and healthy.
func (c *Client) HealthCheck(ctx context.Context) error {
	probeCtx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	health, err := c.client.Health(probeCtx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrHealthCheckFailed, err)
	}
	if health.Status != "pass" {
		return fmt.Errorf("%w: status %s", ErrHealthCheckFailed, health.Status)
	}
	return nil
}

// Close flushes buffered points and releases the client.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.writeAPI.Flush()
		c.client.Close()
	})
	return nil
}
