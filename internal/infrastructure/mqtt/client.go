package mqtt

import (
	"context"
	"fmt"
	"sync"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/peasenet/homelink/internal/infrastructure/config"
)

// Operation timeouts.
const (
	defaultConnectTimeout    = 10 * time.Second
	defaultPublishTimeout    = 5 * time.Second
	defaultDisconnectQuiesce = 250 // milliseconds
)

// Client wraps paho.mqtt.golang for publishing device state announcements.
//
// The bridge only publishes; it never subscribes. Refreshed device state is
// announced as retained messages so dashboards joining later still see the
// last known state of every device.
//
// Thread Safety:
//   - All methods are safe for concurrent use from multiple goroutines.
type Client struct {
	client pahomqtt.Client
	cfg    config.MQTTConfig

	connected bool
	connMu    sync.RWMutex

	onDisconnect func(err error)
	callbackMu   sync.RWMutex
}

// Connect establishes a connection to the MQTT broker.
//
// It configures a Last Will and Testament so subscribers learn when the
// bridge goes offline unexpectedly, enables auto-reconnect, and publishes
// an online status message once connected.
//
// Parameters:
//   - cfg: MQTT configuration from config.yaml
//
// Returns:
//   - *Client: Connected client ready for use
//   - error: If the initial connection fails within the timeout
func Connect(cfg config.MQTTConfig) (*Client, error) {
	opts := buildClientOptions(cfg)

	c := &Client{cfg: cfg}

	opts.SetOnConnectHandler(func(_ pahomqtt.Client) {
		c.connMu.Lock()
		c.connected = true
		c.connMu.Unlock()
		c.publishBridgeStatus(true)
	})
	opts.SetConnectionLostHandler(func(_ pahomqtt.Client, err error) {
		c.connMu.Lock()
		c.connected = false
		c.connMu.Unlock()

		c.callbackMu.RLock()
		callback := c.onDisconnect
		c.callbackMu.RUnlock()
		if callback != nil {
			callback(err)
		}
	})

	c.client = pahomqtt.NewClient(opts)
	token := c.client.Connect()
	if !token.WaitTimeout(defaultConnectTimeout) {
		return nil, fmt.Errorf("%w: timeout after %v", ErrConnectionFailed, defaultConnectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	// The OnConnect handler runs asynchronously; set connected here so
	// IsConnected() is true immediately after a successful Connect().
	c.connMu.Lock()
	c.connected = true
	c.connMu.Unlock()

	return c, nil
}

// publishBridgeStatus publishes the bridge's online/offline status (retained).
func (c *Client) publishBridgeStatus(online bool) {
	topic := Topics{}.BridgeStatus()
	c.client.Publish(topic, byte(c.cfg.QoS), true, statusPayload(c.cfg.Broker.ClientID, online))
}

// Close gracefully disconnects from the MQTT broker.
//
// A graceful offline status is published first (distinct from the LWT,
// which only fires on an unclean disconnect).
func (c *Client) Close() error {
	if c.client == nil {
		return nil
	}

	if c.IsConnected() {
		topic := Topics{}.BridgeStatus()
		token := c.client.Publish(topic, byte(c.cfg.QoS), true, statusPayload(c.cfg.Broker.ClientID, false))
		token.WaitTimeout(defaultPublishTimeout)
	}

	c.client.Disconnect(defaultDisconnectQuiesce)

	c.connMu.Lock()
	c.connected = false
	c.connMu.Unlock()

	return nil
}

// HealthCheck verifies the MQTT connection is alive.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//
// Returns:
//   - error: nil if healthy, error describing the issue otherwise
func (c *Client) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("mqtt health check: %w", ctx.Err())
	default:
	}

	if !c.IsConnected() {
		return ErrNotConnected
	}
	return nil
}

// IsConnected returns the current connection state.
func (c *Client) IsConnected() bool {
	c.connMu.RLock()
	defer c.connMu.RUnlock()
	return c.connected && c.client.IsConnected()
}

// SetOnDisconnect sets a callback to be invoked when the connection is lost.
func (c *Client) SetOnDisconnect(callback func(err error)) {
	c.callbackMu.Lock()
	c.onDisconnect = callback
	c.callbackMu.Unlock()
}
