package mqtt

import (
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/peasenet/homelink/internal/infrastructure/config"
)

// Reconnect backoff bounds.
const (
	initialReconnectDelay = 1 * time.Second
	maxReconnectInterval  = 60 * time.Second
	keepAliveInterval     = 30 * time.Second
)

// buildClientOptions converts config into paho client options.
func buildClientOptions(cfg config.MQTTConfig) *pahomqtt.ClientOptions {
	scheme := "tcp"
	if cfg.Broker.TLS {
		scheme = "ssl"
	}
	brokerURL := fmt.Sprintf("%s://%s:%d", scheme, cfg.Broker.Host, cfg.Broker.Port)

	opts := pahomqtt.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID(cfg.Broker.ClientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(initialReconnectDelay).
		SetMaxReconnectInterval(maxReconnectInterval).
		SetKeepAlive(keepAliveInterval).
		SetCleanSession(true)

	if cfg.Auth.Username != "" {
		opts.SetUsername(cfg.Auth.Username)
		opts.SetPassword(cfg.Auth.Password)
	}

	// LWT: broker publishes offline status if the bridge dies uncleanly.
	opts.SetWill(Topics{}.BridgeStatus(), string(statusPayload(cfg.Broker.ClientID, false)), byte(cfg.QoS), true)

	return opts
}

// statusPayload builds the retained bridge status payload.
func statusPayload(clientID string, online bool) []byte {
	status := "offline"
	if online {
		status = "online"
	}
	return []byte(fmt.Sprintf(`{"client_id":%q,"status":%q,"timestamp":%q}`,
		clientID, status, time.Now().UTC().Format(time.RFC3339)))
}
