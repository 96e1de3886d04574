package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for the HomeLink bridge.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Bridge    BridgeConfig    `yaml:"bridge"`
	Docstore  DocstoreConfig  `yaml:"docstore"`
	Database  DatabaseConfig  `yaml:"database"`
	MQTT      MQTTConfig      `yaml:"mqtt"`
	InfluxDB  InfluxDBConfig  `yaml:"influxdb"`
	API       APIConfig       `yaml:"api"`
	WebSocket WebSocketConfig `yaml:"websocket"`
	Poll      PollConfig      `yaml:"poll"`
	Security  SecurityConfig  `yaml:"security"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// BridgeConfig identifies this bridge instance.
type BridgeConfig struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Timezone string `yaml:"timezone"`
}

// DocstoreConfig contains connection settings for the remote document store
// that holds durable device records and per-user device lists.
type DocstoreConfig struct {
	BaseURL string `yaml:"base_url"`
	Token   string `yaml:"token"`
	Timeout int    `yaml:"timeout"`
}

// DatabaseConfig contains SQLite settings for the local state-history log.
type DatabaseConfig struct {
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// MQTTConfig contains MQTT broker connection settings.
type MQTTConfig struct {
	Enabled bool             `yaml:"enabled"`
	Broker  MQTTBrokerConfig `yaml:"broker"`
	Auth    MQTTAuthConfig   `yaml:"auth"`
	QoS     int              `yaml:"qos"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// InfluxDBConfig contains InfluxDB connection settings for poll telemetry.
type InfluxDBConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	Org           string `yaml:"org"`
	Bucket        string `yaml:"bucket"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"`
}

// APIConfig contains HTTP API server settings.
type APIConfig struct {
	Host     string           `yaml:"host"`
	Port     int              `yaml:"port"`
	TLS      TLSConfig        `yaml:"tls"`
	Timeouts APITimeoutConfig `yaml:"timeouts"`
	CORS     CORSConfig       `yaml:"cors"`
}

// TLSConfig contains TLS certificate settings.
type TLSConfig struct {
	Enabled  bool   `yaml:"enabled"`
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// APITimeoutConfig contains HTTP timeout settings in seconds.
type APITimeoutConfig struct {
	Read  int `yaml:"read"`
	Write int `yaml:"write"`
	Idle  int `yaml:"idle"`
}

// CORSConfig contains Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers"`
}

// WebSocketConfig contains WebSocket server settings.
type WebSocketConfig struct {
	Path           string `yaml:"path"`
	MaxMessageSize int    `yaml:"max_message_size"`
	PingInterval   int    `yaml:"ping_interval"`
	PongTimeout    int    `yaml:"pong_timeout"`
}

// PollConfig controls how device control planes are polled for live state.
//
// ProbeTimeout gates the reachability check before a multi-zone host is
// queried; StatusTimeout bounds each status request so one dead device
// cannot stall a whole list refresh. Both are in seconds.
type PollConfig struct {
	ProbeTimeout  int `yaml:"probe_timeout"`
	StatusTimeout int `yaml:"status_timeout"`
	Concurrency   int `yaml:"concurrency"`
}

// SecurityConfig contains security settings.
type SecurityConfig struct {
	JWT   JWTConfig   `yaml:"jwt"`
	Admin AdminConfig `yaml:"admin"`
}

// JWTConfig contains JWT token settings.
type JWTConfig struct {
	Secret         string `yaml:"secret"`
	AccessTokenTTL int    `yaml:"access_token_ttl"`
}

// AdminConfig contains the credentials accepted by the login endpoint.
type AdminConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: HOMELINK_SECTION_KEY
// For example: HOMELINK_DOCSTORE_BASE_URL, HOMELINK_API_PORT
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If file cannot be read, parsed, or validation fails
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Bridge: BridgeConfig{
			ID:       "bridge-001",
			Name:     "HomeLink",
			Timezone: "UTC",
		},
		Docstore: DocstoreConfig{
			Timeout: 10,
		},
		Database: DatabaseConfig{
			Path:        "./data/homelink.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "homelink-bridge",
			},
			QoS: 1,
		},
		API: APIConfig{
			Host: "0.0.0.0",
			Port: 8080,
			Timeouts: APITimeoutConfig{
				Read:  30,
				Write: 30,
				Idle:  60,
			},
		},
		WebSocket: WebSocketConfig{
			Path:           "/ws",
			MaxMessageSize: 8192,
			PingInterval:   30,
			PongTimeout:    10,
		},
		Poll: PollConfig{
			ProbeTimeout:  1,
			StatusTimeout: 3,
			Concurrency:   4,
		},
		Security: SecurityConfig{
			JWT: JWTConfig{
				AccessTokenTTL: 3600,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies HOMELINK_* environment variables on top of the
// loaded configuration. Only settings that operators commonly need to
// override at deploy time are exposed.
func applyEnvOverrides(cfg *Config) {
	setString(&cfg.Bridge.ID, "HOMELINK_BRIDGE_ID")
	setString(&cfg.Docstore.BaseURL, "HOMELINK_DOCSTORE_BASE_URL")
	setString(&cfg.Docstore.Token, "HOMELINK_DOCSTORE_TOKEN")
	setString(&cfg.Database.Path, "HOMELINK_DATABASE_PATH")
	setString(&cfg.MQTT.Broker.Host, "HOMELINK_MQTT_HOST")
	setInt(&cfg.MQTT.Broker.Port, "HOMELINK_MQTT_PORT")
	setString(&cfg.MQTT.Auth.Username, "HOMELINK_MQTT_USERNAME")
	setString(&cfg.MQTT.Auth.Password, "HOMELINK_MQTT_PASSWORD")
	setString(&cfg.InfluxDB.URL, "HOMELINK_INFLUXDB_URL")
	setString(&cfg.InfluxDB.Token, "HOMELINK_INFLUXDB_TOKEN")
	setString(&cfg.API.Host, "HOMELINK_API_HOST")
	setInt(&cfg.API.Port, "HOMELINK_API_PORT")
	setString(&cfg.Security.JWT.Secret, "HOMELINK_JWT_SECRET")
	setString(&cfg.Security.Admin.Username, "HOMELINK_ADMIN_USERNAME")
	setString(&cfg.Security.Admin.Password, "HOMELINK_ADMIN_PASSWORD")
	setString(&cfg.Logging.Level, "HOMELINK_LOG_LEVEL")
}

// setString overrides dst with the named environment variable if it is set.
func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// setInt overrides dst with the named environment variable if it parses as an integer.
func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

// Validate checks the configuration for missing or inconsistent values.
func (c *Config) Validate() error {
	if c.Docstore.BaseURL == "" {
		return fmt.Errorf("docstore.base_url is required")
	}
	if !strings.HasPrefix(c.Docstore.BaseURL, "http://") && !strings.HasPrefix(c.Docstore.BaseURL, "https://") {
		return fmt.Errorf("docstore.base_url must be an http(s) URL")
	}
	if c.API.Port <= 0 || c.API.Port > 65535 {
		return fmt.Errorf("api.port must be between 1 and 65535")
	}
	if c.API.TLS.Enabled && (c.API.TLS.CertFile == "" || c.API.TLS.KeyFile == "") {
		return fmt.Errorf("api.tls requires cert_file and key_file when enabled")
	}
	if c.MQTT.Enabled && c.MQTT.Broker.Host == "" {
		return fmt.Errorf("mqtt.broker.host is required when mqtt is enabled")
	}
	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		return fmt.Errorf("mqtt.qos must be 0, 1, or 2")
	}
	if c.InfluxDB.Enabled {
		if c.InfluxDB.URL == "" {
			return fmt.Errorf("influxdb.url is required when influxdb is enabled")
		}
		if c.InfluxDB.Org == "" || c.InfluxDB.Bucket == "" {
			return fmt.Errorf("influxdb.org and influxdb.bucket are required when influxdb is enabled")
		}
	}
	if c.Poll.ProbeTimeout <= 0 {
		return fmt.Errorf("poll.probe_timeout must be positive")
	}
	if c.Poll.StatusTimeout <= 0 {
		return fmt.Errorf("poll.status_timeout must be positive")
	}
	if c.Poll.Concurrency <= 0 {
		return fmt.Errorf("poll.concurrency must be positive")
	}
	return nil
}
