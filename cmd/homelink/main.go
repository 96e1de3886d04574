// HomeLink Bridge - Smart Home Integration Bridge
//
// This is the main entry point for the HomeLink bridge. It connects
// household device control planes (sprinkler hosts, TVs, UPS units) to a
// remote document store and exposes device resolution, per-user device
// lists, and smarthome fulfillment over a REST/WebSocket API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/peasenet/homelink/internal/api"
	"github.com/peasenet/homelink/internal/bridges/sprinkler"
	"github.com/peasenet/homelink/internal/bridges/tv"
	"github.com/peasenet/homelink/internal/bridges/ups"
	"github.com/peasenet/homelink/internal/device"
	"github.com/peasenet/homelink/internal/infrastructure/config"
	"github.com/peasenet/homelink/internal/infrastructure/database"
	"github.com/peasenet/homelink/internal/infrastructure/docstore"
	"github.com/peasenet/homelink/internal/infrastructure/influxdb"
	"github.com/peasenet/homelink/internal/infrastructure/logging"
	"github.com/peasenet/homelink/internal/infrastructure/mqtt"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting HomeLink bridge",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open the local state-history database
	db, err := database.Open(ctx, database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	// Connect to the remote document store holding device records
	store := docstore.New(cfg.Docstore)
	if err := store.HealthCheck(ctx); err != nil {
		return fmt.Errorf("document store unreachable: %w", err)
	}
	log.Info("document store connected", "base_url", cfg.Docstore.BaseURL)

	// Per-kind control-plane clients share the status timeout
	statusTimeout := time.Duration(cfg.Poll.StatusTimeout) * time.Second
	sprinklerClient := sprinkler.New(statusTimeout)
	tvClient := tv.New(statusTimeout)
	upsClient := ups.New(statusTimeout)

	// Assemble the device engine
	repo := device.NewDocstoreRepository(store)
	devices := device.NewService(repo, sprinklerClient, tvClient, upsClient, device.Config{
		ProbeTimeout:  time.Duration(cfg.Poll.ProbeTimeout) * time.Second,
		StatusTimeout: statusTimeout,
		Concurrency:   cfg.Poll.Concurrency,
	})
	devices.SetLogger(log)
	devices.SetHistory(device.NewSQLiteStateHistoryRepository(db.DB))
	log.Info("device engine initialised",
		"probe_timeout", cfg.Poll.ProbeTimeout,
		"status_timeout", cfg.Poll.StatusTimeout,
		"concurrency", cfg.Poll.Concurrency,
	)

	// Connect to MQTT broker (optional)
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)

		mqttClient.SetOnDisconnect(func(err error) {
			log.Warn("MQTT disconnected", "error", err)
		})
	} else {
		log.Info("MQTT disabled")
	}

	// Connect to InfluxDB for poll telemetry (optional)
	var influxClient *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(ctx, cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)

		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})

		devices.SetTelemetry(influxClient)
	} else {
		log.Info("InfluxDB disabled")
	}

	// Start the API server
	apiServer, err := api.New(api.Deps{
		Config:   cfg.API,
		WS:       cfg.WebSocket,
		Security: cfg.Security,
		Logger:   log,
		Devices:  devices,
		History:  device.NewSQLiteStateHistoryRepository(db.DB),
		Version:  version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if err := apiServer.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		log.Info("stopping API server")
		if closeErr := apiServer.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()
	log.Info("API server started", "host", cfg.API.Host, "port", cfg.API.Port)

	// Fan refreshed device state out to MQTT and WebSocket subscribers
	devices.SetAnnouncer(&stateAnnouncer{mqtt: mqttClient, ws: apiServer})

	// Verify all connections are healthy
	if err := healthCheck(ctx, db, store, mqttClient, influxClient, apiServer); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	log.Info("initialisation complete, waiting for shutdown signal")

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls run in reverse order:
	// 1. API server
	// 2. InfluxDB (if enabled)
	// 3. MQTT (if enabled)
	// 4. Database

	log.Info("HomeLink bridge stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses HOMELINK_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("HOMELINK_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// healthCheck verifies all infrastructure connections are healthy.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - db: Database connection to check
//   - store: Document store client to check
//   - mqttClient: MQTT client to check (may be nil if disabled)
//   - influxClient: InfluxDB client to check (may be nil if disabled)
//   - apiServer: API server to check
//
// Returns:
//   - error: First health check failure, or nil if all healthy
func healthCheck(ctx context.Context, db *database.DB, store *docstore.Client, mqttClient *mqtt.Client, influxClient *influxdb.Client, apiServer *api.Server) error {
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if err := store.HealthCheck(ctx); err != nil {
		return fmt.Errorf("docstore: %w", err)
	}

	if mqttClient != nil {
		if err := mqttClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("mqtt: %w", err)
		}
	}

	if influxClient != nil {
		if err := influxClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("influxdb: %w", err)
		}
	}

	if err := apiServer.HealthCheck(ctx); err != nil {
		return fmt.Errorf("api: %w", err)
	}

	return nil
}

// stateAnnouncer fans device state announcements out to MQTT (retained, so
// late subscribers see the latest state) and to connected WebSocket clients.
// Either sink may be absent.
type stateAnnouncer struct {
	mqtt *mqtt.Client
	ws   *api.Server
}

// AnnounceState implements device.Announcer.
func (a *stateAnnouncer) AnnounceState(deviceID string, payload []byte) error {
	if a.mqtt != nil {
		if err := a.mqtt.PublishRetained(mqtt.Topics{}.DeviceState(deviceID), payload); err != nil {
			return err
		}
	}
	if a.ws != nil {
		return a.ws.AnnounceState(deviceID, payload)
	}
	return nil
}
