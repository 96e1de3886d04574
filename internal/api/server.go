// Package api provides the HTTP REST API and WebSocket server for HomeLink.
//
// It exposes device resolution, user device lists, smarthome fulfillment
// projection, and real-time state updates to clients.
//
// The server follows the same lifecycle pattern as other infrastructure
// components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// Thread Safety: All methods are safe for concurrent use from multiple goroutines.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/peasenet/homelink/internal/device"
	"github.com/peasenet/homelink/internal/infrastructure/config"
	"github.com/peasenet/homelink/internal/infrastructure/logging"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config   config.APIConfig
	WS       config.WebSocketConfig
	Security config.SecurityConfig
	Logger   *logging.Logger
	Devices  *device.Service
	History  device.StateHistoryRepository // optional: enables /history endpoints
	Version  string
}

// Server is the HTTP API server for the bridge.
//
// It manages the HTTP listener, routes, middleware, and WebSocket hub.
// The server is created with New() and started with Start().
type Server struct {
	cfg     config.APIConfig
	wsCfg   config.WebSocketConfig
	secCfg  config.SecurityConfig
	logger  *logging.Logger
	devices *device.Service
	history device.StateHistoryRepository
	version string

	server  *http.Server
	hub     *Hub
	tickets *ticketStore
	cancel  context.CancelFunc
}

// New creates a new API server with the given dependencies.
//
// The server is not started until Start() is called.
//
// Parameters:
//   - deps: Required dependencies (config, logger, device service)
//
// Returns:
//   - *Server: Configured server ready to start
//   - error: If required dependencies are missing
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Devices == nil {
		return nil, fmt.Errorf("device service is required")
	}

	return &Server{
		cfg:     deps.Config,
		wsCfg:   deps.WS,
		secCfg:  deps.Security,
		logger:  deps.Logger,
		devices: deps.Devices,
		history: deps.History,
		version: deps.Version,
		tickets: newTicketStore(),
	}, nil
}

// Start begins listening for HTTP connections.
//
// It sets up the router, starts the WebSocket hub, and launches the HTTP
// listener in a background goroutine. The server can be stopped with Close().
//
// Parameters:
//   - ctx: Context for background goroutine cancellation
//
// Returns:
//   - error: If the server fails to start
func (s *Server) Start(ctx context.Context) error {
	var srvCtx context.Context
	srvCtx, s.cancel = context.WithCancel(ctx)

	s.hub = NewHub(s.wsCfg, s.logger)
	go s.hub.Run(srvCtx)

	// Periodic ticket cleanup to prevent memory leaks
	go s.tickets.cleanLoop(srvCtx)

	router := s.buildRouter()

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           router,
		ReadTimeout:       time.Duration(s.cfg.Timeouts.Read) * time.Second,
		ReadHeaderTimeout: time.Duration(s.cfg.Timeouts.Read) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.Timeouts.Write) * time.Second,
		IdleTimeout:       time.Duration(s.cfg.Timeouts.Idle) * time.Second,
	}

	go func() {
		var err error
		if s.cfg.TLS.Enabled {
			s.logger.Info("API server starting with TLS",
				"address", s.server.Addr,
				"cert", s.cfg.TLS.CertFile,
			)
			err = s.server.ListenAndServeTLS(s.cfg.TLS.CertFile, s.cfg.TLS.KeyFile)
		} else {
			s.logger.Info("API server starting", "address", s.server.Addr)
			err = s.server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	return nil
}

// Close gracefully shuts down the API server.
//
// It waits up to 10 seconds for in-flight requests to complete,
// then forcefully closes remaining connections.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	if s.cancel != nil {
		s.cancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}

// HealthCheck verifies the API server is running and responsive.
func (s *Server) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("api health check: %w", ctx.Err())
	default:
	}

	if s.server == nil {
		return fmt.Errorf("api server not started")
	}
	return nil
}
