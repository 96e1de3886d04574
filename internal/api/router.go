package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Health check (no auth required)
		r.Get("/health", s.handleHealth)

		// Auth endpoints (no auth required)
		r.Post("/auth/login", s.handleLogin)

		// Prometheus metrics (no auth required for scrapers)
		r.Handle("/metrics", promhttp.Handler())

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			// WS ticket requires authentication
			r.Post("/auth/ws-ticket", s.handleWSTicket)

			// Device endpoints
			r.Route("/devices/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetDevice)
				r.Get("/state", s.handleGetDeviceState)
				r.Put("/state", s.handleSetDeviceState)
				r.Get("/history", s.handleDeviceHistory)
			})

			// Per-user device list endpoints
			r.Route("/users/{ownerID}", func(r chi.Router) {
				r.Get("/devices", s.handleListDevices)
				r.Post("/devices", s.handleAddDevice)
				r.Delete("/devices/{id}", s.handleRemoveDevice)
				r.Get("/fulfillment/sync", s.handleSyncDevices)
			})

			// WebSocket (auth via ticket, validated in handler)
			r.Get("/ws", s.handleWebSocket)
		})
	})

	return r
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
	})
}
