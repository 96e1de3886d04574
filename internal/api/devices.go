package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/peasenet/homelink/internal/device"
)

// handleGetDevice resolves one device id, refreshing its live status.
//
// GET /api/v1/devices/{id}
//
// Zone ids ("{host_id}-{zone_index}") are synthesized from the owning
// host's live zone list. An unknown id returns 404.
func (s *Server) handleGetDevice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	d, err := s.devices.Resolve(r.Context(), id)
	if err != nil {
		if errors.Is(err, device.ErrRefreshFailed) {
			writeUpstreamError(w, "device did not answer status query")
			return
		}
		s.logger.Error("device resolution failed", "device_id", id, "error", err)
		writeInternalError(w, "failed to resolve device")
		return
	}
	if d.IsDefault() {
		writeNotFound(w, "device not found")
		return
	}

	writeJSON(w, http.StatusOK, d)
}

// handleGetDeviceState returns the smarthome state payload for one device.
//
// GET /api/v1/devices/{id}/state
func (s *Server) handleGetDeviceState(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	d, err := s.devices.Resolve(r.Context(), id)
	if err != nil {
		if errors.Is(err, device.ErrRefreshFailed) {
			writeUpstreamError(w, "device did not answer status query")
			return
		}
		writeInternalError(w, "failed to resolve device")
		return
	}
	if d.IsDefault() {
		writeNotFound(w, "device not found")
		return
	}

	writeJSON(w, http.StatusOK, device.ProjectState(d))
}

// setStateRequest is the request body for PUT /devices/{id}/state.
type setStateRequest struct {
	On *bool `json:"on"`
}

// handleSetDeviceState sends an on/off command to a device's control plane.
//
// PUT /api/v1/devices/{id}/state
func (s *Server) handleSetDeviceState(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req setStateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.On == nil {
		writeBadRequest(w, "field 'on' is required")
		return
	}

	err := s.devices.SetState(r.Context(), id, *req.On)
	switch {
	case errors.Is(err, device.ErrNotFound):
		writeNotFound(w, "device not found")
	case errors.Is(err, device.ErrUnsupportedCommand):
		writeError(w, http.StatusConflict, ErrCodeConflict, "device kind does not accept commands")
	case err != nil:
		s.logger.Error("device command failed", "device_id", id, "error", err)
		writeUpstreamError(w, "device rejected command")
	default:
		writeJSON(w, http.StatusOK, map[string]any{"id": id, "on": *req.On})
	}
}

// handleDeviceHistory returns recent live-status changes for one device.
//
// GET /api/v1/devices/{id}/history?limit=N
func (s *Server) handleDeviceHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeNotFound(w, "state history is not enabled")
		return
	}

	id := chi.URLParam(r, "id")
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeBadRequest(w, "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	entries, err := s.history.GetHistory(r.Context(), id, limit)
	if err != nil {
		s.logger.Error("history query failed", "device_id", id, "error", err)
		writeInternalError(w, "failed to load history")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"device_id": id,
		"entries":   entries,
	})
}

// handleListDevices expands an owner's id list into the full device list.
//
// GET /api/v1/users/{ownerID}/devices
func (s *Server) handleListDevices(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")

	devices, err := s.devices.ListForUser(r.Context(), ownerID)
	if err != nil {
		if errors.Is(err, device.ErrRefreshFailed) || errors.Is(err, device.ErrExpandFailed) {
			writeUpstreamError(w, "a device did not answer during list refresh")
			return
		}
		s.logger.Error("device list failed", "owner_id", ownerID, "error", err)
		writeInternalError(w, "failed to list devices")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"owner_id": ownerID,
		"count":    len(devices),
		"devices":  devices,
	})
}

// handleAddDevice provisions a new device record for an owner.
//
// POST /api/v1/users/{ownerID}/devices
func (s *Server) handleAddDevice(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")

	var d device.Device
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	added, err := s.devices.AddDevice(r.Context(), ownerID, d)
	switch {
	case errors.Is(err, device.ErrInvalidDevice):
		writeBadRequest(w, err.Error())
	case err != nil:
		s.logger.Error("device add failed", "owner_id", ownerID, "error", err)
		writeInternalError(w, "failed to add device")
	default:
		writeJSON(w, http.StatusCreated, added)
	}
}

// handleRemoveDevice deletes a device record owned by the user.
//
// DELETE /api/v1/users/{ownerID}/devices/{id}
func (s *Server) handleRemoveDevice(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")
	id := chi.URLParam(r, "id")

	err := s.devices.RemoveDevice(r.Context(), ownerID, id)
	switch {
	case errors.Is(err, device.ErrNotFound):
		writeNotFound(w, "device not found for this owner")
	case err != nil:
		s.logger.Error("device removal failed", "owner_id", ownerID, "device_id", id, "error", err)
		writeInternalError(w, "failed to remove device")
	default:
		writeJSON(w, http.StatusOK, map[string]any{"removed": id})
	}
}
