package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/peasenet/homelink/internal/device"
)

// handleSyncDevices projects an owner's full device list into the smarthome
// SYNC schema consumed by the voice-assistant platform.
//
// GET /api/v1/users/{ownerID}/fulfillment/sync
func (s *Server) handleSyncDevices(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")

	devices, err := s.devices.ListForUser(r.Context(), ownerID)
	if err != nil {
		if errors.Is(err, device.ErrRefreshFailed) || errors.Is(err, device.ErrExpandFailed) {
			writeUpstreamError(w, "a device did not answer during list refresh")
			return
		}
		s.logger.Error("fulfillment sync failed", "owner_id", ownerID, "error", err)
		writeInternalError(w, "failed to build sync payload")
		return
	}

	entries := make([]device.SyncDevice, 0, len(devices))
	for _, d := range devices {
		entries = append(entries, device.ProjectSync(d))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"agentUserId": ownerID,
		"devices":     entries,
	})
}
