package device

import (
	"context"
	"encoding/json"
	"time"
)

// Resolve returns the current record for one device id.
//
// Zone ids are delegated to LookupZone and synthesized from the host's live
// zone list; nothing is read from or written to the store for the zone
// itself. Plain ids are loaded, refreshed per kind, and written back when
// the refresh changed live status.
//
// An absent or structurally invalid record yields the default sentinel
// with a nil error; compare with Device.IsDefault. Store unavailability
// during the read surfaces as an error. A failed write-back is logged and
// does not fail the call; the caller still gets the fresh in-memory record.
func (s *Service) Resolve(ctx context.Context, id string) (Device, error) {
	if hostID, zoneIndex, ok := ClassifyID(id); ok {
		return s.LookupZone(ctx, hostID, zoneIndex)
	}

	d, err := s.repo.GetDevice(ctx, id)
	if err != nil {
		resolveTotal.WithLabelValues(resultError).Inc()
		return Default(), err
	}
	if d.IsDefault() {
		resolveTotal.WithLabelValues(resultNotFound).Inc()
		return d, nil
	}

	start := time.Now()
	res, err := s.refresh(ctx, d)
	elapsed := time.Since(start)

	kind := string(d.Kind)
	pollDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
	if s.telemetry != nil {
		s.telemetry.WritePollResult(d.ID, kind, res.reachable, res.changed, elapsed)
	}

	if err != nil {
		refreshTotal.WithLabelValues(kind, outcomeError).Inc()
		resolveTotal.WithLabelValues(resultError).Inc()
		return Default(), err
	}

	switch {
	case res.changed:
		refreshTotal.WithLabelValues(kind, outcomeOK).Inc()
		s.persistRefreshed(ctx, res.device)
	case res.reachable:
		refreshTotal.WithLabelValues(kind, outcomeUnchanged).Inc()
	default:
		refreshTotal.WithLabelValues(kind, outcomeUnreachable).Inc()
	}

	resolveTotal.WithLabelValues(resultFound).Inc()
	return res.device, nil
}

// persistRefreshed writes a refreshed record back and fans the new state
// out to history and announcements. All failures here are logged and
// swallowed; the read path already has its answer.
func (s *Service) persistRefreshed(ctx context.Context, d Device) {
	if err := s.repo.PutDevice(ctx, d); err != nil {
		s.logger.Warn("device write-back failed",
			"device_id", d.ID,
			"kind", d.Kind,
			"error", err)
	}

	if s.history != nil {
		if err := s.history.RecordStateChange(ctx, d.ID, d.LiveStatus, StateHistorySourcePoll); err != nil {
			s.logger.Warn("state history write failed", "device_id", d.ID, "error", err)
		}
	}

	if s.announcer != nil {
		payload, err := json.Marshal(map[string]any{
			"id":          d.ID,
			"kind":        d.Kind,
			"live_status": d.LiveStatus,
		})
		if err == nil {
			if err := s.announcer.AnnounceState(d.ID, payload); err != nil {
				s.logger.Debug("state announcement failed", "device_id", d.ID, "error", err)
			}
		}
	}
}
