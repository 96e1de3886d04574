package device

import (
	"context"
	"fmt"
)

// refreshResult carries the outcome of one live-state refresh.
type refreshResult struct {
	// device is the (possibly updated) record.
	device Device

	// changed reports whether live status differs from the stored value,
	// i.e. whether the resolver should write the record back.
	changed bool

	// reachable reports whether the device's control plane answered. Only
	// meaningful for kinds that poll.
	reachable bool
}

// refresh dispatches to the per-kind live-state strategy.
//
// Failure policy differs by kind and is deliberate:
//   - battery: any transport or parse failure is a hard failure
//   - tv: failures leave the record unchanged, no error
//   - sprinkler host: unreachable degrades live status to false, no error
//   - switch, light, garage, router, zone: no live refresh at all
func (s *Service) refresh(ctx context.Context, d Device) (refreshResult, error) {
	switch d.Kind {
	case KindBattery:
		return s.refreshBattery(ctx, d)
	case KindTV:
		return s.refreshTV(ctx, d)
	case KindSprinklerHost:
		return s.refreshHost(ctx, d)
	case KindSwitch, KindLight, KindGarage, KindRouter, KindSprinklerZone:
		return refreshResult{device: d}, nil
	default:
		// Unrecognized kinds pass validation only via the sentinel path;
		// treat them as a no-op rather than failing the read.
		return refreshResult{device: d}, nil
	}
}

// refreshBattery replaces live status wholesale with the UPS status page.
func (s *Service) refreshBattery(ctx context.Context, d Device) (refreshResult, error) {
	queryCtx, cancel := context.WithTimeout(ctx, s.cfg.StatusTimeout)
	defer cancel()

	status, err := s.upss.Status(queryCtx, d.NetworkAddress)
	if err != nil {
		return refreshResult{device: d}, fmt.Errorf("%w: battery %s: %w", ErrRefreshFailed, d.ID, err)
	}

	d.LiveStatus = status
	return refreshResult{device: d, changed: true, reachable: true}, nil
}

// refreshTV merges the TV's status fields into live status. Unreachable or
// malformed responses leave the record untouched.
func (s *Service) refreshTV(ctx context.Context, d Device) (refreshResult, error) {
	queryCtx, cancel := context.WithTimeout(ctx, s.cfg.StatusTimeout)
	defer cancel()

	status, err := s.tvs.Status(queryCtx, d.NetworkAddress)
	if err != nil {
		s.logger.Debug("tv status query failed", "device_id", d.ID, "error", err)
		return refreshResult{device: d}, nil
	}

	d.LiveStatus = mergeStatus(d.LiveStatus, status)
	return refreshResult{device: d, changed: true, reachable: true}, nil
}

// refreshHost probes the sprinkler host, then reads its schedule state.
//
// An unreachable host forces live status to the false sentinel without a
// status query; the resolver skips write-back in that case.
func (s *Service) refreshHost(ctx context.Context, d Device) (refreshResult, error) {
	if !s.prober.Probe(ctx, d.NetworkAddress) {
		d.LiveStatus = false
		return refreshResult{device: d}, nil
	}

	queryCtx, cancel := context.WithTimeout(ctx, s.cfg.StatusTimeout)
	defer cancel()

	enabled, err := s.sprinklers.SystemState(queryCtx, d.NetworkAddress)
	if err != nil {
		// Answered the probe but not the query; keep last known state.
		s.logger.Debug("host state query failed", "device_id", d.ID, "error", err)
		return refreshResult{device: d, reachable: true}, nil
	}

	d.LiveStatus = enabled
	return refreshResult{device: d, changed: true, reachable: true}, nil
}

// mergeStatus overlays fields from update onto the existing live status.
// A non-object existing status is replaced wholesale.
func mergeStatus(existing any, update map[string]any) map[string]any {
	base, ok := existing.(map[string]any)
	if !ok {
		base = make(map[string]any, len(update))
	}

	merged := make(map[string]any, len(base)+len(update))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range update {
		merged[k] = v
	}
	return merged
}
