package device

import (
	"context"
	"fmt"
	"strconv"

	"github.com/peasenet/homelink/internal/bridges/sprinkler"
)

// ExpandHost synthesizes one virtual device per zone of a multi-zone host.
//
// Only valid for sprinkler hosts; callers gate this on a successful
// liveness probe, so a failing zone query is a hard failure rather than a
// degraded result. Output preserves the host's reported zone order.
func (s *Service) ExpandHost(ctx context.Context, host Device) ([]Device, error) {
	if host.Kind != KindSprinklerHost {
		return nil, fmt.Errorf("%w: %s is %s", ErrNotHost, host.ID, host.Kind)
	}

	queryCtx, cancel := context.WithTimeout(ctx, s.cfg.StatusTimeout)
	defer cancel()

	zones, err := s.sprinklers.Zones(queryCtx, host.NetworkAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: host %s: %w", ErrExpandFailed, host.ID, err)
	}

	devices := make([]Device, 0, len(zones))
	for _, z := range zones {
		devices = append(devices, synthesizeZone(host, z))
	}
	return devices, nil
}

// LookupZone resolves one zone of a host by composite-id components.
//
// The host is resolved only to obtain its network address; its own zone
// expansion is not triggered (a host id never classifies as a zone id, so
// this cannot recurse). Returns the default sentinel when the host cannot
// be resolved or no zone carries the requested index.
func (s *Service) LookupZone(ctx context.Context, hostID string, zoneIndex int) (Device, error) {
	host, err := s.Resolve(ctx, hostID)
	if err != nil {
		return Default(), err
	}
	if host.IsDefault() || host.Kind != KindSprinklerHost {
		return Default(), nil
	}

	queryCtx, cancel := context.WithTimeout(ctx, s.cfg.StatusTimeout)
	defer cancel()

	zones, err := s.sprinklers.Zones(queryCtx, host.NetworkAddress)
	if err != nil {
		s.logger.Debug("zone lookup query failed", "host_id", hostID, "error", err)
		return Default(), nil
	}

	for _, z := range zones {
		if z.Index == zoneIndex {
			return synthesizeZone(host, z), nil
		}
	}
	return Default(), nil
}

// synthesizeZone derives the virtual device for one zone of a host.
//
// The composite id concatenates host id and zone index; the network
// address is copied from the host so commands can reach the controller.
func synthesizeZone(host Device, z sprinkler.Zone) Device {
	return Device{
		ID:              host.ID + "-" + strconv.Itoa(z.Index),
		NetworkAddress:  host.NetworkAddress,
		Kind:            KindSprinklerZone,
		Hardware:        HardwarePi,
		FirmwareVersion: strconv.Itoa(z.Index),
		OwnerID:         host.OwnerID,
		DisplayName:     z.Name,
		Aliases: []string{
			z.Name,
			fmt.Sprintf("Zone %d", z.Index+1),
		},
		LiveStatus: map[string]any{
			"on":    z.On,
			"id":    z.Index,
			"index": z.Position,
		},
	}
}
