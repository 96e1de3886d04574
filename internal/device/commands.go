package device

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// SetState sends an on/off command to a device's control plane.
//
// Zone ids toggle one zone on the owning host; sprinkler host ids enable
// or disable the host's whole watering schedule. Other kinds have no
// control-plane write path and return ErrUnsupportedCommand.
func (s *Service) SetState(ctx context.Context, id string, on bool) error {
	if hostID, zoneIndex, ok := ClassifyID(id); ok {
		return s.setZoneState(ctx, hostID, zoneIndex, on)
	}

	d, err := s.repo.GetDevice(ctx, id)
	if err != nil {
		return err
	}
	if d.IsDefault() {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	switch d.Kind {
	case KindSprinklerHost:
		cmdCtx, cancel := context.WithTimeout(ctx, s.cfg.StatusTimeout)
		defer cancel()
		if err := s.sprinklers.SetSystem(cmdCtx, d.NetworkAddress, on); err != nil {
			return fmt.Errorf("setting system state for %s: %w", id, err)
		}
		s.recordCommand(ctx, d.ID, on)
		return nil
	default:
		return fmt.Errorf("%w: %s (%s)", ErrUnsupportedCommand, id, d.Kind)
	}
}

// setZoneState toggles one zone by composite-id components.
func (s *Service) setZoneState(ctx context.Context, hostID string, zoneIndex int, on bool) error {
	host, err := s.repo.GetDevice(ctx, hostID)
	if err != nil {
		return err
	}
	if host.IsDefault() || host.Kind != KindSprinklerHost {
		return fmt.Errorf("%w: host %s", ErrNotFound, hostID)
	}

	cmdCtx, cancel := context.WithTimeout(ctx, s.cfg.StatusTimeout)
	defer cancel()
	if err := s.sprinklers.SetZone(cmdCtx, host.NetworkAddress, zoneIndex, on); err != nil {
		return fmt.Errorf("setting zone %d on host %s: %w", zoneIndex, hostID, err)
	}
	s.recordCommand(ctx, fmt.Sprintf("%s-%d", hostID, zoneIndex), on)
	return nil
}

// recordCommand logs an accepted command to the local history trail.
func (s *Service) recordCommand(ctx context.Context, id string, on bool) {
	if s.history == nil {
		return
	}
	if err := s.history.RecordStateChange(ctx, id, on, StateHistorySourceCommand); err != nil {
		s.logger.Warn("command history write failed", "device_id", id, "error", err)
	}
}

// AddDevice provisions a record for an owner: stores the record and appends
// its id to the owner's device list. A missing id is generated.
func (s *Service) AddDevice(ctx context.Context, ownerID string, d Device) (Device, error) {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	d.OwnerID = ownerID
	if d.LiveStatus == nil {
		d.LiveStatus = false
	}

	if err := d.Validate(); err != nil {
		return Default(), err
	}

	ids, err := s.repo.DeviceList(ctx, ownerID)
	if err != nil {
		return Default(), err
	}
	for _, existing := range ids {
		if existing == d.ID {
			return Default(), fmt.Errorf("%w: id %s already listed", ErrInvalidDevice, d.ID)
		}
	}

	if err := s.repo.PutDevice(ctx, d); err != nil {
		return Default(), err
	}
	if err := s.repo.SetDeviceList(ctx, ownerID, append(ids, d.ID)); err != nil {
		return Default(), err
	}

	s.logger.Info("device added", "device_id", d.ID, "owner_id", ownerID, "kind", d.Kind)
	return d, nil
}

// RemoveDevice deletes a record and drops its id from the owner's list.
//
// The stored record's owner must match; a mismatch or an absent record is
// reported as not found and nothing is deleted.
func (s *Service) RemoveDevice(ctx context.Context, ownerID, id string) error {
	d, err := s.repo.GetDevice(ctx, id)
	if err != nil {
		return err
	}
	if d.IsDefault() || d.ID != id || d.OwnerID != ownerID {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	ids, err := s.repo.DeviceList(ctx, ownerID)
	if err != nil {
		return err
	}
	kept := make([]string, 0, len(ids))
	for _, existing := range ids {
		if existing != id {
			kept = append(kept, existing)
		}
	}

	if err := s.repo.SetDeviceList(ctx, ownerID, kept); err != nil {
		return err
	}
	if err := s.repo.RemoveDevice(ctx, id); err != nil {
		return err
	}

	s.logger.Info("device removed", "device_id", id, "owner_id", ownerID)
	return nil
}
