package device

import (
	"context"
	"errors"
	"fmt"

	"github.com/peasenet/homelink/internal/infrastructure/docstore"
)

// Repository abstracts the durable record store.
//
// Implementations must be thread-safe. Absent records are signaled with the
// default sentinel, not an error; only transport-level store failures
// surface as errors.
type Repository interface {
	// GetDevice loads one record by id.
	//
	// Returns:
	//   - Device: The record, or the default sentinel when absent or invalid
	//   - error: Only when the store itself cannot be reached
	GetDevice(ctx context.Context, id string) (Device, error)

	// PutDevice stores a record whole, replacing any previous version.
	PutDevice(ctx context.Context, d Device) error

	// RemoveDevice deletes a record. Removing an absent record is not an error.
	RemoveDevice(ctx context.Context, id string) error

	// DeviceList returns the owner's flat device id list (may be empty).
	DeviceList(ctx context.Context, ownerID string) ([]string, error)

	// SetDeviceList replaces the owner's device id list.
	SetDeviceList(ctx context.Context, ownerID string, ids []string) error
}

// documentStore is the slice of the docstore client the repository needs.
type documentStore interface {
	Get(ctx context.Context, path string, v any) error
	Set(ctx context.Context, path string, v any) error
	Remove(ctx context.Context, path string) error
}

// DocstoreRepository implements Repository against the remote document store.
//
// Layout:
//
//	devices/{id}              one Device document per record
//	users/{owner_id}/devices  flat JSON array of device ids
type DocstoreRepository struct {
	store documentStore
}

// NewDocstoreRepository creates a repository backed by the document store.
func NewDocstoreRepository(store *docstore.Client) *DocstoreRepository {
	return &DocstoreRepository{store: store}
}

func devicePath(id string) string {
	return "devices/" + id
}

func deviceListPath(ownerID string) string {
	return "users/" + ownerID + "/devices"
}

// GetDevice loads one record, mapping absent and malformed documents to the
// default sentinel.
func (r *DocstoreRepository) GetDevice(ctx context.Context, id string) (Device, error) {
	if id == "" {
		return Default(), nil
	}

	var d Device
	err := r.store.Get(ctx, devicePath(id), &d)
	switch {
	case errors.Is(err, docstore.ErrNotFound), errors.Is(err, docstore.ErrInvalidDocument):
		return Default(), nil
	case err != nil:
		return Default(), fmt.Errorf("loading device %s: %w", id, err)
	}

	if err := d.Validate(); err != nil {
		return Default(), nil
	}
	return d, nil
}

// PutDevice stores a record whole.
func (r *DocstoreRepository) PutDevice(ctx context.Context, d Device) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if err := r.store.Set(ctx, devicePath(d.ID), d); err != nil {
		return fmt.Errorf("storing device %s: %w", d.ID, err)
	}
	return nil
}

// RemoveDevice deletes a record.
func (r *DocstoreRepository) RemoveDevice(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidDevice)
	}
	if err := r.store.Remove(ctx, devicePath(id)); err != nil {
		return fmt.Errorf("removing device %s: %w", id, err)
	}
	return nil
}

// DeviceList returns the owner's device id list. An absent list reads as empty.
func (r *DocstoreRepository) DeviceList(ctx context.Context, ownerID string) ([]string, error) {
	var ids []string
	err := r.store.Get(ctx, deviceListPath(ownerID), &ids)
	switch {
	case errors.Is(err, docstore.ErrNotFound):
		return []string{}, nil
	case err != nil:
		return nil, fmt.Errorf("loading device list for %s: %w", ownerID, err)
	}
	return ids, nil
}

// SetDeviceList replaces the owner's device id list.
func (r *DocstoreRepository) SetDeviceList(ctx context.Context, ownerID string, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	if err := r.store.Set(ctx, deviceListPath(ownerID), ids); err != nil {
		return fmt.Errorf("storing device list for %s: %w", ownerID, err)
	}
	return nil
}
