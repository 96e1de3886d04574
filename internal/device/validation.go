package device

import "fmt"

// Validate checks the structural integrity of a stored record.
//
// Records that fail validation are treated the same as absent records by
// the resolver: the caller gets the default sentinel instead of an error.
func (d Device) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidDevice)
	}
	if !d.Kind.Valid() {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidDevice, d.Kind)
	}
	if d.Hardware != "" && !d.Hardware.Valid() {
		return fmt.Errorf("%w: unknown hardware %q", ErrInvalidDevice, d.Hardware)
	}
	if d.Kind == KindSprinklerHost && d.NetworkAddress == "" {
		return fmt.Errorf("%w: multi-zone host without network address", ErrInvalidDevice)
	}
	return nil
}
