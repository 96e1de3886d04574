package device

import (
	"reflect"
)

// Kind identifies a device's refresh and projection behavior.
type Kind string

// Device kinds. The set is closed; refresh dispatch switches over it
// exhaustively.
const (
	KindSwitch        Kind = "switch"
	KindLight         Kind = "light"
	KindGarage        Kind = "garage"
	KindSprinklerHost Kind = "sprinkler_host"
	KindSprinklerZone Kind = "sprinkler_zone"
	KindTV            Kind = "tv"
	KindBattery       Kind = "battery"
	KindRouter        Kind = "router"
)

// Valid reports whether the kind is a known value.
func (k Kind) Valid() bool {
	switch k {
	case KindSwitch, KindLight, KindGarage, KindSprinklerHost,
		KindSprinklerZone, KindTV, KindBattery, KindRouter:
		return true
	}
	return false
}

// Hardware identifies the physical controller family. Used only for schema
// projection and reachability decisions, never for refresh dispatch.
type Hardware string

// Hardware families.
const (
	HardwareArduino Hardware = "arduino"
	HardwarePi      Hardware = "pi"
	HardwareLG      Hardware = "lg"
	HardwareOther   Hardware = "other"
)

// Valid reports whether the hardware family is a known value.
func (h Hardware) Valid() bool {
	switch h {
	case HardwareArduino, HardwarePi, HardwareLG, HardwareOther:
		return true
	}
	return false
}

// Device is the canonical record for one controllable entity.
//
// LiveStatus is open-ended; its shape depends on Kind. A boolean false is
// the sentinel for "never polled" and for unreachable hosts, distinct from
// any structured polled state.
type Device struct {
	ID              string   `json:"id"`
	NetworkAddress  string   `json:"network_address,omitempty"`
	Kind            Kind     `json:"kind"`
	Hardware        Hardware `json:"hardware_kind"`
	LiveStatus      any      `json:"live_status"`
	FirmwareVersion string   `json:"firmware_version"`
	OwnerID         string   `json:"owner_id"`
	DisplayName     string   `json:"display_name"`
	Aliases         []string `json:"aliases,omitempty"`
}

// Default returns the sentinel record that stands in for "not found".
//
// Callers compare against it with Device.IsDefault; the sentinel is a
// return value, never an error.
func Default() Device {
	return Device{
		Kind:            KindSwitch,
		Hardware:        HardwareOther,
		LiveStatus:      false,
		FirmwareVersion: "0",
	}
}

// Equal reports full structural equality, including LiveStatus contents.
func (d Device) Equal(other Device) bool {
	return reflect.DeepEqual(d, other)
}

// IsDefault reports whether the record equals the not-found sentinel.
func (d Device) IsDefault() bool {
	return d.Equal(Default())
}

// Display returns the record's display name, falling back to its id when
// no name is set.
func (d Device) Display() string {
	if d.DisplayName == "" {
		return d.ID
	}
	return d.DisplayName
}
