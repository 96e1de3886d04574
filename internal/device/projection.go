package device

// Google smarthome schema projection. Everything here is a pure function
// of Kind and Hardware; no I/O, no store access.

// SyncName is the name block of a SYNC entry.
type SyncName struct {
	DefaultNames []string `json:"defaultNames"`
	Name         string   `json:"name"`
	Nicknames    []string `json:"nicknames"`
}

// SyncDeviceInfo identifies the physical device in a SYNC entry.
type SyncDeviceInfo struct {
	Manufacturer string `json:"manufacturer"`
	Model        string `json:"model"`
	HwVersion    string `json:"hwVersion"`
	SwVersion    string `json:"swVersion"`
}

// SyncDevice is one device entry in a smarthome SYNC response.
type SyncDevice struct {
	ID              string         `json:"id"`
	Type            string         `json:"type"`
	Traits          []string       `json:"traits"`
	Name            SyncName       `json:"name"`
	Attributes      map[string]any `json:"attributes"`
	DeviceInfo      SyncDeviceInfo `json:"deviceInfo"`
	WillReportState bool           `json:"willReportState"`
}

// ProjectSync maps a resolved device to its SYNC entry.
func ProjectSync(d Device) SyncDevice {
	name := d.Display()
	nicknames := d.Aliases
	if len(nicknames) == 0 {
		nicknames = []string{name}
	}

	return SyncDevice{
		ID:     d.ID,
		Type:   googleType(d.Kind),
		Traits: googleTraits(d.Kind),
		Name: SyncName{
			DefaultNames: []string{name},
			Name:         name,
			Nicknames:    nicknames,
		},
		Attributes: googleAttributes(d.Kind),
		DeviceInfo: SyncDeviceInfo{
			Manufacturer: "GTECH",
			Model:        hardwareModel(d.Hardware),
			HwVersion:    "1.0",
			SwVersion:    d.FirmwareVersion,
		},
		WillReportState: true,
	}
}

// ProjectState maps a resolved device to its QUERY state payload.
//
// Structured live status is passed through with an online flag; scalar
// status becomes the on/off flag.
func ProjectState(d Device) map[string]any {
	state := map[string]any{"online": true}

	switch status := d.LiveStatus.(type) {
	case map[string]any:
		for k, v := range status {
			state[k] = v
		}
	case bool:
		state["on"] = status
	default:
		state["on"] = false
	}
	return state
}

// googleType returns the smarthome device type tag for a kind.
func googleType(k Kind) string {
	switch k {
	case KindLight:
		return "action.devices.types.LIGHT"
	case KindGarage:
		return "action.devices.types.GARAGE"
	case KindSprinklerZone:
		return "action.devices.types.SPRINKLER"
	case KindRouter:
		return "action.devices.types.ROUTER"
	case KindTV:
		return "action.devices.types.TV"
	case KindBattery:
		return "action.devices.types.SENSOR"
	default:
		// Switches and sprinkler hosts both project as switches.
		return "action.devices.types.SWITCH"
	}
}

// googleTraits returns the trait list for a kind. OnOff is the default.
func googleTraits(k Kind) []string {
	switch k {
	case KindGarage:
		return []string{"action.devices.traits.OpenClose"}
	case KindRouter:
		return []string{"action.devices.traits.Reboot"}
	case KindTV:
		return []string{
			"action.devices.traits.OnOff",
			"action.devices.traits.Volume",
		}
	case KindBattery:
		return []string{"action.devices.traits.EnergyStorage"}
	default:
		return []string{"action.devices.traits.OnOff"}
	}
}

// googleAttributes returns the attributes object for a kind.
func googleAttributes(k Kind) map[string]any {
	switch k {
	case KindGarage:
		return map[string]any{
			"discreteOnlyOpenClose": true,
			"openDirection":         []string{"UP", "DOWN"},
		}
	case KindTV:
		return map[string]any{
			"commandOnlyOnOff":        false,
			"queryOnlyOnOff":          false,
			"volumeMaxLevel":          100,
			"volumeCanMuteAndUnmute":  true,
			"levelStepSize":           1,
			"commandOnlyVolume":       false,
			"volumeDefaultPercentage": 10,
		}
	case KindBattery:
		return map[string]any{
			"queryOnlyEnergyStorage": true,
			"isRechargeable":         true,
		}
	default:
		return map[string]any{
			"commandOnlyOnOff": false,
			"queryOnlyOnOff":   false,
		}
	}
}

// hardwareModel returns the human-readable model name for a hardware family.
func hardwareModel(h Hardware) string {
	switch h {
	case HardwareArduino:
		return "Arduino"
	case HardwarePi:
		return "Raspberry Pi"
	case HardwareLG:
		return "LG"
	default:
		return "Other"
	}
}
