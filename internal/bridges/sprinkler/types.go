package sprinkler

// Zone is one irrigation zone as reported by a sprinkler host's control
// plane. JSON tags match the host's wire format exactly.
type Zone struct {
	Index    int    `json:"id"`
	Name     string `json:"name"`
	GPIO     int    `json:"gpio"`
	Duration int64  `json:"time"`
	Enabled  bool   `json:"enabled"`
	AutoOff  bool   `json:"auto_off"`
	Position int    `json:"system_order"`
	On       bool   `json:"state"`
}

// systemState is the /system/state payload in both directions.
type systemState struct {
	SystemEnabled bool `json:"system_enabled"`
}

// zoneToggle is the PUT /zone request body.
type zoneToggle struct {
	ID    int  `json:"id"`
	State bool `json:"state"`
}
