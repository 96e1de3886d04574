package influxdb

import (
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
)

// Measurement names.
const (
	measurementPoll = "device_poll"
)

// WritePollResult records the outcome of a single device live-state refresh.
//
// Tags identify the device and its kind so dashboards can break down
// reachability per device class. Fields carry the poll outcome.
//
// Parameters:
//   - deviceID: The refreshed device's id
//   - kind: Device kind string (e.g. "sprinkler_zone", "tv")
//   - reachable: Whether the control plane answered
//   - changed: Whether the refresh changed the stored record
//   - duration: How long the refresh took
func (c *Client) WritePollResult(deviceID, kind string, reachable, changed bool, duration time.Duration) {
	point := influxdb2.NewPointWithMeasurement(measurementPoll).
		AddTag("device_id", deviceID).
		AddTag("kind", kind).
		AddField("reachable", reachable).
		AddField("changed", changed).
		AddField("duration_ms", duration.Milliseconds()).
		SetTime(time.Now())

	// Non-blocking; batching and retries happen in the background.
	c.writeAPI.WritePoint(point)
}
