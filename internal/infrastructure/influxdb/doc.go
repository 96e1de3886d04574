// Package influxdb records poll telemetry in InfluxDB v2.
//
// Each device refresh writes one point to the device_poll measurement
// (reachability, change flag, duration). The bridge runs fine without
// InfluxDB; the client is only wired when influxdb.enabled is set.
package influxdb
