package influxdb

import "errors"

// Domain-specific errors for InfluxDB operations.
var (
	// ErrConnectionFailed is returned when the initial connection or health probe fails.
	ErrConnectionFailed = errors.New("influxdb: connection failed")

	// ErrHealthCheckFailed is returned when a health check fails on an established client.
	ErrHealthCheckFailed = errors.New("influxdb: health check failed")
)
