package device

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the resolution engine.
var (
	resolveTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "homelink",
		Subsystem: "device",
		Name:      "resolve_total",
		Help:      "Device resolutions by result.",
	}, []string{"result"})

	refreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "homelink",
		Subsystem: "device",
		Name:      "refresh_total",
		Help:      "Live-state refreshes by device kind and outcome.",
	}, []string{"kind", "outcome"})

	pollDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "homelink",
		Subsystem: "device",
		Name:      "poll_duration_seconds",
		Help:      "Duration of per-device live-state refreshes.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	}, []string{"kind"})

	listTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "homelink",
		Subsystem: "device",
		Name:      "list_total",
		Help:      "User device list aggregations.",
	})
)

// Resolve result label values.
const (
	resultFound    = "found"
	resultNotFound = "not_found"
	resultError    = "error"
)

// Refresh outcome label values.
const (
	outcomeOK          = "ok"
	outcomeUnchanged   = "unchanged"
	outcomeUnreachable = "unreachable"
	outcomeError       = "error"
)
