// Package device implements the resolution and aggregation engine at the
// heart of the bridge.
//
// A device id is either stored directly in the document store or encodes a
// zone of a multi-zone sprinkler host ("{host_id}-{zone_index}"). Resolution
// classifies the id, loads or synthesizes the record, refreshes its live
// status from the device's control plane, and writes the refreshed record
// back. Aggregation expands a user's flat id list into the full device list,
// materializing one virtual device per sprinkler zone.
//
// Zone devices are never persisted. They are recomputed from the host's
// live zone list on every pass, so they cannot go stale.
package device
