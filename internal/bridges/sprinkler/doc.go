// Package sprinkler is the HTTP client for multi-zone sprinkler hosts.
//
// Each host exposes a small control plane on port 3030:
//
//	GET  /system/state   schedule enabled flag
//	PUT  /system/state   enable/disable the schedule
//	GET  /zone/info      full zone list
//	PUT  /zone           toggle one zone by index
package sprinkler
