// Package ups reads battery telemetry from UPS monitoring status pages.
package ups
