// Package mqtt provides the MQTT client used to announce device state.
//
// After every successful live-state refresh the bridge publishes the
// device's new state as a retained message on homelink/state/{device_id}.
// The client is publish-only; nothing in the bridge consumes MQTT.
package mqtt
