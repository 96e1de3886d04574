package mqtt

// Topic structure:
//
//	homelink/status              bridge online/offline (retained, LWT)
//	homelink/state/{device_id}   last refreshed device state (retained)

// topicPrefix is the root of the bridge's topic namespace.
const topicPrefix = "homelink"

// Topics builds topic strings for the bridge's namespace.
type Topics struct{}

// BridgeStatus returns the bridge status topic.
func (Topics) BridgeStatus() string {
	return topicPrefix + "/status"
}

// DeviceState returns the state announcement topic for a device.
func (Topics) DeviceState(deviceID string) string {
	return topicPrefix + "/state/" + deviceID
}
