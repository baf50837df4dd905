// FilePath: internal/models/models.device.go
package models

// TelemetryMessage is the decoded payload of one inbound device message.
// Fields are pointers so a missing key is distinguishable from a zero value.
type TelemetryMessage struct {
	Temp          *float64 `json:"temp"`
	Humi          *float64 `json:"humi"`
	Concentration *float64 `json:"concentration"`
	SSID          *string  `json:"ssid"`
	Password      *string  `json:"password"`
	DeviceID      *string  `json:"deviceID"`
	RelayState    *bool    `json:"relayState"`
	TempThreshold *float64 `json:"tempThreshold"`
	HumiThreshold *float64 `json:"humiThreshold"`
	CO2Threshold  *float64 `json:"co2Threshold"`
}

// MissingField returns the name of the first absent required field, or ""
// when the message is complete. All payload keys are required.
func (m *TelemetryMessage) MissingField() string {
	switch {
	case m.Temp == nil:
		return "temp"
	case m.Humi == nil:
		return "humi"
	case m.Concentration == nil:
		return "concentration"
	case m.SSID == nil:
		return "ssid"
	case m.Password == nil:
		return "password"
	case m.DeviceID == nil:
		return "deviceID"
	case m.RelayState == nil:
		return "relayState"
	case m.TempThreshold == nil:
		return "tempThreshold"
	case m.HumiThreshold == nil:
		return "humiThreshold"
	case m.CO2Threshold == nil:
		return "co2Threshold"
	}
	return ""
}

// Snapshot builds the device state snapshot carried by a complete message.
// Callers must have checked MissingField first.
func (m *TelemetryMessage) Snapshot() DeviceConfigSnapshot {
	return DeviceConfigSnapshot{
		SSID:          *m.SSID,
		Password:      *m.Password,
		DeviceID:      *m.DeviceID,
		RelayState:    *m.RelayState,
		TempThreshold: *m.TempThreshold,
		HumiThreshold: *m.HumiThreshold,
		CO2Threshold:  *m.CO2Threshold,
		Temperature:   *m.Temp,
		Humidity:      *m.Humi,
		CO2:           *m.Concentration,
	}
}

// DeviceConfigSnapshot is the most recently reported device configuration
// and readings. It is overwritten whole on every inbound message.
type DeviceConfigSnapshot struct {
	SSID          string  `json:"ssid"`
	Password      string  `json:"password"`
	DeviceID      string  `json:"deviceID"`
	RelayState    bool    `json:"relayState"`
	TempThreshold float64 `json:"tempThreshold"`
	HumiThreshold float64 `json:"humiThreshold"`
	CO2Threshold  float64 `json:"co2Threshold"`
	Temperature   float64 `json:"temperature"`
	Humidity      float64 `json:"humidity"`
	CO2           float64 `json:"co2"`
}

// ConfigDeltaFields is the allow-list of keys an operator-submitted
// configuration update may forward to the device. Anything else is dropped.
var ConfigDeltaFields = []string{
	"co2Threshold",
	"humiThreshold",
	"tempThreshold",
	"relayState",
	"manualRelayControl",
}
