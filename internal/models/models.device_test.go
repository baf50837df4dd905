package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTelemetryMessage_MissingField(t *testing.T) {
	var msg TelemetryMessage
	require.NoError(t, json.Unmarshal([]byte(`{
		"temp": 22.5, "humi": 55, "concentration": 450,
		"ssid": "home", "password": "pw", "deviceID": "esp-1",
		"relayState": false, "tempThreshold": 30,
		"humiThreshold": 80, "co2Threshold": 1000
	}`), &msg))
	assert.Empty(t, msg.MissingField())

	var partial TelemetryMessage
	require.NoError(t, json.Unmarshal([]byte(`{"temp": 22.5}`), &partial))
	assert.Equal(t, "humi", partial.MissingField())

	var empty TelemetryMessage
	assert.Equal(t, "temp", empty.MissingField())
}

func TestTelemetryMessage_Snapshot(t *testing.T) {
	var msg TelemetryMessage
	require.NoError(t, json.Unmarshal([]byte(`{
		"temp": 22.5, "humi": 55, "concentration": 450,
		"ssid": "home", "password": "pw", "deviceID": "esp-1",
		"relayState": true, "tempThreshold": 30,
		"humiThreshold": 80, "co2Threshold": 1000
	}`), &msg))

	snapshot := msg.Snapshot()
	assert.Equal(t, "esp-1", snapshot.DeviceID)
	assert.Equal(t, 22.5, snapshot.Temperature)
	assert.Equal(t, 55.0, snapshot.Humidity)
	assert.Equal(t, 450.0, snapshot.CO2)
	assert.True(t, snapshot.RelayState)
	assert.Equal(t, 1000.0, snapshot.CO2Threshold)
}

func TestDeviceConfigSnapshot_JSONKeys(t *testing.T) {
	payload, err := json.Marshal(DeviceConfigSnapshot{DeviceID: "esp-1"})
	require.NoError(t, err)
	// The dashboard depends on these exact keys.
	for _, key := range []string{"ssid", "password", "deviceID", "relayState",
		"tempThreshold", "humiThreshold", "co2Threshold",
		"temperature", "humidity", "co2"} {
		assert.Contains(t, string(payload), `"`+key+`"`)
	}
}
