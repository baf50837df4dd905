// FilePath: internal/hubservice/hubservice.deviceconfig.go
package hubservice

import (
	"context"
	"encoding/json"

	"github.com/envsense/envhub/internal/errors"
	"github.com/envsense/envhub/internal/models"
	"github.com/envsense/envhub/internal/stats"
	nuts "github.com/vaudience/go-nuts"
)

// Notification sentences shown when the latest reported value strictly
// exceeds today's mean. Wording and order are fixed; the dashboard displays
// the text verbatim.
const (
	noticeTempAboveAverage = "Current temperature is higher than today's average.\n"
	noticeHumiAboveAverage = "Current humidity is higher than today's average.\n"
	noticeCO2AboveAverage  = "Current CO2 concentration is higher than today's average."
)

// CurrentConfig is the device snapshot enriched with the advisory
// notification text.
type CurrentConfig struct {
	models.DeviceConfigSnapshot
	Notification string `json:"notification"`
}

// CurrentConfig returns the last reported device state and an anomaly note
// comparing its readings against today's averages. Absent data (no snapshot
// yet, or no readings today) yields an empty notification, never an error.
func (s *HubService) CurrentConfig(ctx context.Context) (*CurrentConfig, error) {
	snapshot, ok := s.Device.Snapshot()
	if !ok {
		return &CurrentConfig{}, nil
	}

	result := &CurrentConfig{DeviceConfigSnapshot: snapshot}

	readings, err := s.Readings.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	today := s.now().Format(models.DateLayout)
	daily, ok := stats.ComputeAll(readings)[today]
	if !ok {
		return result, nil
	}

	if snapshot.Temperature > daily.AvgTemperature {
		result.Notification += noticeTempAboveAverage
	}
	if snapshot.Humidity > daily.AvgHumidity {
		result.Notification += noticeHumiAboveAverage
	}
	if snapshot.CO2 > daily.AvgCO2 {
		result.Notification += noticeCO2AboveAverage
	}
	return result, nil
}

// PublishConfigDelta filters an operator-submitted update down to the device
// allow-list and forwards it on the update topic. Unknown keys are dropped
// silently. Success means the broker accepted the publish; the device's
// applied state is not confirmed.
func (s *HubService) PublishConfigDelta(delta map[string]any) (map[string]any, error) {
	filtered := make(map[string]any)
	for _, key := range models.ConfigDeltaFields {
		if value, ok := delta[key]; ok {
			filtered[key] = value
		}
	}

	payload, err := json.Marshal(filtered)
	if err != nil {
		return nil, errors.NewInternalError("failed to encode configuration delta", err)
	}
	if err := s.publisher.Publish(s.updateTopic, payload); err != nil {
		return nil, errors.NewTransportError("failed to forward configuration to device", err)
	}

	nuts.L.Infof("[ConfigService] Forwarded configuration delta with %d field(s) to %s", len(filtered), s.updateTopic)
	return filtered, nil
}
