package hubservice

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/envsense/envhub/internal/devicestate"
	"github.com/envsense/envhub/internal/errors"
	"github.com/envsense/envhub/internal/models"
	"github.com/envsense/envhub/internal/repository/memory"
)

type fakePublisher struct {
	topics   []string
	payloads [][]byte
	err      error
}

func (p *fakePublisher) Publish(topic string, payload []byte) error {
	if p.err != nil {
		return p.err
	}
	p.topics = append(p.topics, topic)
	p.payloads = append(p.payloads, payload)
	return nil
}

func newTestService(t *testing.T) (*HubService, *memory.ReadingRepo, *devicestate.Cache, *fakePublisher) {
	t.Helper()
	repo := memory.NewReadingRepository()
	cache := devicestate.New()
	publisher := &fakePublisher{}
	svc := New(repo, cache, publisher, "envhub/update")
	svc.now = func() time.Time {
		return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	}
	return svc, repo, cache, publisher
}

func seedReadings(t *testing.T, repo *memory.ReadingRepo, date string, temps ...float64) {
	t.Helper()
	for i, temp := range temps {
		err := repo.Insert(context.Background(), &models.Reading{
			Date:        date,
			Time:        time.Date(2024, 6, 1, 8, i, 0, 0, time.UTC).Format(models.TimeLayout),
			Temperature: temp,
			Humidity:    50,
			CO2:         400,
		})
		require.NoError(t, err)
	}
}

func TestNew_Validate(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	assert.NoError(t, svc.Validate())

	assert.Error(t, New(nil, devicestate.New(), &fakePublisher{}, "topic").Validate())
	assert.Error(t, New(memory.NewReadingRepository(), devicestate.New(), &fakePublisher{}, "").Validate())
}

func TestSnapshot_EmptyStore(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	snapshot, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snapshot.Data)
	assert.Empty(t, snapshot.OverallStats)
}

func TestSnapshot_ContainsReadingsAndStats(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	seedReadings(t, repo, "2024-06-01", 20, 22, 24)

	snapshot, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, snapshot.Data, 3)
	require.Contains(t, snapshot.OverallStats, "2024-06-01")
	assert.Equal(t, 22.0, snapshot.OverallStats["2024-06-01"].AvgTemperature)
	assert.Equal(t, 20.0, snapshot.OverallStats["2024-06-01"].MinTemperature)
	assert.Equal(t, 24.0, snapshot.OverallStats["2024-06-01"].MaxTemperature)
}

func TestSnapshot_Idempotent(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	seedReadings(t, repo, "2024-06-01", 20, 22)
	seedReadings(t, repo, "2024-05-31", 18)

	first, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	second, err := svc.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCurrentConfig_EmptyCache(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	seedReadings(t, repo, "2024-06-01", 20, 22, 24)

	config, err := svc.CurrentConfig(context.Background())
	require.NoError(t, err)
	assert.Empty(t, config.Notification)
	assert.Empty(t, config.DeviceID)
}

func TestCurrentConfig_NoReadingsToday(t *testing.T) {
	svc, repo, cache, _ := newTestService(t)
	seedReadings(t, repo, "2024-05-31", 20, 22, 24)
	cache.Set(models.DeviceConfigSnapshot{DeviceID: "esp-1", Temperature: 99})

	config, err := svc.CurrentConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "esp-1", config.DeviceID)
	assert.Empty(t, config.Notification)
}

func TestCurrentConfig_TemperatureAboveAverage(t *testing.T) {
	svc, repo, cache, _ := newTestService(t)
	seedReadings(t, repo, "2024-06-01", 20, 22, 24) // average 22
	cache.Set(models.DeviceConfigSnapshot{
		DeviceID:    "esp-1",
		Temperature: 25,
		Humidity:    50,  // equal to average, no notice
		CO2:         400, // equal to average, no notice
	})

	config, err := svc.CurrentConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, noticeTempAboveAverage, config.Notification)
}

func TestCurrentConfig_TemperatureBelowAverage(t *testing.T) {
	svc, repo, cache, _ := newTestService(t)
	seedReadings(t, repo, "2024-06-01", 20, 22, 24)
	cache.Set(models.DeviceConfigSnapshot{
		DeviceID:    "esp-1",
		Temperature: 20,
		Humidity:    50,
		CO2:         400,
	})

	config, err := svc.CurrentConfig(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, config.Notification, "temperature")
	assert.Empty(t, config.Notification)
}

func TestCurrentConfig_AllFieldsAboveAverage(t *testing.T) {
	svc, repo, cache, _ := newTestService(t)
	seedReadings(t, repo, "2024-06-01", 20, 22, 24)
	cache.Set(models.DeviceConfigSnapshot{
		DeviceID:    "esp-1",
		Temperature: 25,
		Humidity:    61,
		CO2:         700,
	})

	config, err := svc.CurrentConfig(context.Background())
	require.NoError(t, err)
	expected := noticeTempAboveAverage + noticeHumiAboveAverage + noticeCO2AboveAverage
	assert.Equal(t, expected, config.Notification)
}

func TestPublishConfigDelta_FiltersUnknownKeys(t *testing.T) {
	svc, _, _, publisher := newTestService(t)

	filtered, err := svc.PublishConfigDelta(map[string]any{
		"co2Threshold":   float64(800),
		"unrelatedField": "x",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"co2Threshold": float64(800)}, filtered)

	require.Len(t, publisher.payloads, 1)
	assert.Equal(t, "envhub/update", publisher.topics[0])

	var published map[string]any
	require.NoError(t, json.Unmarshal(publisher.payloads[0], &published))
	assert.Equal(t, map[string]any{"co2Threshold": float64(800)}, published)
}

func TestPublishConfigDelta_AllAllowedKeys(t *testing.T) {
	svc, _, _, publisher := newTestService(t)

	delta := map[string]any{
		"co2Threshold":       float64(800),
		"humiThreshold":      float64(70),
		"tempThreshold":      float64(28),
		"relayState":         true,
		"manualRelayControl": true,
	}
	filtered, err := svc.PublishConfigDelta(delta)
	require.NoError(t, err)
	assert.Equal(t, delta, filtered)
	require.Len(t, publisher.payloads, 1)
}

func TestPublishConfigDelta_EmptyDelta(t *testing.T) {
	svc, _, _, publisher := newTestService(t)

	filtered, err := svc.PublishConfigDelta(map[string]any{"bogus": 1})
	require.NoError(t, err)
	assert.Empty(t, filtered)

	require.Len(t, publisher.payloads, 1)
	assert.JSONEq(t, `{}`, string(publisher.payloads[0]))
}

func TestPublishConfigDelta_TransportError(t *testing.T) {
	svc, _, _, publisher := newTestService(t)
	publisher.err = errors.NewTransportError("failed to publish to envhub/update", nil)

	_, err := svc.PublishConfigDelta(map[string]any{"co2Threshold": float64(800)})
	require.Error(t, err)
	assert.True(t, errors.IsTransport(err))
}
