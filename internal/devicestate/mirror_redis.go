// FilePath: internal/devicestate/mirror_redis.go
package devicestate

import (
	"context"
	"encoding/json"

	"github.com/envsense/envhub/internal/models"
	"github.com/redis/go-redis/v9"
)

// RedisMirror stores the latest snapshot under a single key, overwritten on
// every ingest, no expiry.
type RedisMirror struct {
	client *redis.Client
	key    string
}

func NewRedisMirror(client *redis.Client, key string) *RedisMirror {
	return &RedisMirror{client: client, key: key}
}

func (m *RedisMirror) Store(ctx context.Context, snapshot models.DeviceConfigSnapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return m.client.Set(ctx, m.key, payload, 0).Err()
}

func (m *RedisMirror) Load(ctx context.Context) (models.DeviceConfigSnapshot, bool, error) {
	var snapshot models.DeviceConfigSnapshot

	payload, err := m.client.Get(ctx, m.key).Bytes()
	if err == redis.Nil {
		return snapshot, false, nil
	}
	if err != nil {
		return snapshot, false, err
	}
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return snapshot, false, err
	}
	return snapshot, true, nil
}
