// FilePath: internal/devicestate/devicestate.go
package devicestate

import (
	"context"
	"sync"
	"time"

	"github.com/envsense/envhub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

const mirrorTimeout = 2 * time.Second

// Mirror persists the latest snapshot outside the process so a restarted hub
// can answer configuration reads before the device publishes again.
type Mirror interface {
	Store(ctx context.Context, snapshot models.DeviceConfigSnapshot) error
	Load(ctx context.Context) (models.DeviceConfigSnapshot, bool, error)
}

// Cache is the single-slot holder of the device's last reported state.
// There is exactly one writer (the ingest pipeline); reads come from the
// HTTP handlers. Every Set replaces the snapshot whole.
type Cache struct {
	mu       sync.RWMutex
	snapshot models.DeviceConfigSnapshot
	present  bool
	mirror   Mirror
}

// New creates an empty cache without a mirror.
func New() *Cache {
	return &Cache{}
}

// NewWithMirror creates an empty cache backed by the given mirror.
func NewWithMirror(mirror Mirror) *Cache {
	return &Cache{mirror: mirror}
}

// Set overwrites the snapshot. The mirror write is best effort: the in-memory
// slot is the authority and a mirror failure must not fail ingest.
func (c *Cache) Set(snapshot models.DeviceConfigSnapshot) {
	c.mu.Lock()
	c.snapshot = snapshot
	c.present = true
	c.mu.Unlock()

	if c.mirror == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
	defer cancel()
	if err := c.mirror.Store(ctx, snapshot); err != nil {
		nuts.L.Warnf("[DeviceState] Failed to mirror snapshot: %v", err)
	}
}

// Snapshot returns a copy of the current snapshot. The second return value is
// false until the first message has been ingested.
func (c *Cache) Snapshot() (models.DeviceConfigSnapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot, c.present
}

// Restore warm-loads the slot from the mirror. A restore never overwrites a
// snapshot already received in this process.
func (c *Cache) Restore(ctx context.Context) error {
	if c.mirror == nil {
		return nil
	}
	snapshot, found, err := c.mirror.Load(ctx)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.present {
		return nil
	}
	c.snapshot = snapshot
	c.present = true
	nuts.L.Infof("[DeviceState] Restored snapshot for device %s from mirror", snapshot.DeviceID)
	return nil
}
