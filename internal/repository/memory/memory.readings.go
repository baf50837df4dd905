// FilePath: internal/repository/memory/memory.readings.go
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/envsense/envhub/internal/models"
)

// ReadingRepo is an in-memory readings store for demo/testing.
type ReadingRepo struct {
	mu       sync.RWMutex
	readings []models.Reading
}

// NewReadingRepository constructs an empty repository.
func NewReadingRepository() *ReadingRepo {
	return &ReadingRepo{}
}

func (r *ReadingRepo) Insert(ctx context.Context, reading *models.Reading) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	r.readings = append(r.readings, *reading)
	return nil
}

// ListAll returns readings ordered by date descending, then time descending,
// matching the database repository.
func (r *ReadingRepo) ListAll(ctx context.Context) ([]models.Reading, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Reading, len(r.readings))
	copy(out, r.readings)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].Time > out[j].Time
	})
	return out, nil
}

func (r *ReadingRepo) Ping(ctx context.Context) error {
	_ = ctx
	return nil
}
