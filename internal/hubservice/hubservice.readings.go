// FilePath: internal/hubservice/hubservice.readings.go
package hubservice

import (
	"context"

	"github.com/envsense/envhub/internal/models"
	"github.com/envsense/envhub/internal/stats"
)

// Snapshot returns every stored reading together with per-date statistics.
// Statistics are recomputed in full from the store on every call, so the
// result always reflects exactly the rows persisted at read time.
func (s *HubService) Snapshot(ctx context.Context) (*models.ReadingsSnapshot, error) {
	readings, err := s.Readings.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	return &models.ReadingsSnapshot{
		Data:         readings,
		OverallStats: stats.ComputeAll(readings),
	}, nil
}
