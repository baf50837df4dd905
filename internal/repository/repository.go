// FilePath: internal/repository/repository.go
package repository

import (
	"context"

	"github.com/envsense/envhub/internal/models"
)

// ReadingRepository defines the interface for the readings store. The store
// is append-only from the hub's perspective; there is no update or delete.
type ReadingRepository interface {
	Insert(ctx context.Context, reading *models.Reading) error
	ListAll(ctx context.Context) ([]models.Reading, error)
	Ping(ctx context.Context) error
}
