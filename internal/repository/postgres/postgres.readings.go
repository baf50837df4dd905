// FilePath: internal/repository/postgres/postgres.readings.go
package postgres

import (
	"context"

	"github.com/envsense/envhub/internal/database"
	"github.com/envsense/envhub/internal/errors"
	"github.com/envsense/envhub/internal/models"
)

type ReadingRepo struct {
	db database.DB
}

func NewReadingRepository(db database.DB) (*ReadingRepo, error) {
	repo := &ReadingRepo{db: db}
	err := repo.initializeSchema()
	if err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *ReadingRepo) initializeSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS readings (
			date TEXT NOT NULL,
			time TEXT NOT NULL,
			temperature DOUBLE PRECISION NOT NULL,
			humidity DOUBLE PRECISION NOT NULL,
			co2 DOUBLE PRECISION NOT NULL
		)`,
		// Matches the listing order so the full scan stays cheap
		`CREATE INDEX IF NOT EXISTS idx_readings_date_time
			ON readings(date DESC, time DESC)`,
	}

	for _, query := range queries {
		_, err := r.db.GetDB().Exec(query)
		if err != nil {
			return errors.NewDatabaseError("failed to initialize schema", err)
		}
	}
	return nil
}

func (r *ReadingRepo) Insert(ctx context.Context, reading *models.Reading) error {
	query := `
		INSERT INTO readings (date, time, temperature, humidity, co2)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.GetDB().ExecContext(ctx, query,
		reading.Date, reading.Time, reading.Temperature, reading.Humidity, reading.CO2)
	if err != nil {
		return errors.NewDatabaseError("failed to insert reading", err)
	}
	return nil
}

func (r *ReadingRepo) ListAll(ctx context.Context) ([]models.Reading, error) {
	readings := []models.Reading{}
	query := `
		SELECT date, time, temperature, humidity, co2
		FROM readings
		ORDER BY date DESC, time DESC`

	err := r.db.GetDB().SelectContext(ctx, &readings, query)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list readings", err)
	}
	return readings, nil
}

func (r *ReadingRepo) Ping(ctx context.Context) error {
	if err := r.db.GetDB().PingContext(ctx); err != nil {
		return errors.NewDatabaseError("failed to ping database", err)
	}
	return nil
}
