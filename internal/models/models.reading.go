// FilePath: internal/models/models.reading.go
package models

// Layouts for the persisted date and time columns.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// Reading represents a single persisted environmental sample.
// Readings are append-only; they are never updated or deleted.
type Reading struct {
	Date        string  `json:"date" db:"date"`
	Time        string  `json:"time" db:"time"`
	Temperature float64 `json:"temperature" db:"temperature"`
	Humidity    float64 `json:"humidity" db:"humidity"`
	CO2         float64 `json:"co2" db:"co2"`
}

// DailyStats represents aggregated readings for one calendar date
type DailyStats struct {
	MinTemperature float64 `json:"min_temperature"`
	MaxTemperature float64 `json:"max_temperature"`
	AvgTemperature float64 `json:"avg_temperature"`
	MinHumidity    float64 `json:"min_humidity"`
	MaxHumidity    float64 `json:"max_humidity"`
	AvgHumidity    float64 `json:"avg_humidity"`
	MinCO2         float64 `json:"min_co2"`
	MaxCO2         float64 `json:"max_co2"`
	AvgCO2         float64 `json:"avg_co2"`
}

// ReadingsSnapshot is the full query response: every stored reading plus
// the per-date statistics derived from them.
type ReadingsSnapshot struct {
	Data         []Reading             `json:"data"`
	OverallStats map[string]DailyStats `json:"overall_stats"`
}
