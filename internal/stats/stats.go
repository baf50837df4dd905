// FilePath: internal/stats/stats.go
package stats

import (
	"github.com/envsense/envhub/internal/models"
)

type accumulator struct {
	count    int
	sumTemp  float64
	minTemp  float64
	maxTemp  float64
	sumHumi  float64
	minHumi  float64
	maxHumi  float64
	sumCO2   float64
	minCO2   float64
	maxCO2   float64
}

// ComputeAll groups readings by calendar date and computes min, max and the
// plain arithmetic mean of temperature, humidity and CO2 per group. It is a
// pure function: it carries no cache and must be re-run after new readings
// arrive. Input order is irrelevant.
func ComputeAll(readings []models.Reading) map[string]models.DailyStats {
	groups := make(map[string]*accumulator)

	for _, reading := range readings {
		acc, ok := groups[reading.Date]
		if !ok {
			acc = &accumulator{
				minTemp: reading.Temperature,
				maxTemp: reading.Temperature,
				minHumi: reading.Humidity,
				maxHumi: reading.Humidity,
				minCO2:  reading.CO2,
				maxCO2:  reading.CO2,
			}
			groups[reading.Date] = acc
		}

		acc.count++
		acc.sumTemp += reading.Temperature
		acc.sumHumi += reading.Humidity
		acc.sumCO2 += reading.CO2
		acc.minTemp = min(acc.minTemp, reading.Temperature)
		acc.maxTemp = max(acc.maxTemp, reading.Temperature)
		acc.minHumi = min(acc.minHumi, reading.Humidity)
		acc.maxHumi = max(acc.maxHumi, reading.Humidity)
		acc.minCO2 = min(acc.minCO2, reading.CO2)
		acc.maxCO2 = max(acc.maxCO2, reading.CO2)
	}

	result := make(map[string]models.DailyStats, len(groups))
	for date, acc := range groups {
		if acc.count == 0 {
			// Unreachable: groups only exist for seen readings. Guarded so a
			// future caller cannot divide by zero.
			continue
		}
		n := float64(acc.count)
		result[date] = models.DailyStats{
			MinTemperature: acc.minTemp,
			MaxTemperature: acc.maxTemp,
			AvgTemperature: acc.sumTemp / n,
			MinHumidity:    acc.minHumi,
			MaxHumidity:    acc.maxHumi,
			AvgHumidity:    acc.sumHumi / n,
			MinCO2:         acc.minCO2,
			MaxCO2:         acc.maxCO2,
			AvgCO2:         acc.sumCO2 / n,
		}
	}
	return result
}
