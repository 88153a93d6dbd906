package booking

import "time"

// Daily rates per vehicle type. Types not listed here fall back to
// defaultDailyRate; unknown types are accepted at creation time.
var dailyRates = map[string]float64{
	"Hatchback": 400,
	"Sedan":     500,
	"SUV":       800,
	"Van":       1200,
}

const defaultDailyRate = 500

// PricePerDay returns the daily rate for a vehicle type.
func PricePerDay(vehicleType string) float64 {
	if rate, ok := dailyRates[vehicleType]; ok {
		return rate
	}
	return defaultDailyRate
}

// RentalDays counts calendar days between pickup and return inclusive of both
// endpoints, so a same-day rental is one day. Time-of-day is ignored.
func RentalDays(pickup, ret time.Time) int {
	pickup = truncateToDate(pickup)
	ret = truncateToDate(ret)
	return int(ret.Sub(pickup).Hours()/24) + 1
}

// TotalCost computes the rental cost for a vehicle type over the given span.
func TotalCost(vehicleType string, pickup, ret time.Time) float64 {
	return PricePerDay(vehicleType) * float64(RentalDays(pickup, ret))
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
