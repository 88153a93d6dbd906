package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPricePerDay(t *testing.T) {
	tests := []struct {
		vehicleType string
		want        float64
	}{
		{"Hatchback", 400},
		{"Sedan", 500},
		{"SUV", 800},
		{"Van", 1200},
		{"Truck", 500}, // unlisted type falls back to the default rate
		{"", 500},
	}

	for _, tt := range tests {
		t.Run(tt.vehicleType, func(t *testing.T) {
			assert.Equal(t, tt.want, PricePerDay(tt.vehicleType))
		})
	}
}

func TestRentalDays(t *testing.T) {
	tests := []struct {
		name   string
		pickup time.Time
		ret    time.Time
		want   int
	}{
		{
			name:   "same day counts as one day",
			pickup: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			ret:    time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			want:   1,
		},
		{
			name:   "both endpoints counted",
			pickup: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			ret:    time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC),
			want:   3,
		},
		{
			name:   "time of day ignored",
			pickup: time.Date(2024, time.January, 1, 23, 30, 0, 0, time.UTC),
			ret:    time.Date(2024, time.January, 2, 0, 15, 0, 0, time.UTC),
			want:   2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RentalDays(tt.pickup, tt.ret))
		})
	}
}

func TestTotalCost(t *testing.T) {
	pickup := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	ret := time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, float64(2400), TotalCost("SUV", pickup, ret))
	assert.Equal(t, float64(1500), TotalCost("Truck", pickup, ret))
	assert.Equal(t, float64(400), TotalCost("Hatchback", pickup, pickup))
}
