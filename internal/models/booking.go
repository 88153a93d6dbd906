package models

import "time"

// Booking is a single vehicle rental record. PricePerDay and TotalCost are
// derived from VehicleType and the date span at read time; they are never
// persisted.
type Booking struct {
	ID            int       `json:"id"`
	FullName      string    `json:"full_name"`
	VehicleType   string    `json:"vehicle_type"`
	PickupDate    time.Time `json:"pickup_date"`
	ReturnDate    time.Time `json:"return_date"`
	ContactNumber string    `json:"contact_number"`
	BookingDate   time.Time `json:"booking_date"`
	PricePerDay   float64   `json:"price_per_day,omitempty"`
	TotalCost     float64   `json:"total_cost,omitempty"`
}

// BookingRequest carries the untrusted submission for a new booking. Dates
// arrive as YYYY-MM-DD strings and are parsed after field validation.
type BookingRequest struct {
	FullName      string `json:"full_name" validate:"required,max=100"`
	VehicleType   string `json:"vehicle_type" validate:"required"`
	PickupDate    string `json:"pickup_date" validate:"required"`
	ReturnDate    string `json:"return_date" validate:"required"`
	ContactNumber string `json:"contact_number" validate:"required,contact10"`
}
