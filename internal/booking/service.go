package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vehicle-booking/internal/models"
)

// Repository is the narrow persistence surface the service depends on. The
// Postgres implementation lives in internal/database; tests use an in-memory
// fake.
type Repository interface {
	InsertBooking(ctx context.Context, booking *models.Booking) error
	FindBookingByID(ctx context.Context, id int) (*models.Booking, error)
	ListBookingsDescending(ctx context.Context) ([]models.Booking, error)
}

// Service implements the booking lifecycle: validated creation, listing, and
// confirmation reads with derived pricing.
type Service struct {
	repo      Repository
	validator *BookingValidator
	now       func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:      repo,
		validator: NewBookingValidator(),
		now:       time.Now,
	}
}

// ListBookings returns every booking, most recently created first.
func (s *Service) ListBookings(ctx context.Context) ([]models.Booking, error) {
	bookings, err := s.repo.ListBookingsDescending(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing bookings: %w", err)
	}
	return bookings, nil
}

// NewBookingTemplate returns a blank booking for the entry form.
func (s *Service) NewBookingTemplate() *models.Booking {
	return &models.Booking{}
}

// CreateBooking validates the submission, stamps the booking date, and
// persists the record. It returns the storage-assigned id. Validation
// failures come back as ValidationErrors and never touch the repository.
func (s *Service) CreateBooking(ctx context.Context, req *models.BookingRequest) (int, error) {
	pickup, ret, err := s.validator.Validate(req)
	if err != nil {
		return 0, err
	}

	b := &models.Booking{
		FullName:      req.FullName,
		VehicleType:   req.VehicleType,
		PickupDate:    pickup,
		ReturnDate:    ret,
		ContactNumber: req.ContactNumber,
		BookingDate:   s.now(),
	}

	if err := s.repo.InsertBooking(ctx, b); err != nil {
		return 0, fmt.Errorf("saving booking: %w", err)
	}

	return b.ID, nil
}

// GetBookingWithPricing fetches a booking and fills in the derived
// PricePerDay and TotalCost. Pricing is recomputed on every read, so rate
// table changes apply to historical bookings too.
func (s *Service) GetBookingWithPricing(ctx context.Context, id int) (*models.Booking, error) {
	b, err := s.repo.FindBookingByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetching booking %d: %w", id, err)
	}

	b.PricePerDay = PricePerDay(b.VehicleType)
	b.TotalCost = TotalCost(b.VehicleType, b.PickupDate, b.ReturnDate)
	return b, nil
}
