package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"vehicle-booking/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo is an in-memory Repository for exercising the service without any
// storage dependency.
type fakeRepo struct {
	bookings    map[int]models.Booking
	nextID      int
	insertCalls int
	insertErr   error
	listErr     error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{bookings: make(map[int]models.Booking), nextID: 1}
}

func (f *fakeRepo) InsertBooking(ctx context.Context, b *models.Booking) error {
	f.insertCalls++
	if f.insertErr != nil {
		return f.insertErr
	}
	b.ID = f.nextID
	f.nextID++
	f.bookings[b.ID] = *b
	return nil
}

func (f *fakeRepo) FindBookingByID(ctx context.Context, id int) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &b, nil
}

func (f *fakeRepo) ListBookingsDescending(ctx context.Context) ([]models.Booking, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Booking
	for _, b := range f.bookings {
		out = append(out, b)
	}
	// Most recent first, matching the SQL implementation.
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].BookingDate.After(out[i].BookingDate) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func newTestService(repo Repository) *Service {
	s := NewService(repo)
	s.now = func() time.Time {
		return time.Date(2049, time.June, 15, 10, 30, 0, 0, time.UTC)
	}
	s.validator.now = s.now
	return s
}

func TestCreateBooking_Success(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)

	id, err := s.CreateBooking(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Positive(t, id)

	saved := repo.bookings[id]
	assert.Equal(t, "Jordan Mwangi", saved.FullName)
	assert.Equal(t, "SUV", saved.VehicleType)
	assert.Equal(t, "0712345678", saved.ContactNumber)
	assert.Equal(t, s.now(), saved.BookingDate)
	// Derived amounts are not part of the write path.
	assert.Zero(t, saved.PricePerDay)
	assert.Zero(t, saved.TotalCost)
}

func TestCreateBooking_AssignsDistinctIDs(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)

	first, err := s.CreateBooking(context.Background(), validRequest())
	require.NoError(t, err)
	second, err := s.CreateBooking(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestCreateBooking_ValidationFailureDoesNotWrite(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *models.BookingRequest)
	}{
		{
			name: "pickup after return",
			mutate: func(r *models.BookingRequest) {
				r.PickupDate = "2049-06-25"
				r.ReturnDate = "2049-06-22"
			},
		},
		{
			name: "pickup in the past",
			mutate: func(r *models.BookingRequest) {
				r.PickupDate = "2049-06-14"
			},
		},
		{
			name:   "bad contact number",
			mutate: func(r *models.BookingRequest) { r.ContactNumber = "12345" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo()
			s := newTestService(repo)
			req := validRequest()
			tt.mutate(req)

			id, err := s.CreateBooking(context.Background(), req)
			assert.Zero(t, id)

			var verrs ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Zero(t, repo.insertCalls, "validation failure must not touch storage")
		})
	}
}

func TestCreateBooking_StorageFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.insertErr = errors.New("connection refused")
	s := newTestService(repo)

	id, err := s.CreateBooking(context.Background(), validRequest())
	assert.Zero(t, id)
	require.Error(t, err)

	var verrs ValidationErrors
	assert.False(t, errors.As(err, &verrs), "storage failure is not a validation error")
	assert.ErrorContains(t, err, "connection refused")
}

func TestGetBookingWithPricing(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)

	id, err := s.CreateBooking(context.Background(), validRequest())
	require.NoError(t, err)

	b, err := s.GetBookingWithPricing(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, float64(800), b.PricePerDay)
	assert.Equal(t, float64(2400), b.TotalCost) // 2049-06-20 to 2049-06-22 inclusive
}

func TestGetBookingWithPricing_IdempotentRead(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)

	id, err := s.CreateBooking(context.Background(), validRequest())
	require.NoError(t, err)

	first, err := s.GetBookingWithPricing(context.Background(), id)
	require.NoError(t, err)
	second, err := s.GetBookingWithPricing(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGetBookingWithPricing_DefaultRateForUnknownType(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)

	req := validRequest()
	req.VehicleType = "Truck"
	id, err := s.CreateBooking(context.Background(), req)
	require.NoError(t, err)

	b, err := s.GetBookingWithPricing(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, float64(500), b.PricePerDay)
	assert.Equal(t, float64(1500), b.TotalCost)
}

func TestGetBookingWithPricing_NotFound(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)

	b, err := s.GetBookingWithPricing(context.Background(), 999)
	assert.Nil(t, b)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListBookings_MostRecentFirst(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo)

	times := []time.Time{
		time.Date(2049, time.June, 15, 8, 0, 0, 0, time.UTC),
		time.Date(2049, time.June, 15, 12, 0, 0, 0, time.UTC),
		time.Date(2049, time.June, 15, 10, 0, 0, 0, time.UTC),
	}
	for i, bt := range times {
		s.now = func() time.Time { return bt }
		_, err := s.CreateBooking(context.Background(), validRequest())
		require.NoError(t, err, "booking %d", i)
	}

	bookings, err := s.ListBookings(context.Background())
	require.NoError(t, err)
	require.Len(t, bookings, 3)
	assert.True(t, bookings[0].BookingDate.After(bookings[1].BookingDate))
	assert.True(t, bookings[1].BookingDate.After(bookings[2].BookingDate))
}

func TestListBookings_StorageFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.listErr = errors.New("db down")
	s := newTestService(repo)

	bookings, err := s.ListBookings(context.Background())
	assert.Nil(t, bookings)
	assert.ErrorContains(t, err, "db down")
}

func TestNewBookingTemplate(t *testing.T) {
	s := newTestService(newFakeRepo())

	b := s.NewBookingTemplate()
	require.NotNil(t, b)
	assert.Equal(t, models.Booking{}, *b)
}
