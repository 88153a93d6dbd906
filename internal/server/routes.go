package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"vehicle-booking/internal/booking"
	"vehicle-booking/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// RegisterRoutes sets up the router with all endpoints.
func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(rateLimitMiddleware) // Apply rate limiting middleware
	r.Get("/health", s.healthHandler)

	// Endpoints for bookings
	r.Get("/bookings", s.ListBookingsHandler)
	r.Get("/bookings/new", s.NewBookingFormHandler)
	r.Post("/bookings", s.CreateBookingHandler)
	r.Get("/bookings/{id}/confirmation", s.BookingConfirmationHandler)

	return r
}

// healthHandler provides health information.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	jsonResp, _ := json.Marshal(s.db.Health())
	w.Header().Set("Content-Type", "application/json")
	w.Write(jsonResp)
}

// ListBookingsHandler returns all bookings, most recent first.
func (s *Server) ListBookingsHandler(w http.ResponseWriter, r *http.Request) {
	bookings, err := s.bookings.ListBookings(r.Context())
	if err != nil {
		logrus.Errorf("Error retrieving bookings: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(bookings)
}

// NewBookingFormHandler returns a blank booking for the entry form.
func (s *Server) NewBookingFormHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.bookings.NewBookingTemplate())
}

// CreateBookingHandler handles booking creation. Validation failures come
// back with the submitted values so the client can redisplay the form.
func (s *Server) CreateBookingHandler(w http.ResponseWriter, r *http.Request) {
	var req models.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logrus.Errorf("Invalid booking data: %v", err)
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	id, err := s.bookings.CreateBooking(r.Context(), &req)
	if err != nil {
		var fieldErrs booking.ValidationErrors
		if errors.As(err, &fieldErrs) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]any{
				"field_errors": fieldErrs,
				"submitted":    req,
			})
			return
		}

		logrus.Errorf("Error creating booking: %v", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{
			"error":     fmt.Sprintf("An error occurred while saving booking: %v", err),
			"submitted": req,
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]int{"id": id})
}

// BookingConfirmationHandler returns a booking with its derived pricing.
func (s *Server) BookingConfirmationHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid booking id", http.StatusBadRequest)
		return
	}

	b, err := s.bookings.GetBookingWithPricing(r.Context(), id)
	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			http.Error(w, "Booking not found", http.StatusNotFound)
			return
		}
		logrus.Errorf("Error retrieving booking %d: %v", id, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"booking": b,
		"message": fmt.Sprintf("Thank you, %s! Your booking for %s is confirmed.", b.FullName, b.VehicleType),
	})
}

var (
	visitors = make(map[string]*rate.Limiter)
	mu       sync.Mutex
)

func getVisitor(ip string) *rate.Limiter {
	mu.Lock()
	defer mu.Unlock()

	limiter, exists := visitors[ip]
	if !exists {
		limiter = rate.NewLimiter(1, 3) // 1 request per second, burst of 3
		visitors[ip] = limiter
	}
	return limiter
}

func rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.RemoteAddr
		limiter := getVisitor(ip)

		if !limiter.Allow() {
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
