package server

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"vehicle-booking/internal/booking"
	"vehicle-booking/internal/database"
)

type Server struct {
	port int

	db       database.Service
	bookings *booking.Service
}

// NewServer wires the booking service onto the given storage handle and
// returns a configured HTTP server.
func NewServer(db database.Service) *http.Server {
	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		port = 8080
	}
	srv := &Server{
		port:     port,
		db:       db,
		bookings: booking.NewService(db),
	}

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", srv.port),
		Handler:      srv.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
