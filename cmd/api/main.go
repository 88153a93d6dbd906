package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vehicle-booking/internal/database"
	"vehicle-booking/internal/logger"
	"vehicle-booking/internal/server"

	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database and bring the schema up to date
	db := database.New()
	if err := db.Migrate(); err != nil {
		logrus.Fatalf("Error applying migrations: %v", err)
	}

	// Create a new server instance
	srv := server.NewServer(db)

	// Create a listener on the desired address
	listener, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		logrus.Fatalf("Error creating listener: %v", err)
	}

	// Channel to receive errors from the server
	errChan := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		logrus.Infof("Server started on %s...", srv.Addr)
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			// Log the error
			logrus.Errorf("Server encountered an error: %v", err)
			// Send the error to errChan
			errChan <- err
		}
	}()

	// Set up channel to receive OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Wait for an interrupt or server error
	select {
	case err := <-errChan:
		// Server encountered an unexpected error
		logrus.Fatalf("Server error: %v", err)
	case sig := <-stop:
		// Received an interrupt signal, shut down gracefully
		logrus.Infof("Received signal %s, initiating graceful shutdown", sig)

		// Create a deadline to wait for the server to shut down
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		// Attempt a graceful shutdown
		if err := srv.Shutdown(ctx); err != nil {
			logrus.Fatalf("Could not gracefully shut down the server: %v", err)
		}

		if err := db.Close(); err != nil {
			logrus.Errorf("Error closing database: %v", err)
		}

		logrus.Info("Server gracefully stopped")
	}
}
