package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"vehicle-booking/internal/booking"
	"vehicle-booking/internal/models"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/sirupsen/logrus"

	// PostgreSQL driver
	_ "github.com/jackc/pgx/v5/stdlib"

	// Migration file source
	_ "github.com/golang-migrate/migrate/v4/source/file"

	// Environment variables
	_ "github.com/joho/godotenv/autoload"
)

// Service represents a service that interacts with a database.
type Service interface {
	// Health returns a map of health status information.
	// The keys and values in the map are service-specific.
	Health() map[string]string

	// Close terminates the database connection.
	// It returns an error if the connection cannot be closed.
	Close() error

	// Migrate applies any pending schema migrations.
	Migrate() error

	InsertBooking(ctx context.Context, b *models.Booking) error
	FindBookingByID(ctx context.Context, id int) (*models.Booking, error)
	ListBookingsDescending(ctx context.Context) ([]models.Booking, error)
}

type service struct {
	db *sql.DB
}

var (
	database   = getEnv("DB_DATABASE", "vehicle_booking")
	password   = getEnv("DB_PASSWORD", "password")
	username   = getEnv("DB_USERNAME", "postgres")
	port       = getEnv("DB_PORT", "5432")
	host       = getEnv("DB_HOST", "localhost")
	schema     = getEnv("DB_SCHEMA", "public")
	migrations = getEnv("DB_MIGRATIONS", "file://migrations")
	dbInstance *service
)

// getEnv reads an environment variable or returns the provided default.
func getEnv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists {
		return v
	}
	return defaultValue
}

func New() Service {
	// Reuse Connection
	if dbInstance != nil {
		return dbInstance
	}
	connStr := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable&search_path=%s",
		username, password, host, port, database, schema,
	)
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		logrus.Fatal(err)
	}

	dbInstance = &service{
		db: db,
	}
	return dbInstance
}

// Migrate applies pending migrations from the configured file source. A
// database that is already up to date is not an error.
func (s *service) Migrate() error {
	driver, err := postgres.WithInstance(s.db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("creating migration driver: %w", err)
	}
	m, err := migrate.NewWithDatabaseInstance(migrations, database, driver)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}

// Health checks the health of the database connection by pinging the database.
// It returns a map with keys indicating various health statistics.
func (s *service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	stats := make(map[string]string)

	// Ping the database
	err := s.db.PingContext(ctx)
	if err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		logrus.Errorf("db down: %v", err)
		return stats
	}

	// Database is up, add more statistics
	stats["status"] = "up"
	stats["message"] = "It's healthy"

	// Get database stats (like open connections, in use, idle, etc.)
	dbStats := s.db.Stats()
	stats["open_connections"] = strconv.Itoa(dbStats.OpenConnections)
	stats["in_use"] = strconv.Itoa(dbStats.InUse)
	stats["idle"] = strconv.Itoa(dbStats.Idle)
	stats["wait_count"] = strconv.FormatInt(dbStats.WaitCount, 10)
	stats["wait_duration"] = dbStats.WaitDuration.String()
	stats["max_idle_closed"] = strconv.FormatInt(dbStats.MaxIdleClosed, 10)
	stats["max_lifetime_closed"] = strconv.FormatInt(dbStats.MaxLifetimeClosed, 10)

	// Evaluate stats to provide a health message
	if dbStats.OpenConnections > 100 { // Assuming 100 is the max for this example
		stats["message"] = "The database is experiencing heavy load."
	}

	if dbStats.WaitCount > 1000 {
		stats["message"] = "The database has a high number of wait events, indicating potential bottlenecks."
	}

	if dbStats.MaxIdleClosed > int64(dbStats.OpenConnections)/2 {
		stats["message"] = "Many idle connections are being closed, consider revising the connection pool settings."
	}

	if dbStats.MaxLifetimeClosed > int64(dbStats.OpenConnections)/2 {
		stats["message"] = "Many connections are being closed due to max lifetime, consider increasing max lifetime or revising the connection usage pattern."
	}

	return stats
}

// Close closes the database connection.
// It logs a message indicating the disconnection from the specific database.
// If the connection is successfully closed, it returns nil.
// If an error occurs while closing the connection, it returns the error.
func (s *service) Close() error {
	logrus.Infof("Disconnected from database: %s", database)
	return s.db.Close()
}

// InsertBooking persists a new booking and fills in the generated id.
func (s *service) InsertBooking(ctx context.Context, b *models.Booking) error {
	query := `
		INSERT INTO bookings (full_name, vehicle_type, pickup_date, return_date, contact_number, booking_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	var id int
	err := s.db.QueryRowContext(
		ctx,
		query,
		b.FullName,
		b.VehicleType,
		b.PickupDate,
		b.ReturnDate,
		b.ContactNumber,
		b.BookingDate,
	).Scan(&id)
	if err != nil {
		return err
	}
	b.ID = id
	return nil
}

// FindBookingByID fetches a single booking. It returns booking.ErrNotFound
// when no row matches.
func (s *service) FindBookingByID(ctx context.Context, id int) (*models.Booking, error) {
	query := `
		SELECT id, full_name, vehicle_type, pickup_date, return_date, contact_number, booking_date
		FROM bookings
		WHERE id = $1
	`
	var b models.Booking
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&b.ID,
		&b.FullName,
		&b.VehicleType,
		&b.PickupDate,
		&b.ReturnDate,
		&b.ContactNumber,
		&b.BookingDate,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, booking.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ListBookingsDescending returns all bookings ordered by booking date, most
// recent first.
func (s *service) ListBookingsDescending(ctx context.Context) ([]models.Booking, error) {
	query := `
		SELECT id, full_name, vehicle_type, pickup_date, return_date, contact_number, booking_date
		FROM bookings
		ORDER BY booking_date DESC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		var b models.Booking
		err := rows.Scan(
			&b.ID,
			&b.FullName,
			&b.VehicleType,
			&b.PickupDate,
			&b.ReturnDate,
			&b.ContactNumber,
			&b.BookingDate,
		)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}
