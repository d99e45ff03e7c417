package database

import (
	"log"

	"github.com/wanderlust-app/wanderlust/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Listing{},
		&models.Booking{},
		&models.Plan{},
		&models.PlanListing{},
		&models.Review{},
		&models.ChatMessage{},
		&models.Session{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Overlap checks scan a listing's bookings by date range
	db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_booking_listing_dates
		ON bookings (listing_id, start_date, end_date)
	`)

	return db
}
