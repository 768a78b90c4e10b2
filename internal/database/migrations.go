package database

import (
	"gorm.io/gorm"

	"github.com/yalatech/venuebook-backend/internal/models"
)

func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Booking{}); err != nil {
		return err
	}

	// Conflict and cooldown checks scan approved rows by resource and time.
	if err := db.Exec(
		`CREATE INDEX IF NOT EXISTS idx_bookings_resource_status_window
		 ON bookings (resource, status, start_time, end_time)`,
	).Error; err != nil {
		return err
	}

	if err := db.Exec(
		`ALTER TABLE bookings DROP CONSTRAINT IF EXISTS bookings_status_check`,
	).Error; err != nil {
		return err
	}
	return db.Exec(
		`ALTER TABLE bookings ADD CONSTRAINT bookings_status_check CHECK (status IN ('Pending', 'Approved'))`,
	).Error
}
