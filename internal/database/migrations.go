package database

import (
	"github.com/jigmet/ladakh-tourism-backend/internal/models"
	"gorm.io/gorm"
)

func RunMigrations(db *gorm.DB) error {
	// Create tables if they don't exist
	err := db.AutoMigrate(
		&models.User{},
		&models.Bike{},
		&models.Booking{},
		&models.Permit{},
		&models.Alert{},
	)
	if err != nil {
		return err
	}

	// Status columns are constrained at the database level as well so a
	// stray write path can never store an out-of-set value.
	checks := []struct {
		table      string
		constraint string
		check      string
	}{
		{"users", "users_role_check",
			`CHECK (role IN ('tourist', 'vendor', 'government'))`},
		{"bikes", "bikes_availability_status_check",
			`CHECK (availability_status IN ('available', 'rented', 'under_maintenance'))`},
		{"bookings", "bookings_status_check",
			`CHECK (status IN ('pending', 'confirmed', 'completed', 'cancelled'))`},
		{"permits", "permits_status_check",
			`CHECK (status IN ('pending', 'approved', 'rejected'))`},
		{"alerts", "alerts_severity_check",
			`CHECK (severity IN ('low', 'medium', 'high'))`},
	}

	for _, c := range checks {
		db.Exec(`ALTER TABLE ` + c.table + ` DROP CONSTRAINT IF EXISTS ` + c.constraint)
		if err := db.Exec(`ALTER TABLE ` + c.table + ` ADD CONSTRAINT ` + c.constraint + ` ` + c.check).Error; err != nil {
			return err
		}
	}

	return nil
}
