// File: /database/database.go
package database

import (
	"fmt"
	"time"

	"campushub-api/models"
	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Info),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	// Auto migrate all models
	err := db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.Attendance{},
		&models.Comment{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Add custom indexes for better query performance
	if err := addCustomIndexes(db); err != nil {
		return fmt.Errorf("failed to add custom indexes: %w", err)
	}

	// Add constraints if needed
	if err := addDatabaseConstraints(db); err != nil {
		return fmt.Errorf("failed to add database constraints: %w", err)
	}

	return nil
}

func addCustomIndexes(db *gorm.DB) error {
	// Event browsing is always time-window + category filtered
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_events_date_category ON events(date, category)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for events date/category: %v\n", err)
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_events_organizer_created ON events(organizer_id, created_at DESC)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for events organizer: %v\n", err)
	}

	// Leaderboard ordering: points descending, ties broken by id
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_users_points ON users(points DESC, id ASC)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for users points: %v\n", err)
	}

	// My-events lookups by user
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_attendances_user_created ON attendances(user_id, created_at DESC)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for attendances user list: %v\n", err)
	}

	return nil
}

func addDatabaseConstraints(db *gorm.DB) error {
	// Prevent duplicate registrations at the database level as well.
	// The registration service already guards this inside a transaction, but
	// the constraint keeps the ledger clean even if a write bypasses it.
	if err := db.Exec("ALTER TABLE attendances ADD CONSTRAINT uk_attendances_event_user UNIQUE (event_id, user_id)").Error; err != nil {
		// Ignore error if constraint already exists
		fmt.Printf("Warning: Could not add unique constraint for attendances: %v\n", err)
	}

	return nil
}

// SeedData can be used to populate the database with initial data for development/testing
func SeedData(db *gorm.DB) error {
	// Check if we already have users
	var userCount int64
	db.Model(&models.User{}).Count(&userCount)

	if userCount > 0 {
		fmt.Println("Database already has data, skipping seed")
		return nil
	}

	// Create sample users for testing
	testUsers := []models.User{
		{
			ID:       "user-1",
			Name:     "John Doe",
			Handle:   "john_doe",
			Email:    "john@example.com",
			Password: "$2a$10$dummy", // This should be properly hashed in real scenarios
			Badges:   models.StringSlice{},
		},
		{
			ID:       "user-2",
			Name:     "Jane Smith",
			Handle:   "jane_smith",
			Email:    "jane@example.com",
			Password: "$2a$10$dummy",
			Badges:   models.StringSlice{},
		},
	}

	for _, user := range testUsers {
		if err := db.Create(&user).Error; err != nil {
			fmt.Printf("Warning: Could not create test user %s: %v\n", user.Handle, err)
		}
	}

	// Create sample events for testing
	testEvents := []models.Event{
		{
			ID:            uuid.New().String(),
			Title:         "Intro to Go Workshop",
			Description:   "Hands-on workshop covering the basics of Go for absolute beginners.",
			Venue:         "Library Room 4B",
			Location:      "North Campus",
			Date:          time.Now().Add(72 * time.Hour),
			Category:      "Workshop",
			Type:          models.EventTypeCollege,
			OrganizerID:   "user-1",
			OrganizerName: "John Doe",
			CheckedInUids: models.StringSlice{},
		},
		{
			ID:            uuid.New().String(),
			Title:         "Spring Music Festival",
			Description:   "Open-air concert on the main lawn with student bands.",
			Venue:         "Main Lawn",
			Location:      "Central Campus",
			Date:          time.Now().Add(7 * 24 * time.Hour),
			Category:      "Music",
			Type:          models.EventTypeCollege,
			OrganizerID:   "user-2",
			OrganizerName: "Jane Smith",
			CheckedInUids: models.StringSlice{},
		},
	}

	for _, event := range testEvents {
		if err := db.Create(&event).Error; err != nil {
			fmt.Printf("Warning: Could not create test event %s: %v\n", event.Title, err)
		}
	}

	fmt.Println("Database seeded with test data")
	return nil
}
