// File: /models/user.go
package models

import (
	"strings"
	"time"
)

type User struct {
	ID             string      `json:"id" gorm:"primaryKey;size:191"`
	Name           string      `json:"name" gorm:"not null;size:255"`
	Handle         string      `json:"handle" gorm:"uniqueIndex;not null;size:50"` // Added for @username functionality
	Email          string      `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password       string      `json:"-" gorm:"not null;size:255"`
	Avatar         *string     `json:"avatar" gorm:"size:500"`
	Bio            *string     `json:"bio" gorm:"size:1000"`
	Points         int         `json:"points" gorm:"default:0"`
	EventsAttended int         `json:"events_attended" gorm:"default:0"`
	Badges         StringSlice `json:"badges" gorm:"type:json"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`

	// Relationships
	CreatedEvents []Event      `json:"created_events,omitempty" gorm:"foreignKey:OrganizerID"`
	Attendances   []Attendance `json:"-" gorm:"foreignKey:UserID"`
}

// GenerateHandleFromName creates a unique handle from the user's name
func GenerateHandleFromName(name string) string {
	// Convert to lowercase and replace spaces with underscores
	handle := strings.ToLower(strings.ReplaceAll(name, " ", "_"))
	// Remove special characters
	handle = strings.ReplaceAll(handle, ".", "")
	handle = strings.ReplaceAll(handle, "-", "_")
	return handle
}

// LeaderboardEntry represents one ranked row of the points leaderboard
type LeaderboardEntry struct {
	Rank           int         `json:"rank"`
	UserID         string      `json:"user_id"`
	Name           string      `json:"name"`
	Handle         string      `json:"handle"`
	Avatar         *string     `json:"avatar"`
	Points         int         `json:"points"`
	EventsAttended int         `json:"events_attended"`
	Badges         StringSlice `json:"badges"`
}
