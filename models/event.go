// File: /models/event.go
package models

import (
	"time"
)

// Event types. College events are campus-hosted; everything else is external.
const (
	EventTypeCollege = "college"
	EventTypeOther   = "other"
)

// Event categories shown as filter chips in the clients.
var EventCategories = []string{"Tech", "Sports", "Music", "Workshop", "Social", "Other"}

type Event struct {
	ID               string      `json:"id" gorm:"primaryKey;size:191"`
	Title            string      `json:"title" gorm:"not null;size:255"`
	Description      string      `json:"description" gorm:"not null;type:text"`
	Venue            string      `json:"venue" gorm:"not null;size:255"`
	Location         string      `json:"location" gorm:"not null;size:255"`
	Date             time.Time   `json:"date" gorm:"not null;index"`
	Category         string      `json:"category" gorm:"not null;size:50"`
	Type             string      `json:"type" gorm:"not null;size:20;default:'college'"`
	MapLink          *string     `json:"map_link" gorm:"size:500"`
	RegistrationLink *string     `json:"registration_link" gorm:"size:500"`
	OrganizerID      string      `json:"organizer_id" gorm:"not null;size:191"`
	OrganizerName    string      `json:"organizer_name" gorm:"not null;size:255"`
	ImageURL         *string     `json:"image_url" gorm:"size:500"`
	Attendees        int         `json:"attendees" gorm:"default:0"`
	CheckedInUids    StringSlice `json:"checked_in_uids" gorm:"type:json"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`

	// Attendees is a denormalized counter and CheckedInUids a denormalized
	// membership view. The attendance ledger is the source of truth; both are
	// only ever written in the same transaction as the ledger row.
	Organizer     User         `json:"organizer" gorm:"foreignKey:OrganizerID"`
	Registrations []Attendance `json:"-" gorm:"foreignKey:EventID"`
}

// IsValidEventType reports whether t is a known event type
func IsValidEventType(t string) bool {
	return t == EventTypeCollege || t == EventTypeOther
}

// IsValidCategory reports whether c is a known event category
func IsValidCategory(c string) bool {
	for _, category := range EventCategories {
		if category == c {
			return true
		}
	}
	return false
}
