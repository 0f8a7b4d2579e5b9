// File: /models/attendance.go
package models

import (
	"time"
)

// Attendance is one row of the attendance ledger: a user's RSVP for an event
// and whether they have been checked in at the door. The (event_id, user_id)
// pair is unique, so a user can never hold two registrations for one event.
type Attendance struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	EventID     string     `json:"event_id" gorm:"not null;size:191;uniqueIndex:idx_attendance_event_user"`
	UserID      string     `json:"user_id" gorm:"not null;size:191;uniqueIndex:idx_attendance_event_user"`
	CheckedIn   bool       `json:"checked_in" gorm:"default:false"`
	CheckedInAt *time.Time `json:"checked_in_at"`
	CreatedAt   time.Time  `json:"created_at"`

	Event Event `json:"event" gorm:"foreignKey:EventID"`
	User  User  `json:"user" gorm:"foreignKey:UserID"`
}

// Participant is an attendance row joined with the attendee's profile, as
// shown in the organizer-facing participant list.
type Participant struct {
	UserID       string     `json:"user_id"`
	Name         string     `json:"name"`
	Handle       string     `json:"handle"`
	Avatar       *string    `json:"avatar"`
	RegisteredAt time.Time  `json:"registered_at"`
	CheckedIn    bool       `json:"checked_in"`
	CheckedInAt  *time.Time `json:"checked_in_at"`
}
