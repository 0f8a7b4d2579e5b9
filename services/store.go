// File: /services/store.go
package services

import (
	"context"
	"errors"
	"time"

	"campushub-api/models"
)

// ErrEventNotFound is returned when a referenced event does not exist.
var ErrEventNotFound = errors.New("event not found")

// ErrUserNotFound is returned when a referenced user profile does not exist.
var ErrUserNotFound = errors.New("user not found")

// Store is the persistence boundary for the registration and check-in
// services. All mutations of the attendance ledger, the event counters and
// the user score fields go through a single transaction obtained here; no
// other code path writes those fields.
type Store interface {
	InTransaction(ctx context.Context, fn func(tx StoreTx) error) error
}

// StoreTx exposes the reads and writes available inside one transaction.
// The *ForUpdate reads take row locks so concurrent registrations and
// check-ins for the same rows serialize instead of racing.
type StoreTx interface {
	// EventForUpdate loads and locks an event row. Returns ErrEventNotFound
	// if the event does not exist.
	EventForUpdate(id string) (*models.Event, error)

	// UserForUpdate loads and locks a user row. Returns ErrUserNotFound if
	// the user does not exist.
	UserForUpdate(id string) (*models.User, error)

	// Attendance returns the ledger row for (eventID, userID), or nil if the
	// user has not registered for the event.
	Attendance(eventID, userID string) (*models.Attendance, error)

	CreateAttendance(attendance *models.Attendance) error

	// AddAttendee atomically increments the event's denormalized attendee
	// counter.
	AddAttendee(eventID string) error

	UpdateScore(userID string, points, eventsAttended int, badges models.StringSlice) error

	// MarkCheckedIn flips checked_in false->true for the ledger row. The
	// update is conditional on checked_in still being false; the return value
	// reports whether this call performed the transition.
	MarkCheckedIn(eventID, userID string, at time.Time) (bool, error)

	// SetCheckedInUids replaces the event's denormalized checked-in view.
	SetCheckedInUids(eventID string, uids models.StringSlice) error
}
