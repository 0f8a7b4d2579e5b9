// File: /repositories/event_store.go
package repositories

import (
	"context"
	"errors"
	"time"

	"campushub-api/models"
	"campushub-api/services"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EventStore is the gorm-backed implementation of services.Store. Every
// service call runs inside one database transaction, and the event/user rows
// are locked with SELECT ... FOR UPDATE so two concurrent registrations (or
// check-ins) for the same rows serialize rather than both reading the same
// stale counter.
type EventStore struct {
	db *gorm.DB
}

func NewEventStore(db *gorm.DB) *EventStore {
	return &EventStore{db: db}
}

func (s *EventStore) InTransaction(ctx context.Context, fn func(tx services.StoreTx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&eventStoreTx{db: tx})
	})
}

type eventStoreTx struct {
	db *gorm.DB
}

func (t *eventStoreTx) EventForUpdate(id string) (*models.Event, error) {
	var event models.Event
	err := t.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&event, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (t *eventStoreTx) UserForUpdate(id string) (*models.User, error) {
	var user models.User
	err := t.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (t *eventStoreTx) Attendance(eventID, userID string) (*models.Attendance, error) {
	var attendance models.Attendance
	err := t.db.Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&attendance).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &attendance, nil
}

func (t *eventStoreTx) CreateAttendance(attendance *models.Attendance) error {
	return t.db.Create(attendance).Error
}

func (t *eventStoreTx) AddAttendee(eventID string) error {
	return t.db.Model(&models.Event{}).
		Where("id = ?", eventID).
		UpdateColumn("attendees", gorm.Expr("attendees + ?", 1)).Error
}

func (t *eventStoreTx) UpdateScore(userID string, points, eventsAttended int, badges models.StringSlice) error {
	return t.db.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"points":          points,
			"events_attended": eventsAttended,
			"badges":          badges,
		}).Error
}

func (t *eventStoreTx) MarkCheckedIn(eventID, userID string, at time.Time) (bool, error) {
	// Conditional write: only the caller that still sees checked_in = false
	// performs the transition. A concurrent caller updates zero rows.
	result := t.db.Model(&models.Attendance{}).
		Where("event_id = ? AND user_id = ? AND checked_in = ?", eventID, userID, false).
		Updates(map[string]interface{}{
			"checked_in":    true,
			"checked_in_at": at,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (t *eventStoreTx) SetCheckedInUids(eventID string, uids models.StringSlice) error {
	return t.db.Model(&models.Event{}).
		Where("id = ?", eventID).
		Update("checked_in_uids", uids).Error
}
