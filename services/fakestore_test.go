// File: /services/fakestore_test.go
package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"campushub-api/models"
)

// fakeStore is an in-memory Store for service tests. Each transaction holds
// the store lock for its duration and restores a snapshot on error, which
// gives the same serialization and all-or-nothing behavior the services rely
// on from the database.
type fakeStore struct {
	mu     sync.Mutex
	events map[string]*models.Event
	users  map[string]*models.User
	ledger map[string]*models.Attendance
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		events: make(map[string]*models.Event),
		users:  make(map[string]*models.User),
		ledger: make(map[string]*models.Attendance),
	}
}

func ledgerKey(eventID, userID string) string {
	return eventID + "|" + userID
}

func (f *fakeStore) addEvent(event models.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events[event.ID] = cloneEvent(&event)
}

func (f *fakeStore) addUser(user models.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = cloneUser(&user)
}

func (f *fakeStore) event(id string) models.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *cloneEvent(f.events[id])
}

func (f *fakeStore) user(id string) models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *cloneUser(f.users[id])
}

func (f *fakeStore) attendance(eventID, userID string) *models.Attendance {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.ledger[ledgerKey(eventID, userID)]
	if !ok {
		return nil
	}
	clone := *row
	return &clone
}

func (f *fakeStore) ledgerSize() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.ledger)
}

func (f *fakeStore) InTransaction(ctx context.Context, fn func(tx StoreTx) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	snapshot := f.snapshot()
	if err := fn(&fakeTx{store: f}); err != nil {
		f.restore(snapshot)
		return err
	}
	return nil
}

type fakeSnapshot struct {
	events map[string]*models.Event
	users  map[string]*models.User
	ledger map[string]*models.Attendance
}

func (f *fakeStore) snapshot() fakeSnapshot {
	s := fakeSnapshot{
		events: make(map[string]*models.Event, len(f.events)),
		users:  make(map[string]*models.User, len(f.users)),
		ledger: make(map[string]*models.Attendance, len(f.ledger)),
	}
	for id, event := range f.events {
		s.events[id] = cloneEvent(event)
	}
	for id, user := range f.users {
		s.users[id] = cloneUser(user)
	}
	for key, row := range f.ledger {
		clone := *row
		s.ledger[key] = &clone
	}
	return s
}

func (f *fakeStore) restore(s fakeSnapshot) {
	f.events = s.events
	f.users = s.users
	f.ledger = s.ledger
}

func cloneEvent(event *models.Event) *models.Event {
	clone := *event
	clone.CheckedInUids = append(models.StringSlice{}, event.CheckedInUids...)
	return &clone
}

func cloneUser(user *models.User) *models.User {
	clone := *user
	clone.Badges = append(models.StringSlice{}, user.Badges...)
	return &clone
}

// fakeTx operates directly on the store maps; the store lock is already held
// for the whole transaction.
type fakeTx struct {
	store *fakeStore
}

func (t *fakeTx) EventForUpdate(id string) (*models.Event, error) {
	event, ok := t.store.events[id]
	if !ok {
		return nil, ErrEventNotFound
	}
	return cloneEvent(event), nil
}

func (t *fakeTx) UserForUpdate(id string) (*models.User, error) {
	user, ok := t.store.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return cloneUser(user), nil
}

func (t *fakeTx) Attendance(eventID, userID string) (*models.Attendance, error) {
	row, ok := t.store.ledger[ledgerKey(eventID, userID)]
	if !ok {
		return nil, nil
	}
	clone := *row
	return &clone, nil
}

func (t *fakeTx) CreateAttendance(attendance *models.Attendance) error {
	key := ledgerKey(attendance.EventID, attendance.UserID)
	if _, exists := t.store.ledger[key]; exists {
		return fmt.Errorf("duplicate attendance for %s", key)
	}
	clone := *attendance
	t.store.ledger[key] = &clone
	return nil
}

func (t *fakeTx) AddAttendee(eventID string) error {
	event, ok := t.store.events[eventID]
	if !ok {
		return ErrEventNotFound
	}
	event.Attendees++
	return nil
}

func (t *fakeTx) UpdateScore(userID string, points, eventsAttended int, badges models.StringSlice) error {
	user, ok := t.store.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	user.Points = points
	user.EventsAttended = eventsAttended
	user.Badges = append(models.StringSlice{}, badges...)
	return nil
}

func (t *fakeTx) MarkCheckedIn(eventID, userID string, at time.Time) (bool, error) {
	row, ok := t.store.ledger[ledgerKey(eventID, userID)]
	if !ok || row.CheckedIn {
		return false, nil
	}
	row.CheckedIn = true
	checkedAt := at
	row.CheckedInAt = &checkedAt
	return true, nil
}

func (t *fakeTx) SetCheckedInUids(eventID string, uids models.StringSlice) error {
	event, ok := t.store.events[eventID]
	if !ok {
		return ErrEventNotFound
	}
	event.CheckedInUids = append(models.StringSlice{}, uids...)
	return nil
}
