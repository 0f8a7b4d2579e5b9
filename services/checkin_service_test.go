// File: /services/checkin_service_test.go
package services

import (
	"context"
	"sync"
	"testing"

	"campushub-api/models"
	"campushub-api/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRegisteredAttendee(store *fakeStore) (string, string) {
	store.addEvent(models.Event{
		ID:            "event-1",
		Title:         "Tech Meetup",
		Attendees:     1,
		CheckedInUids: models.StringSlice{},
	})
	store.addUser(models.User{ID: "user-1", Badges: models.StringSlice{}})
	_ = store.InTransaction(context.Background(), func(tx StoreTx) error {
		return tx.CreateAttendance(&models.Attendance{EventID: "event-1", UserID: "user-1"})
	})
	return "event-1", "user-1"
}

func TestCheckIn_Success(t *testing.T) {
	store := newFakeStore()
	eventID, userID := seedRegisteredAttendee(store)
	svc := NewCheckInService(store)

	outcome, err := svc.CheckIn(context.Background(), eventID, userID)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCheckedIn, outcome)

	row := store.attendance(eventID, userID)
	require.NotNil(t, row)
	assert.True(t, row.CheckedIn)
	require.NotNil(t, row.CheckedInAt)

	// The denormalized view on the event moved in the same transaction
	assert.True(t, store.event(eventID).CheckedInUids.Contains(userID))
}

func TestCheckIn_SecondAttemptReportsAlreadyCheckedIn(t *testing.T) {
	store := newFakeStore()
	eventID, userID := seedRegisteredAttendee(store)
	svc := NewCheckInService(store)

	outcome, err := svc.CheckIn(context.Background(), eventID, userID)
	require.NoError(t, err)
	require.Equal(t, OutcomeCheckedIn, outcome)
	firstAt := store.attendance(eventID, userID).CheckedInAt

	outcome, err = svc.CheckIn(context.Background(), eventID, userID)
	require.NoError(t, err)
	assert.Equal(t, OutcomeAlreadyCheckedIn, outcome)

	// The original timestamp survives and the view has one entry
	assert.Equal(t, firstAt, store.attendance(eventID, userID).CheckedInAt)
	assert.Equal(t, models.StringSlice{userID}, store.event(eventID).CheckedInUids)
}

func TestCheckIn_NotRegisteredWritesNothing(t *testing.T) {
	store := newFakeStore()
	eventID, _ := seedRegisteredAttendee(store)
	svc := NewCheckInService(store)

	outcome, err := svc.CheckIn(context.Background(), eventID, "stranger")
	require.NoError(t, err)
	assert.Equal(t, OutcomeNotRegistered, outcome)

	assert.Nil(t, store.attendance(eventID, "stranger"))
	assert.Empty(t, store.event(eventID).CheckedInUids)
}

func TestCheckIn_EventNotFound(t *testing.T) {
	store := newFakeStore()
	svc := NewCheckInService(store)

	_, err := svc.CheckIn(context.Background(), "missing-event", "user-1")
	require.ErrorIs(t, err, ErrEventNotFound)
}

func TestCheckIn_ConcurrentAttemptsTransitionOnce(t *testing.T) {
	store := newFakeStore()
	eventID, userID := seedRegisteredAttendee(store)
	svc := NewCheckInService(store)

	const attempts = 10
	outcomes := make([]CheckInOutcome, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outcome, err := svc.CheckIn(context.Background(), eventID, userID)
			assert.NoError(t, err)
			outcomes[i] = outcome
		}(i)
	}
	wg.Wait()

	checkedIn := 0
	for _, outcome := range outcomes {
		switch outcome {
		case OutcomeCheckedIn:
			checkedIn++
		case OutcomeAlreadyCheckedIn:
		default:
			t.Fatalf("unexpected outcome %q", outcome)
		}
	}
	assert.Equal(t, 1, checkedIn, "exactly one attempt wins the transition")
	assert.Equal(t, models.StringSlice{userID}, store.event(eventID).CheckedInUids)
}

func TestCheckInScan_ValidTicket(t *testing.T) {
	store := newFakeStore()
	eventID, userID := seedRegisteredAttendee(store)
	svc := NewCheckInService(store)

	qrData, err := utils.EncodeTicketPayload(eventID, userID)
	require.NoError(t, err)

	outcome, payload, err := svc.CheckInScan(context.Background(), qrData)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCheckedIn, outcome)
	require.NotNil(t, payload)
	assert.Equal(t, eventID, payload.EventID)
	assert.Equal(t, userID, payload.UserID)
}

func TestCheckInScan_IgnoresNonTicketCodes(t *testing.T) {
	store := newFakeStore()
	seedRegisteredAttendee(store)
	svc := NewCheckInService(store)

	for _, qrData := range []string{
		"https://example.com/menu",
		"not json at all",
		`{"something":"else"}`,
		`{"event_id":"","user_id":""}`,
		"",
	} {
		outcome, payload, err := svc.CheckInScan(context.Background(), qrData)
		require.NoError(t, err, "scan of %q", qrData)
		assert.Equal(t, OutcomeIgnored, outcome, "scan of %q", qrData)
		assert.Nil(t, payload)
	}
}

// Full scanner flow: register, scan the ticket, scan it again.
func TestScanFlow_RegisterScanRescan(t *testing.T) {
	store := newFakeStore()
	store.addEvent(models.Event{ID: "event-1", CheckedInUids: models.StringSlice{}})
	store.addUser(models.User{ID: "user-1", Badges: models.StringSlice{}})

	registrations := NewRegistrationService(store, nil, 5)
	checkins := NewCheckInService(store)

	result, err := registrations.RegisterForEvent(context.Background(), "event-1", "user-1")
	require.NoError(t, err)
	require.Equal(t, OutcomeRegistered, result.Outcome)

	qrData, err := utils.EncodeTicketPayload("event-1", "user-1")
	require.NoError(t, err)

	outcome, _, err := checkins.CheckInScan(context.Background(), qrData)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCheckedIn, outcome)

	outcome, _, err = checkins.CheckInScan(context.Background(), qrData)
	require.NoError(t, err)
	assert.Equal(t, OutcomeAlreadyCheckedIn, outcome)
}
