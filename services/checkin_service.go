// File: /services/checkin_service.go
package services

import (
	"context"
	"time"

	"campushub-api/utils"
)

type CheckInOutcome string

const (
	OutcomeCheckedIn        CheckInOutcome = "checked_in"
	OutcomeAlreadyCheckedIn CheckInOutcome = "already_checked_in"
	OutcomeNotRegistered    CheckInOutcome = "not_registered"

	// OutcomeIgnored is reported for scanned codes that are not ticket
	// payloads. The scan loop treats these as noise, not errors.
	OutcomeIgnored CheckInOutcome = "ignored"
)

// CheckInService marks registered attendees as present, exactly once per
// event. Both entry points in the product - the QR scanner and the manual
// "Check In" button on the participant list - go through CheckIn, so the
// single-transition guarantee holds regardless of how the attendee arrives.
type CheckInService struct {
	store Store
}

func NewCheckInService(store Store) *CheckInService {
	return &CheckInService{store: store}
}

// CheckIn flips the attendance row for (eventID, userID) to checked-in.
// A second call, concurrent or not, observes OutcomeAlreadyCheckedIn; a call
// for a user with no registration observes OutcomeNotRegistered and writes
// nothing.
func (s *CheckInService) CheckIn(ctx context.Context, eventID, userID string) (CheckInOutcome, error) {
	var outcome CheckInOutcome

	err := s.store.InTransaction(ctx, func(tx StoreTx) error {
		// Locking the event row up front also serializes the append to the
		// checked-in view below.
		event, err := tx.EventForUpdate(eventID)
		if err != nil {
			return err
		}

		attendance, err := tx.Attendance(eventID, userID)
		if err != nil {
			return err
		}
		if attendance == nil {
			outcome = OutcomeNotRegistered
			return nil
		}
		if attendance.CheckedIn {
			outcome = OutcomeAlreadyCheckedIn
			return nil
		}

		transitioned, err := tx.MarkCheckedIn(eventID, userID, time.Now().UTC())
		if err != nil {
			return err
		}
		if !transitioned {
			// Lost the conditional write to a concurrent check-in.
			outcome = OutcomeAlreadyCheckedIn
			return nil
		}

		if !event.CheckedInUids.Contains(userID) {
			uids := append(event.CheckedInUids, userID)
			if err := tx.SetCheckedInUids(eventID, uids); err != nil {
				return err
			}
		}

		outcome = OutcomeCheckedIn
		return nil
	})
	if err != nil {
		return "", err
	}
	return outcome, nil
}

// CheckInScan handles a raw QR payload from the scanner. Codes that do not
// decode to a ticket payload are ignored silently (OutcomeIgnored, no error);
// valid payloads go through the same CheckIn contract as manual check-ins.
func (s *CheckInService) CheckInScan(ctx context.Context, qrData string) (CheckInOutcome, *utils.TicketPayload, error) {
	payload, ok := utils.DecodeTicketPayload(qrData)
	if !ok {
		return OutcomeIgnored, nil, nil
	}

	outcome, err := s.CheckIn(ctx, payload.EventID, payload.UserID)
	if err != nil {
		return "", payload, err
	}
	return outcome, payload, nil
}
