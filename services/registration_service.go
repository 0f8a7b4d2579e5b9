// File: /services/registration_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"campushub-api/models"
)

// DefaultPointsPerRSVP is the award used when no value is configured.
const DefaultPointsPerRSVP = 5

// Badge names and the events-attended milestones that grant them.
const (
	BadgeFirstRSVP = "First RSVP"
	BadgeSocialite = "Socialite"

	FirstRSVPMilestone = 1
	SocialiteMilestone = 5
)

type RegistrationOutcome string

const (
	OutcomeRegistered        RegistrationOutcome = "registered"
	OutcomeAlreadyRegistered RegistrationOutcome = "already_registered"
)

// RegistrationResult is the outcome of one RegisterForEvent call, with the
// event and user state as of the end of the transaction.
type RegistrationResult struct {
	Outcome RegistrationOutcome `json:"outcome"`
	Event   *models.Event       `json:"event"`
	User    *models.User        `json:"user"`
}

// TicketSender delivers an event ticket to an attendee. Delivery is
// best-effort: the registration service never fails or blocks a registration
// on ticket errors.
type TicketSender interface {
	SendTicket(user *models.User, event *models.Event) error
}

// RegistrationService orchestrates RSVPs: the attendance ledger row, the
// event's attendee counter, the user's points, attendance count and badges
// all change together in one transaction, or not at all.
type RegistrationService struct {
	store         Store
	tickets       TicketSender // may be nil
	pointsPerRSVP int
}

func NewRegistrationService(store Store, tickets TicketSender, pointsPerRSVP int) *RegistrationService {
	if pointsPerRSVP <= 0 {
		pointsPerRSVP = DefaultPointsPerRSVP
	}
	return &RegistrationService{
		store:         store,
		tickets:       tickets,
		pointsPerRSVP: pointsPerRSVP,
	}
}

// RegisterForEvent registers the user for the event. Registering twice is a
// no-op reported as OutcomeAlreadyRegistered; points, counters and badges are
// only touched on the first successful registration.
func (s *RegistrationService) RegisterForEvent(ctx context.Context, eventID, userID string) (*RegistrationResult, error) {
	var result RegistrationResult

	err := s.store.InTransaction(ctx, func(tx StoreTx) error {
		event, err := tx.EventForUpdate(eventID)
		if err != nil {
			return err
		}
		user, err := tx.UserForUpdate(userID)
		if err != nil {
			return err
		}

		existing, err := tx.Attendance(eventID, userID)
		if err != nil {
			return err
		}
		if existing != nil {
			result = RegistrationResult{Outcome: OutcomeAlreadyRegistered, Event: event, User: user}
			return nil
		}

		attendance := &models.Attendance{
			EventID:   eventID,
			UserID:    userID,
			CheckedIn: false,
			CreatedAt: time.Now().UTC(),
		}
		if err := tx.CreateAttendance(attendance); err != nil {
			return fmt.Errorf("create attendance: %w", err)
		}
		if err := tx.AddAttendee(eventID); err != nil {
			return fmt.Errorf("increment attendees: %w", err)
		}

		newPoints := user.Points + s.pointsPerRSVP
		newEventsAttended := user.EventsAttended + 1
		newBadges := grantMilestoneBadges(user.Badges, newEventsAttended)

		if err := tx.UpdateScore(userID, newPoints, newEventsAttended, newBadges); err != nil {
			return fmt.Errorf("update score: %w", err)
		}

		event.Attendees++
		user.Points = newPoints
		user.EventsAttended = newEventsAttended
		user.Badges = newBadges
		result = RegistrationResult{Outcome: OutcomeRegistered, Event: event, User: user}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Outcome == OutcomeRegistered && s.tickets != nil {
		// Fire-and-forget: a failed ticket email must never roll back or
		// report failure for a committed registration.
		go s.sendTicket(result.User, result.Event)
	}

	return &result, nil
}

// grantMilestoneBadges appends the milestone badges reached at the given
// attendance count. A badge already held is never duplicated.
func grantMilestoneBadges(badges models.StringSlice, eventsAttended int) models.StringSlice {
	granted := make(models.StringSlice, len(badges))
	copy(granted, badges)

	if eventsAttended == FirstRSVPMilestone && !granted.Contains(BadgeFirstRSVP) {
		granted = append(granted, BadgeFirstRSVP)
	}
	if eventsAttended == SocialiteMilestone && !granted.Contains(BadgeSocialite) {
		granted = append(granted, BadgeSocialite)
	}
	return granted
}

func (s *RegistrationService) sendTicket(user *models.User, event *models.Event) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Ticket delivery panicked for user %s, event %s: %v\n", user.ID, event.ID, r)
		}
	}()

	if err := s.tickets.SendTicket(user, event); err != nil {
		fmt.Printf("Failed to send ticket for user %s, event %s: %v\n", user.ID, event.ID, err)
	}
}
