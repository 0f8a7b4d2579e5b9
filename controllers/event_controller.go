// File: /controllers/event_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"campushub-api/models"
	"campushub-api/services"
	"campushub-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventController struct {
	db            *gorm.DB
	registrations *services.RegistrationService
}

func NewEventController(db *gorm.DB, registrations *services.RegistrationService) *EventController {
	return &EventController{db: db, registrations: registrations}
}

type CreateEventRequest struct {
	Title            string    `json:"title" binding:"required"`
	Description      string    `json:"description" binding:"required"`
	Venue            string    `json:"venue" binding:"required"`
	Location         string    `json:"location" binding:"required"`
	Date             time.Time `json:"date" binding:"required"`
	Category         string    `json:"category" binding:"required"`
	Type             string    `json:"type"`
	MapLink          *string   `json:"map_link"`
	RegistrationLink *string   `json:"registration_link"`
	ImageURL         *string   `json:"image_url"`
}

func (ec *EventController) GetEvents(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}
	offset := (page - 1) * limit

	var events []models.Event
	query := ec.db.Preload("Organizer")

	if search := c.Query("search"); search != "" {
		query = query.Where("title LIKE ? OR description LIKE ? OR venue LIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	if eventType := c.Query("type"); eventType != "" {
		query = query.Where("type = ?", eventType)
	}

	// Time window filters, RFC3339
	if after := c.Query("after"); after != "" {
		afterTime, err := time.Parse(time.RFC3339, after)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid after format. Use RFC3339 (e.g., 2026-10-01T00:00:00Z)"})
			return
		}
		query = query.Where("date > ?", afterTime)
	}
	if before := c.Query("before"); before != "" {
		beforeTime, err := time.Parse(time.RFC3339, before)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid before format. Use RFC3339 (e.g., 2026-10-01T00:00:00Z)"})
			return
		}
		query = query.Where("date < ?", beforeTime)
	}

	if err := query.Order("date ASC").Offset(offset).Limit(limit).Find(&events).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
		return
	}

	// Remove password from organizer data
	for i := range events {
		events[i].Organizer.Password = ""
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"page":   page,
		"limit":  limit,
	})
}

func (ec *EventController) CreateEvent(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Validate event date is in the future
	if req.Date.Before(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Event date must be in the future"})
		return
	}

	if !models.IsValidCategory(req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
		return
	}

	eventType := req.Type
	if eventType == "" {
		eventType = models.EventTypeCollege
	}
	if !models.IsValidEventType(eventType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Event type must be 'college' or 'other'"})
		return
	}

	// Get organizer info
	var organizer models.User
	if err := ec.db.First(&organizer, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	event := models.Event{
		ID:               uuid.New().String(),
		Title:            req.Title,
		Description:      req.Description,
		Venue:            req.Venue,
		Location:         req.Location,
		Date:             req.Date,
		Category:         req.Category,
		Type:             eventType,
		MapLink:          req.MapLink,
		RegistrationLink: req.RegistrationLink,
		OrganizerID:      userID,
		OrganizerName:    organizer.Name,
		ImageURL:         req.ImageURL,
		Attendees:        0,
		CheckedInUids:    models.StringSlice{},
	}

	if err := ec.db.Create(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event"})
		return
	}

	c.JSON(http.StatusCreated, event)
}

func (ec *EventController) GetEvent(c *gin.Context) {
	eventID := c.Param("id")

	var event models.Event
	if err := ec.db.Preload("Organizer").First(&event, "id = ?", eventID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	event.Organizer.Password = ""
	c.JSON(http.StatusOK, event)
}

func (ec *EventController) UpdateEvent(c *gin.Context) {
	userID := c.GetString("user_id")
	eventID := c.Param("id")

	var event models.Event
	if err := ec.db.First(&event, "id = ? AND organizer_id = ?", eventID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found or access denied"})
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Date.Before(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Event date must be in the future"})
		return
	}

	if !models.IsValidCategory(req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
		return
	}

	// The attendee counter and checked-in view belong to the registration
	// and check-in services; updates never touch them.
	updates := map[string]interface{}{
		"title":             req.Title,
		"description":       req.Description,
		"venue":             req.Venue,
		"location":          req.Location,
		"date":              req.Date,
		"category":          req.Category,
		"map_link":          req.MapLink,
		"registration_link": req.RegistrationLink,
		"image_url":         req.ImageURL,
	}
	if req.Type != "" {
		if !models.IsValidEventType(req.Type) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Event type must be 'college' or 'other'"})
			return
		}
		updates["type"] = req.Type
	}

	if err := ec.db.Model(&event).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event updated successfully"})
}

func (ec *EventController) DeleteEvent(c *gin.Context) {
	userID := c.GetString("user_id")
	eventID := c.Param("id")

	var event models.Event
	if err := ec.db.First(&event, "id = ? AND organizer_id = ?", eventID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found or access denied"})
		return
	}

	// Delete attendance records first
	ec.db.Where("event_id = ?", eventID).Delete(&models.Attendance{})
	ec.db.Where("event_id = ?", eventID).Delete(&models.Comment{})

	// Delete the event
	if err := ec.db.Delete(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}

// Register handles RSVP. The heavy lifting - ledger row, counter, points and
// badges in one transaction - happens in the registration service.
func (ec *EventController) Register(c *gin.Context) {
	userID := c.GetString("user_id")
	eventID := c.Param("id")

	result, err := ec.registrations.RegisterForEvent(c.Request.Context(), eventID, userID)
	if err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register for event"})
		return
	}

	if result.Outcome == services.OutcomeAlreadyRegistered {
		c.JSON(http.StatusOK, gin.H{
			"message": "Already registered for this event",
			"outcome": result.Outcome,
		})
		return
	}

	result.User.Password = ""
	c.JSON(http.StatusOK, gin.H{
		"message": "Successfully registered for event",
		"outcome": result.Outcome,
		"event":   result.Event,
		"user":    result.User,
	})
}

func (ec *EventController) GetRegisteredEvents(c *gin.Context) {
	userID := c.GetString("user_id")

	var attendances []models.Attendance
	if err := ec.db.Preload("Event").Preload("Event.Organizer").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&attendances).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch registered events"})
		return
	}

	type registeredEvent struct {
		models.Event
		CheckedIn   bool       `json:"checked_in"`
		CheckedInAt *time.Time `json:"checked_in_at"`
	}

	events := make([]registeredEvent, 0, len(attendances))
	for _, attendance := range attendances {
		attendance.Event.Organizer.Password = ""
		events = append(events, registeredEvent{
			Event:       attendance.Event,
			CheckedIn:   attendance.CheckedIn,
			CheckedInAt: attendance.CheckedInAt,
		})
	}

	c.JSON(http.StatusOK, events)
}

// GetParticipants returns the event's attendance ledger joined with user
// profiles, for the organizer-facing participant list.
func (ec *EventController) GetParticipants(c *gin.Context) {
	eventID := c.Param("id")

	var event models.Event
	if err := ec.db.First(&event, "id = ?", eventID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	var attendances []models.Attendance
	if err := ec.db.Preload("User").
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&attendances).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch participants"})
		return
	}

	participants := make([]models.Participant, 0, len(attendances))
	for _, attendance := range attendances {
		participants = append(participants, models.Participant{
			UserID:       attendance.UserID,
			Name:         attendance.User.Name,
			Handle:       attendance.User.Handle,
			Avatar:       attendance.User.Avatar,
			RegisteredAt: attendance.CreatedAt,
			CheckedIn:    attendance.CheckedIn,
			CheckedInAt:  attendance.CheckedInAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"event_id":     eventID,
		"participants": participants,
	})
}

// GetTicket renders the caller's QR ticket for an event they registered for.
func (ec *EventController) GetTicket(c *gin.Context) {
	userID := c.GetString("user_id")
	eventID := c.Param("id")

	var attendance models.Attendance
	if err := ec.db.Where("event_id = ? AND user_id = ?", eventID, userID).First(&attendance).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not registered for this event"})
		return
	}

	png, err := utils.TicketQRCode(eventID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render ticket"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
