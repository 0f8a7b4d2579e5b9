// File: /controllers/checkin_controller.go
package controllers

import (
	"errors"
	"net/http"

	"campushub-api/models"
	"campushub-api/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CheckInController struct {
	db       *gorm.DB
	checkins *services.CheckInService
}

func NewCheckInController(db *gorm.DB, checkins *services.CheckInService) *CheckInController {
	return &CheckInController{db: db, checkins: checkins}
}

type ManualCheckInRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

type ScanRequest struct {
	QRData string `json:"qr_data" binding:"required"`
}

// ManualCheckIn is the organizer's "Check In" button on the participant list.
func (cc *CheckInController) ManualCheckIn(c *gin.Context) {
	callerID := c.GetString("user_id")
	eventID := c.Param("id")

	var req ManualCheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Only the organizer checks people in manually
	var event models.Event
	if err := cc.db.First(&event, "id = ? AND organizer_id = ?", eventID, callerID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found or access denied"})
		return
	}

	outcome, err := cc.checkins.CheckIn(c.Request.Context(), eventID, req.UserID)
	if err != nil {
		cc.respondCheckInError(c, err)
		return
	}

	cc.respondOutcome(c, outcome, eventID, req.UserID)
}

// Scan is the QR scanner entry point. Payloads that aren't tickets are
// reported as ignored so the scan loop keeps running without surfacing an
// error to the operator.
func (cc *CheckInController) Scan(c *gin.Context) {
	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, payload, err := cc.checkins.CheckInScan(c.Request.Context(), req.QRData)
	if err != nil {
		cc.respondCheckInError(c, err)
		return
	}

	if outcome == services.OutcomeIgnored {
		c.JSON(http.StatusOK, gin.H{"outcome": outcome})
		return
	}

	cc.respondOutcome(c, outcome, payload.EventID, payload.UserID)
}

func (cc *CheckInController) respondOutcome(c *gin.Context, outcome services.CheckInOutcome, eventID, userID string) {
	switch outcome {
	case services.OutcomeCheckedIn:
		c.JSON(http.StatusOK, gin.H{
			"outcome":  outcome,
			"message":  "Checked in successfully",
			"event_id": eventID,
			"user_id":  userID,
		})
	case services.OutcomeAlreadyCheckedIn:
		// Informative failure for the scanning operator, not a silent success
		c.JSON(http.StatusConflict, gin.H{
			"outcome":  outcome,
			"error":    "This user has already been checked in",
			"event_id": eventID,
			"user_id":  userID,
		})
	case services.OutcomeNotRegistered:
		c.JSON(http.StatusNotFound, gin.H{
			"outcome":  outcome,
			"error":    "This user has not RSVP'd for the event",
			"event_id": eventID,
			"user_id":  userID,
		})
	}
}

func (cc *CheckInController) respondCheckInError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrEventNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check in"})
}
