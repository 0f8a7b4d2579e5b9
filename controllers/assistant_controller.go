// File: /controllers/assistant_controller.go
package controllers

import (
	"net/http"
	"time"

	"campushub-api/models"
	"campushub-api/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AssistantController exposes the campus assistant. The assistant service is
// nil when no API key is configured; every handler answers 503 in that case.
type AssistantController struct {
	db        *gorm.DB
	assistant *services.AssistantService
}

func NewAssistantController(db *gorm.DB, assistant *services.AssistantService) *AssistantController {
	return &AssistantController{db: db, assistant: assistant}
}

type AskRequest struct {
	Question string `json:"question" binding:"required,max=1000"`
}

type DraftEventRequest struct {
	Text string `json:"text" binding:"required,max=5000"`
}

func (ac *AssistantController) Ask(c *gin.Context) {
	if ac.assistant == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Assistant is not configured"})
		return
	}

	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	events, err := ac.upcomingEvents(50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
		return
	}

	answer, err := ac.assistant.AnswerQuestion(c.Request.Context(), req.Question, events)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Assistant is unavailable right now"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"answer": answer})
}

func (ac *AssistantController) DraftEvent(c *gin.Context) {
	if ac.assistant == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Assistant is not configured"})
		return
	}

	var req DraftEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft, err := ac.assistant.DraftEvent(c.Request.Context(), req.Text, time.Now())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not extract event details from the text"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

func (ac *AssistantController) Recommendations(c *gin.Context) {
	if ac.assistant == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Assistant is not configured"})
		return
	}

	userID := c.GetString("user_id")

	var user models.User
	if err := ac.db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	events, err := ac.upcomingEvents(30)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
		return
	}

	recommendations, err := ac.assistant.RecommendEvents(c.Request.Context(), &user, events)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Assistant is unavailable right now"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recommendations": recommendations})
}

func (ac *AssistantController) upcomingEvents(limit int) ([]models.Event, error) {
	var events []models.Event
	err := ac.db.Where("date > ?", time.Now()).
		Order("date ASC").
		Limit(limit).
		Find(&events).Error
	return events, err
}
