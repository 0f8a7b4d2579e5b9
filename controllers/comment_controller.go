// File: /controllers/comment_controller.go
package controllers

import (
	"net/http"

	"campushub-api/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentController struct {
	db *gorm.DB
}

func NewCommentController(db *gorm.DB) *CommentController {
	return &CommentController{db: db}
}

type CreateCommentRequest struct {
	Body string `json:"body" binding:"required,max=2000"`
}

func (cc *CommentController) GetComments(c *gin.Context) {
	eventID := c.Param("id")

	var event models.Event
	if err := cc.db.First(&event, "id = ?", eventID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	var comments []models.Comment
	if err := cc.db.Preload("User").
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}

	for i := range comments {
		comments[i].User.Password = ""
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

func (cc *CommentController) CreateComment(c *gin.Context) {
	userID := c.GetString("user_id")
	eventID := c.Param("id")

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var event models.Event
	if err := cc.db.First(&event, "id = ?", eventID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	comment := models.Comment{
		ID:      uuid.New().String(),
		EventID: eventID,
		UserID:  userID,
		Body:    req.Body,
	}

	if err := cc.db.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post comment"})
		return
	}

	cc.db.Preload("User").First(&comment, "id = ?", comment.ID)
	comment.User.Password = ""

	c.JSON(http.StatusCreated, comment)
}

func (cc *CommentController) DeleteComment(c *gin.Context) {
	userID := c.GetString("user_id")
	commentID := c.Param("commentId")

	var comment models.Comment
	if err := cc.db.First(&comment, "id = ? AND user_id = ?", commentID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found or access denied"})
		return
	}

	if err := cc.db.Delete(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}
