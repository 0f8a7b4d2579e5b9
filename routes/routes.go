// File: /routes/routes.go
package routes

import (
	"campushub-api/config"
	"campushub-api/controllers"
	"campushub-api/middleware"
	"campushub-api/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupCORS returns the CORS middleware for browser clients
func SetupCORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func SetupRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	emailService *services.EmailService,
	registrations *services.RegistrationService,
	checkins *services.CheckInService,
	assistant *services.AssistantService,
) {
	// Controllers
	authController := controllers.NewAuthController(db, cfg.JWTSecret, emailService)
	userController := controllers.NewUserController(db)
	eventController := controllers.NewEventController(db, registrations)
	checkInController := controllers.NewCheckInController(db, checkins)
	commentController := controllers.NewCommentController(db)
	assistantController := controllers.NewAssistantController(db, assistant)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// API version 1
	v1 := r.Group("/api/v1")

	// Auth routes (public)
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/register", authController.Register)
		auth.POST("/logout", authController.Logout)
	}

	// Public browse routes
	v1.GET("/events", eventController.GetEvents)
	v1.GET("/events/:id", eventController.GetEvent)
	v1.GET("/events/:id/comments", commentController.GetComments)
	v1.GET("/leaderboard", userController.GetLeaderboard)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		// User routes
		users := protected.Group("/users")
		{
			users.GET("/profile", userController.GetProfile)
			users.PUT("/profile", userController.UpdateProfile)
		}

		// Event routes
		events := protected.Group("/events")
		{
			events.POST("/", eventController.CreateEvent)
			events.PUT("/:id", eventController.UpdateEvent)
			events.DELETE("/:id", eventController.DeleteEvent)
			events.POST("/:id/register", eventController.Register)
			events.GET("/registered", eventController.GetRegisteredEvents)
			events.GET("/:id/participants", eventController.GetParticipants)
			events.GET("/:id/ticket", eventController.GetTicket)
			events.POST("/:id/checkin", checkInController.ManualCheckIn)
			events.POST("/:id/comments", commentController.CreateComment)
			events.DELETE("/:id/comments/:commentId", commentController.DeleteComment)
		}

		// QR scanner endpoint
		protected.POST("/checkin/scan", checkInController.Scan)

		// Assistant routes
		assistantRoutes := protected.Group("/assistant")
		{
			assistantRoutes.POST("/ask", assistantController.Ask)
			assistantRoutes.POST("/draft-event", assistantController.DraftEvent)
			assistantRoutes.GET("/recommendations", assistantController.Recommendations)
		}
	}
}
