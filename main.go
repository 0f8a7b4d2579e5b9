// File: /main.go
package main

import (
	"context"
	"log"
	"time"

	"campushub-api/config"
	"campushub-api/database"
	"campushub-api/jobs"
	"campushub-api/middleware"
	"campushub-api/repositories"
	"campushub-api/routes"
	"campushub-api/services"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present (production uses real environment variables)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Seed database with test data (optional - for development)
	if err := database.SeedData(db); err != nil {
		log.Printf("Warning: Failed to seed database: %v", err)
	}

	// Services
	emailService := services.NewEmailService(cfg)
	store := repositories.NewEventStore(db)
	registrationService := services.NewRegistrationService(store, emailService, cfg.PointsPerRSVP)
	checkInService := services.NewCheckInService(store)

	// The assistant is optional; the API runs without it
	var assistantService *services.AssistantService
	if cfg.GeminiAPIKey != "" {
		generator, err := services.NewGeminiGenerator(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Printf("Warning: Failed to initialize assistant: %v", err)
		} else {
			assistantService = services.NewAssistantService(generator)
			defer generator.Close()
		}
	} else {
		log.Println("GEMINI_API_KEY not set, assistant endpoints disabled")
	}

	// Set Gin mode based on environment
	if cfg.Port == "8080" { // Development
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.Default()

	// Setup CORS middleware
	router.Use(routes.SetupCORS())

	// Security headers and rate limiting
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RateLimit(120, 30))

	// Setup routes
	routes.SetupRoutes(router, db, cfg, emailService, registrationService, checkInService, assistantService)

	// Background reconcile of attendee counters against the ledger
	reconcileJob := jobs.NewCounterReconcileJob(db, 15*time.Minute)
	reconcileJob.Start()
	defer reconcileJob.Stop()

	// Start server
	log.Printf("Starting CampusHub API server on port %s", cfg.Port)
	log.Printf("Health check available at: http://localhost:%s/ping", cfg.Port)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
