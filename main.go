package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"psychcare-server/internal/cache"
	"psychcare-server/internal/config"
	"psychcare-server/internal/mailer"
	"psychcare-server/internal/models"
	"psychcare-server/internal/routes"
)

func main() {
	// Load environment variables; a missing .env is fine in production
	_ = godotenv.Load()

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Environment)

	// Initialize database connection
	db, err := models.InitDB(models.DatabaseConfig{DSN: cfg.Database.DSN})
	if err != nil {
		logger.Fatal().Err(err).Msg("error connecting to database")
	}

	// Optional collaborators; both run disabled when unconfigured
	slotCache := cache.NewSlotCache(cfg.Redis, time.Duration(cfg.SlotCacheTTLSeconds)*time.Second)
	if slotCache == nil {
		logger.Info().Msg("slot cache disabled")
	}
	m := mailer.New(cfg.Mailer)
	if m == nil {
		logger.Info().Msg("outgoing mail disabled")
	}

	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin router
	router := gin.Default()

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Set up routes - passing DB and config to let routes.go create the handlers
	routes.SetupRoutes(router, db, cfg, slotCache, m, logger)

	// Start server
	serverAddr := fmt.Sprintf(":%s", cfg.Port)
	logger.Info().Str("port", cfg.Port).Msg("server starting")
	if err := router.Run(serverAddr); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}

func newLogger(environment string) zerolog.Logger {
	if environment == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}
