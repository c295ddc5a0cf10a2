package main

import (
	"aifit/fitness-app/internal/api"
	"aifit/fitness-app/internal/config"
	"aifit/fitness-app/internal/llm"
	"aifit/fitness-app/internal/repository/mongo"
	"aifit/fitness-app/internal/service"
	"aifit/fitness-app/internal/storage"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// @title AI Fitness API
// @version 1.0
// @description API for AI-generated workout and meal plans with progress tracking.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	logger.Info().Msg("Starting AI Fitness Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Fatal().Err(err).Msg("could not load config")
	}

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not connect to MongoDB")
	}
	defer func() {
		logger.Info().Msg("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect MongoDB")
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	logger.Info().Str("database", cfg.Database.Name).Msg("database connection established")

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		if err := mongo.EnsureUserIndexes(ctx, appDB.Collection("users")); err != nil {
			logger.Warn().Err(err).Msg("failed to create user indexes")
		}
	}()

	// --- Initialize Storage ---
	fileStorage, err := storage.NewS3Storage(cfg.S3, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize S3 storage")
	}

	// --- Initialize Generative Client ---
	groqClient, err := llm.NewGroqClient(llm.GroqOpts{
		APIKey:         cfg.Groq.APIKey,
		BaseURL:        cfg.Groq.BaseURL,
		Model:          cfg.Groq.Model,
		MaxAttempts:    cfg.Groq.MaxAttempts,
		AttemptTimeout: cfg.Groq.Timeout,
		Logger:         logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize Groq client")
	}

	// --- Initialize Repositories & Services ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	userService := service.NewUserService(userRepo, fileStorage)
	generationService := service.NewGenerationService(userRepo, groqClient, logger)

	// --- Initialize Gin Engine ---
	router := gin.Default() // includes Logger and Recovery middleware

	api.SetupRoutes(router, cfg.JWT.Secret, authService, userService, generationService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second, // generation requests wait on the model
		IdleTimeout:  120 * time.Second,
	}

	logger.Info().Str("address", cfg.Server.Address).Msg("server starting")

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("ListenAndServe error")
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("Server exiting.")
}
