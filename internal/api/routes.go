package api

import (
	"aifit/fitness-app/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	userService service.UserService,
	generationService service.GenerationService,
) {
	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(userService)
	workoutHandler := NewWorkoutHandler(generationService)
	dietHandler := NewDietHandler(generationService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		// --- User Routes ---
		userGroup := protected.Group("/users")
		{
			userGroup.GET("/profile", userHandler.GetProfile)
			userGroup.PUT("/profile", userHandler.UpdateProfile)
			userGroup.POST("/progress", userHandler.AddProgress)
			userGroup.GET("/progress", userHandler.GetProgress)
			userGroup.GET("/progress/stats", userHandler.GetProgressStats)
			userGroup.POST("/progress/photo-url", userHandler.RequestPhotoUploadURL)
		}

		// --- Workout Routes ---
		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.POST("/generate", workoutHandler.GenerateWorkout)
			workoutGroup.GET("/history", workoutHandler.GetWorkoutHistory)
			workoutGroup.PUT("/complete/:workoutId", workoutHandler.CompleteWorkout)
		}

		// --- Diet Routes ---
		dietGroup := protected.Group("/diet")
		{
			dietGroup.POST("/generate", dietHandler.GenerateDiet)
			dietGroup.GET("/history", dietHandler.GetMealHistory)
			dietGroup.POST("/log", dietHandler.LogMeal)
		}
	}
}
