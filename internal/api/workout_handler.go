package api

import (
	"aifit/fitness-app/internal/service"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutHandler serves workout generation and history endpoints.
type WorkoutHandler struct {
	generationService service.GenerationService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(generationService service.GenerationService) *WorkoutHandler {
	return &WorkoutHandler{generationService: generationService}
}

// --- DTOs ---

type CompleteWorkoutRequest struct {
	Duration *int   `json:"duration,omitempty"` // minutes
	Notes    string `json:"notes,omitempty"`
}

// --- Handler Methods ---

// GenerateWorkout godoc
// @Summary Generate a personalized workout plan
// @Description Runs the generation pipeline against the user's profile and the request preferences, then appends the plan to the workout history.
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param preferences body service.WorkoutPreferences true "Workout preferences"
// @Success 200 {object} gin.H "Generated workout plan"
// @Failure 400 {object} gin.H "Incomplete profile"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Generation or persistence failure"
// @Router /workouts/generate [post]
func (h *WorkoutHandler) GenerateWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return
	}

	var prefs service.WorkoutPreferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	entry, err := h.generationService.GenerateWorkout(c.Request.Context(), userID, prefs)
	if err != nil {
		respondGenerationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Workout plan generated successfully",
		"entryId":     entry.ID.Hex(),
		"workoutPlan": entry.Plan,
	})
}

// GetWorkoutHistory godoc
// @Summary Get my workout history
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} gin.H "Workout history in chronological append order"
// @Failure 401 {object} gin.H "Unauthorized"
// @Router /workouts/history [get]
func (h *WorkoutHandler) GetWorkoutHistory(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return
	}

	history, err := h.generationService.WorkoutHistory(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, "User not found.")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve workout history.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"workouts": history})
}

// CompleteWorkout godoc
// @Summary Mark a workout history entry as completed
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workoutId path string true "Workout history entry ObjectID Hex"
// @Param completion body CompleteWorkoutRequest true "Completion details"
// @Success 200 {object} gin.H "Updated entry"
// @Failure 400 {object} gin.H "Invalid entry ID format"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "Entry not found"
// @Router /workouts/complete/{workoutId} [put]
func (h *WorkoutHandler) CompleteWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return
	}

	entryID, err := primitive.ObjectIDFromHex(c.Param("workoutId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout ID format.")
		return
	}

	var req CompleteWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	entry, err := h.generationService.CompleteWorkout(c.Request.Context(), userID, entryID, req.Duration, req.Notes)
	if err != nil {
		if errors.Is(err, service.ErrEntryNotFound) {
			abortWithError(c, http.StatusNotFound, "Workout not found.")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to complete workout.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Workout marked as completed",
		"workout": entry,
	})
}

// respondGenerationError maps pipeline errors onto HTTP responses. Parse
// failures include the bounded diagnostic snippet, never the full payload.
func respondGenerationError(c *gin.Context, err error) {
	var parseErr *service.ResponseParseError
	switch {
	case errors.Is(err, service.ErrIncompleteProfile):
		abortWithError(c, http.StatusBadRequest, "Please complete your profile first")
	case errors.Is(err, service.ErrUserNotFound):
		abortWithError(c, http.StatusNotFound, "User not found.")
	case errors.As(err, &parseErr):
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":       "Error parsing AI response",
			"rawResponse": parseErr.Snippet,
		})
	case errors.Is(err, service.ErrGenerationService):
		abortWithError(c, http.StatusInternalServerError, "Error generating plan")
	case errors.Is(err, service.ErrPersistence):
		abortWithError(c, http.StatusInternalServerError, "Failed to save generated plan")
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
