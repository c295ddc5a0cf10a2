package api

import (
	"aifit/fitness-app/internal/domain"
	"aifit/fitness-app/internal/service"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// DietHandler serves diet generation, meal history and meal logging endpoints.
type DietHandler struct {
	generationService service.GenerationService
}

// NewDietHandler creates a new DietHandler.
func NewDietHandler(generationService service.GenerationService) *DietHandler {
	return &DietHandler{generationService: generationService}
}

// --- DTOs ---

type LogMealRequest struct {
	MealType  string   `json:"mealType" binding:"required"`
	FoodItems []string `json:"foodItems,omitempty"`
	Calories  *float64 `json:"calories,omitempty"`
	Notes     string   `json:"notes,omitempty"`
}

// --- Handler Methods ---

// GenerateDiet godoc
// @Summary Generate a personalized meal plan
// @Description Calculates the calorie target (unless one is supplied), runs the generation pipeline, and appends the plan to the meal history.
// @Tags Diet
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param preferences body service.DietPreferences true "Diet preferences"
// @Success 200 {object} gin.H "Generated diet plan and calculated calories"
// @Failure 400 {object} gin.H "Incomplete profile"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Generation or persistence failure"
// @Router /diet/generate [post]
func (h *DietHandler) GenerateDiet(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return
	}

	var prefs service.DietPreferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	entry, calories, err := h.generationService.GenerateDiet(c.Request.Context(), userID, prefs)
	if err != nil {
		respondGenerationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":            "Diet plan generated successfully",
		"entryId":            entry.ID.Hex(),
		"dietPlan":           entry.Plan,
		"calculatedCalories": calories,
	})
}

// GetMealHistory godoc
// @Summary Get my meal history
// @Tags Diet
// @Produce json
// @Security BearerAuth
// @Success 200 {object} gin.H "Meal history in chronological append order"
// @Failure 401 {object} gin.H "Unauthorized"
// @Router /diet/history [get]
func (h *DietHandler) GetMealHistory(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return
	}

	history, err := h.generationService.MealHistory(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, "User not found.")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve meal history.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"meals": history})
}

// LogMeal godoc
// @Summary Log a meal manually
// @Tags Diet
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param meal body LogMealRequest true "Meal details"
// @Success 201 {object} gin.H "Logged meal entry"
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 401 {object} gin.H "Unauthorized"
// @Router /diet/log [post]
func (h *DietHandler) LogMeal(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return
	}

	var req LogMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	entry, err := h.generationService.LogMeal(c.Request.Context(), userID, domain.MealLog{
		MealType:  req.MealType,
		FoodItems: req.FoodItems,
		Calories:  req.Calories,
		Notes:     req.Notes,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, "User not found.")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to log meal.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Meal logged successfully",
		"meal":    entry,
	})
}
