package api

import (
	"aifit/fitness-app/internal/service"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// UserHandler serves profile and progress endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// --- DTOs ---

type PhotoUploadURLRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

// --- Handler Methods ---

// GetProfile godoc
// @Summary Get my profile
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} gin.H "Profile"
// @Failure 401 {object} gin.H "Unauthorized"
// @Router /users/profile [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return
	}

	profile, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, "User not found.")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve profile.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// UpdateProfile godoc
// @Summary Update my profile
// @Description Merges the provided fields into the stored profile; omitted fields keep their previous values.
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body service.ProfileUpdate true "Profile fields to update"
// @Success 200 {object} gin.H "Updated profile"
// @Failure 400 {object} gin.H "Invalid profile values"
// @Failure 401 {object} gin.H "Unauthorized"
// @Router /users/profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return
	}

	var req service.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	profile, err := h.userService.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidProfile):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			abortWithError(c, http.StatusNotFound, "User not found.")
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update profile.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"profile": profile,
	})
}

// AddProgress godoc
// @Summary Add a progress entry
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param progress body service.ProgressInput true "Progress entry"
// @Success 201 {object} gin.H "Created entry"
// @Failure 401 {object} gin.H "Unauthorized"
// @Router /users/progress [post]
func (h *UserHandler) AddProgress(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return
	}

	var req service.ProgressInput
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	entry, err := h.userService.AddProgress(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, "User not found.")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to add progress entry.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Progress added successfully",
		"progress": entry,
	})
}

// GetProgress godoc
// @Summary Get my progress entries
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} gin.H "Progress entries"
// @Failure 401 {object} gin.H "Unauthorized"
// @Router /users/progress [get]
func (h *UserHandler) GetProgress(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return
	}

	progress, err := h.userService.GetProgress(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, "User not found.")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve progress.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": progress})
}

// GetProgressStats godoc
// @Summary Get progress statistics
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} gin.H "Stats"
// @Failure 401 {object} gin.H "Unauthorized"
// @Router /users/progress/stats [get]
func (h *UserHandler) GetProgressStats(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return
	}

	stats, err := h.userService.GetProgressStats(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, "User not found.")
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to compute progress stats.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// RequestPhotoUploadURL godoc
// @Summary Request a pre-signed URL for a progress photo upload
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PhotoUploadURLRequest true "Content type of the photo"
// @Success 200 {object} service.UploadURLResponse "Upload URL and object key"
// @Failure 400 {object} gin.H "Invalid content type"
// @Failure 401 {object} gin.H "Unauthorized"
// @Router /users/progress/photo-url [post]
func (h *UserHandler) RequestPhotoUploadURL(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return
	}

	var req PhotoUploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	resp, err := h.userService.RequestPhotoUploadURL(c.Request.Context(), userID, req.ContentType)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPhotoType) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to generate upload URL.")
		return
	}
	c.JSON(http.StatusOK, resp)
}
