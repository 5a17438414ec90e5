// internal/interfaces/http/handlers/profile.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/smartshop-backend/internal/domain/profile"
	"github.com/your-org/smartshop-backend/internal/interfaces/http/middleware"
)

// ProfileHandler handles user profile endpoints
type ProfileHandler struct {
	profileService *profile.Service
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *profile.Service) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

// Get handles GET /profile
func (h *ProfileHandler) Get(c *gin.Context) {
	sessionID := middleware.SessionID(c)

	p, err := h.profileService.Get(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load profile",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile retrieved successfully",
		"data":    p,
	})
}

type updateProfileRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone"`
}

// Update handles PUT /profile
func (h *ProfileHandler) Update(c *gin.Context) {
	sessionID := middleware.SessionID(c)

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	p, err := h.profileService.Update(c.Request.Context(), sessionID, req.Name, req.Email, req.Phone)
	if errors.Is(err, profile.ErrInvalidProfile) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Profile requires a name and email",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update profile",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"data":    p,
	})
}

// UploadAvatar handles POST /profile/avatar
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	sessionID := middleware.SessionID(c)

	file, _, err := c.Request.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing avatar file",
		})
		return
	}
	defer file.Close()

	p, err := h.profileService.UploadAvatar(c.Request.Context(), sessionID, file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Could not process the uploaded image",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Avatar uploaded successfully",
		"data":    p,
	})
}

// EnhanceAvatar handles POST /profile/avatar/enhance
func (h *ProfileHandler) EnhanceAvatar(c *gin.Context) {
	sessionID := middleware.SessionID(c)

	p, err := h.profileService.EnhanceAvatar(c.Request.Context(), sessionID)
	if errors.Is(err, profile.ErrNoAvatar) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Upload an avatar before enhancing",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Avatar enhancement failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Avatar enhanced successfully",
		"data":    p,
	})
}

// RemoveAvatar handles DELETE /profile/avatar
func (h *ProfileHandler) RemoveAvatar(c *gin.Context) {
	sessionID := middleware.SessionID(c)

	p, err := h.profileService.RemoveAvatar(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to remove avatar",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Avatar removed successfully",
		"data":    p,
	})
}
