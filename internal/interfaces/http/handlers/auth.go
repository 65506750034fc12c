// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/easyway-storefront/internal/storefront"
	"github.com/your-org/easyway-storefront/internal/validation"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	service *storefront.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(svc *storefront.Service) *AuthHandler {
	return &AuthHandler{service: svc}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var form validation.RegistrationForm
	if !bindJSON(c, &form) {
		return
	}

	device, ok := loadDevice(c, h.service)
	if !ok {
		return
	}

	if err := device.Register(c.Request.Context(), form); err != nil {
		respondError(c, err, "Registration failed")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful, check your email for your password",
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var form validation.LoginForm
	if !bindJSON(c, &form) {
		return
	}

	device, ok := loadDevice(c, h.service)
	if !ok {
		return
	}

	result, err := device.Login(c.Request.Context(), form)
	if err != nil {
		respondError(c, err, "Login failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"data":    result,
	})
}

// RefreshToken handles POST /auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	device, ok := loadDevice(c, h.service)
	if !ok {
		return
	}

	if err := device.RefreshSession(c.Request.Context()); err != nil {
		respondError(c, err, "Token refresh failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Session refreshed successfully",
	})
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	device, ok := loadDevice(c, h.service)
	if !ok {
		return
	}

	device.Logout(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetProfile handles GET /auth/profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	device, ok := loadDevice(c, h.service)
	if !ok {
		return
	}

	u := device.Store().User()
	if u == nil {
		respondError(c, storefront.ErrLoginRequired, "Failed to retrieve profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile retrieved successfully",
		"data":    u,
	})
}

// UpdateProfile handles PUT /auth/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var form validation.ProfileUpdateForm
	if !bindJSON(c, &form) {
		return
	}

	device, ok := loadDevice(c, h.service)
	if !ok {
		return
	}

	u, err := device.UpdateProfile(c.Request.Context(), form)
	if err != nil {
		respondError(c, err, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"data":    u,
	})
}
