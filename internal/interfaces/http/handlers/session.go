package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/easyway-storefront/internal/storefront"
)

// SessionHandler exposes the device state and preferences
type SessionHandler struct {
	service *storefront.Service
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(svc *storefront.Service) *SessionHandler {
	return &SessionHandler{service: svc}
}

// PreferencesRequest updates language and/or delivery location
type PreferencesRequest struct {
	Language         *string `json:"language"`
	SelectedLocation *string `json:"selectedLocation"`
}

// GetState handles GET /session
func (h *SessionHandler) GetState(c *gin.Context) {
	device, ok := loadDevice(c, h.service)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Session state retrieved successfully",
		"data":    device.State(),
	})
}

// GetPreferences handles GET /preferences
func (h *SessionHandler) GetPreferences(c *gin.Context) {
	device, ok := loadDevice(c, h.service)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Preferences retrieved successfully",
		"data":    device.Preferences(),
	})
}

// UpdatePreferences handles PUT /preferences
func (h *SessionHandler) UpdatePreferences(c *gin.Context) {
	var req PreferencesRequest
	if !bindJSON(c, &req) {
		return
	}

	device, ok := loadDevice(c, h.service)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if req.Language != nil {
		if err := device.SetLanguage(ctx, *req.Language); err != nil {
			respondError(c, err, "Failed to update language")
			return
		}
	}
	if req.SelectedLocation != nil {
		if err := device.SetSelectedLocation(ctx, *req.SelectedLocation); err != nil {
			respondError(c, err, "Failed to update location")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Preferences updated successfully",
		"data":    device.Preferences(),
	})
}
