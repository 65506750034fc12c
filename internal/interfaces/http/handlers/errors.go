// internal/interfaces/http/handlers/errors.go
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/easyway-storefront/internal/api"
	"github.com/your-org/easyway-storefront/internal/domain/catalog"
	"github.com/your-org/easyway-storefront/internal/domain/user"
	"github.com/your-org/easyway-storefront/internal/interfaces/http/middleware"
	"github.com/your-org/easyway-storefront/internal/store"
	"github.com/your-org/easyway-storefront/internal/storefront"
	"github.com/your-org/easyway-storefront/internal/validation"
)

// respondError maps service errors onto HTTP responses
func respondError(c *gin.Context, err error, fallback string) {
	_ = c.Error(err)

	if fields, ok := validation.AsFieldErrors(err); ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "Validation failed",
			"details": fields,
		})
		return
	}

	var httpErr *api.HTTPError
	var envErr *api.EnvelopeError

	switch {
	case errors.Is(err, storefront.ErrLoginRequired), errors.Is(err, api.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Login required",
			"details": err.Error(),
		})
	case errors.Is(err, user.ErrAddressNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Address not found",
		})
	case errors.Is(err, catalog.ErrUnsupportedLocale), errors.Is(err, store.ErrEmptyLocation):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
	case errors.Is(err, storefront.ErrEmptyCart), errors.Is(err, storefront.ErrCartNotSynced):
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
		})
	case errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound:
		c.JSON(http.StatusNotFound, gin.H{
			"error":   fallback,
			"details": httpErr.Message,
		})
	case errors.As(err, &httpErr):
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   fallback,
			"details": httpErr.Message,
		})
	case errors.As(err, &envErr):
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   fallback,
			"details": envErr.Message,
		})
	case errors.Is(err, api.ErrEmptyResults):
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   fallback,
			"details": "backend returned no data",
		})
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, gin.H{
			"error": "Request timeout",
		})
	case errors.Is(err, api.ErrNetwork):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Storefront backend unavailable",
			"details": err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": fallback,
		})
	}
}

// loadDevice binds the request to its device's storefront
func loadDevice(c *gin.Context, svc *storefront.Service) (*storefront.Device, bool) {
	deviceID, ok := middleware.GetDeviceIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Device ID required",
		})
		return nil, false
	}

	device, err := svc.Device(c.Request.Context(), deviceID)
	if err != nil {
		respondError(c, err, "Failed to load device state")
		return nil, false
	}
	return device, true
}

// idParam parses a positive integer path parameter
func idParam(c *gin.Context, name, label string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid " + label,
		})
		return 0, false
	}
	return id, true
}

// bindJSON decodes the request body, answering 400 on malformed input
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return false
	}
	return true
}
