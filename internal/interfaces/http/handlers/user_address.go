// internal/interfaces/http/handlers/user_address.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/easyway-storefront/internal/storefront"
	"github.com/your-org/easyway-storefront/internal/validation"
)

// UserAddressHandler handles delivery address endpoints
type UserAddressHandler struct {
	service *storefront.Service
}

// NewUserAddressHandler creates a new user address handler
func NewUserAddressHandler(svc *storefront.Service) *UserAddressHandler {
	return &UserAddressHandler{service: svc}
}

// GetAddresses handles GET /addresses
func (h *UserAddressHandler) GetAddresses(c *gin.Context) {
	device, ok := loadDevice(c, h.service)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Addresses retrieved successfully",
		"data":    device.Addresses(),
	})
}

// GetAddress handles GET /addresses/:id
func (h *UserAddressHandler) GetAddress(c *gin.Context) {
	device, ok := loadDevice(c, h.service)
	if !ok {
		return
	}

	address, err := device.Address(c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve address")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Address retrieved successfully",
		"data":    address,
	})
}

// CreateAddress handles POST /addresses
func (h *UserAddressHandler) CreateAddress(c *gin.Context) {
	var form validation.DeliveryAddressForm
	if !bindJSON(c, &form) {
		return
	}

	device, ok := loadDevice(c, h.service)
	if !ok {
		return
	}

	address, err := device.AddAddress(c.Request.Context(), form)
	if err != nil {
		respondError(c, err, "Failed to create address")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Address created successfully",
		"data":    address,
	})
}

// UpdateAddress handles PUT /addresses/:id
func (h *UserAddressHandler) UpdateAddress(c *gin.Context) {
	var form validation.DeliveryAddressForm
	if !bindJSON(c, &form) {
		return
	}

	device, ok := loadDevice(c, h.service)
	if !ok {
		return
	}

	address, err := device.UpdateAddress(c.Request.Context(), c.Param("id"), form)
	if err != nil {
		respondError(c, err, "Failed to update address")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Address updated successfully",
		"data":    address,
	})
}

// DeleteAddress handles DELETE /addresses/:id
func (h *UserAddressHandler) DeleteAddress(c *gin.Context) {
	device, ok := loadDevice(c, h.service)
	if !ok {
		return
	}

	if err := device.RemoveAddress(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete address")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Address deleted successfully",
	})
}

// SetDefaultAddress handles PUT /addresses/:id/default
func (h *UserAddressHandler) SetDefaultAddress(c *gin.Context) {
	device, ok := loadDevice(c, h.service)
	if !ok {
		return
	}

	if err := device.SetDefaultAddress(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to set default address")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Default address updated successfully",
		"data":    device.Addresses(),
	})
}
