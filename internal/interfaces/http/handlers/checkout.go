// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/easyway-storefront/internal/storefront"
)

// CheckoutHandler handles checkout endpoints
type CheckoutHandler struct {
	service *storefront.Service
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(svc *storefront.Service) *CheckoutHandler {
	return &CheckoutHandler{service: svc}
}

// Checkout handles POST /checkout
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var opts storefront.CheckoutOptions
	if c.Request.ContentLength != 0 && !bindJSON(c, &opts) {
		return
	}

	device, ok := loadDevice(c, h.service)
	if !ok {
		return
	}

	result, err := device.Checkout(c.Request.Context(), opts)
	if err != nil {
		respondError(c, err, "Failed to place order")
		return
	}

	message := "Order placed successfully"
	if result.PaymentError != "" {
		message = "Order placed, payment could not be started"
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": message,
		"data":    result,
	})
}
