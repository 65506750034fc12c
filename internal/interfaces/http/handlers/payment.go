// internal/interfaces/http/handlers/payment.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/easyway-storefront/internal/storefront"
)

// PaymentHandler handles payment endpoints
type PaymentHandler struct {
	service *storefront.Service
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(svc *storefront.Service) *PaymentHandler {
	return &PaymentHandler{service: svc}
}

// CreatePayment handles POST /orders/:id/payment
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	orderID, ok := idParam(c, "id", "order ID")
	if !ok {
		return
	}

	device, ok := loadDevice(c, h.service)
	if !ok {
		return
	}

	payment, err := device.CreatePayment(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err, "Failed to create payment")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Payment created successfully",
		"data":    payment,
	})
}
