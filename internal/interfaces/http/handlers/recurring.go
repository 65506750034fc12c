package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/easyway-storefront/internal/storefront"
	"github.com/your-org/easyway-storefront/internal/validation"
)

// RecurringOrderHandler handles recurring order endpoints
type RecurringOrderHandler struct {
	service *storefront.Service
}

// NewRecurringOrderHandler creates a new recurring order handler
func NewRecurringOrderHandler(svc *storefront.Service) *RecurringOrderHandler {
	return &RecurringOrderHandler{service: svc}
}

// GetRecurringOrders handles GET /recurring-orders
func (h *RecurringOrderHandler) GetRecurringOrders(c *gin.Context) {
	device, ok := loadDevice(c, h.service)
	if !ok {
		return
	}

	orders, err := device.RecurringOrders(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to retrieve recurring orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Recurring orders retrieved successfully",
		"data":    orders,
	})
}

// CreateRecurringOrder handles POST /recurring-orders
func (h *RecurringOrderHandler) CreateRecurringOrder(c *gin.Context) {
	var form validation.RecurringOrderForm
	if !bindJSON(c, &form) {
		return
	}

	device, ok := loadDevice(c, h.service)
	if !ok {
		return
	}

	order, err := device.CreateRecurringOrder(c.Request.Context(), form)
	if err != nil {
		respondError(c, err, "Failed to create recurring order")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Recurring order created successfully",
		"data":    order,
	})
}

// AddItem handles PUT /recurring-orders/:id/items/:productId
func (h *RecurringOrderHandler) AddItem(c *gin.Context) {
	recurringOrderID, productID, device, ok := h.itemRequest(c)
	if !ok {
		return
	}

	if err := device.AddRecurringOrderItem(c.Request.Context(), recurringOrderID, productID); err != nil {
		respondError(c, err, "Failed to add product to recurring order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product added to recurring order",
	})
}

// RemoveItem handles DELETE /recurring-orders/:id/items/:productId
func (h *RecurringOrderHandler) RemoveItem(c *gin.Context) {
	recurringOrderID, productID, device, ok := h.itemRequest(c)
	if !ok {
		return
	}

	if err := device.RemoveRecurringOrderItem(c.Request.Context(), recurringOrderID, productID); err != nil {
		respondError(c, err, "Failed to remove product from recurring order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product removed from recurring order",
	})
}

func (h *RecurringOrderHandler) itemRequest(c *gin.Context) (int64, int64, *storefront.Device, bool) {
	recurringOrderID, ok := idParam(c, "id", "recurring order ID")
	if !ok {
		return 0, 0, nil, false
	}
	productID, ok := idParam(c, "productId", "product ID")
	if !ok {
		return 0, 0, nil, false
	}

	device, ok := loadDevice(c, h.service)
	if !ok {
		return 0, 0, nil, false
	}
	return recurringOrderID, productID, device, true
}
