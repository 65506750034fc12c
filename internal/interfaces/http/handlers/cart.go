// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/easyway-storefront/internal/api"
	"github.com/your-org/easyway-storefront/internal/storefront"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	service *storefront.Service
}

// NewCartHandler creates a new cart handler
func NewCartHandler(svc *storefront.Service) *CartHandler {
	return &CartHandler{service: svc}
}

// AddToCartRequest adds one unit of a product
type AddToCartRequest struct {
	ProductID int64 `json:"productId" binding:"required,gt=0"`
}

// UpdateCartItemRequest sets the quantity of a line; zero removes it
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	device, ok := loadDevice(c, h.service)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    device.Cart(),
	})
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if !bindJSON(c, &req) {
		return
	}

	device, ok := loadDevice(c, h.service)
	if !ok {
		return
	}

	mutation, err := device.AddToCart(c.Request.Context(), req.ProductID)
	if err != nil {
		h.fail(c, device, mutation, err, "Failed to add item to cart")
		return
	}

	h.respond(c, device, mutation, "Item added to cart successfully")
}

// UpdateCartItem handles PUT /cart/items/:id
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	productID, ok := idParam(c, "id", "product ID")
	if !ok {
		return
	}

	var req UpdateCartItemRequest
	if !bindJSON(c, &req) {
		return
	}

	device, ok := loadDevice(c, h.service)
	if !ok {
		return
	}

	mutation, err := device.ChangeQuantity(c.Request.Context(), productID, *req.Quantity)
	if err != nil {
		h.fail(c, device, mutation, err, "Failed to update cart item")
		return
	}

	h.respond(c, device, mutation, "Cart item updated successfully")
}

// RemoveFromCart handles DELETE /cart/items/:id
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	productID, ok := idParam(c, "id", "product ID")
	if !ok {
		return
	}

	device, ok := loadDevice(c, h.service)
	if !ok {
		return
	}

	mutation, err := device.RemoveFromCart(c.Request.Context(), productID)
	if err != nil {
		h.fail(c, device, mutation, err, "Failed to remove item from cart")
		return
	}

	h.respond(c, device, mutation, "Item removed from cart successfully")
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	device, ok := loadDevice(c, h.service)
	if !ok {
		return
	}

	device.ClearCart(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
		"data":    device.Cart(),
	})
}

// SyncCart handles POST /cart/sync
func (h *CartHandler) SyncCart(c *gin.Context) {
	device, ok := loadDevice(c, h.service)
	if !ok {
		return
	}

	view, err := device.SyncCart(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to sync cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart synced successfully",
		"data":    view,
	})
}

func (h *CartHandler) respond(c *gin.Context, device *storefront.Device, mutation storefront.CartMutation, message string) {
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"data": gin.H{
			"outcome": mutation.Outcome,
			"change":  mutation.Change,
			"cart":    device.Cart(),
		},
	})
}

// fail reports a change the backend refused as a conflict carrying the restored cart
func (h *CartHandler) fail(c *gin.Context, device *storefront.Device, mutation storefront.CartMutation, err error, message string) {
	if mutation.Outcome != storefront.OutcomeRolledBack || errors.Is(err, api.ErrUnauthorized) {
		respondError(c, err, message)
		return
	}

	_ = c.Error(err)
	c.JSON(http.StatusConflict, gin.H{
		"error":   message,
		"details": err.Error(),
		"data": gin.H{
			"outcome": mutation.Outcome,
			"change":  mutation.Change,
			"cart":    device.Cart(),
		},
	})
}
