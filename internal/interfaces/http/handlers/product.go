// internal/interfaces/http/handlers/product.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/easyway-storefront/internal/domain/catalog"
	"github.com/your-org/easyway-storefront/internal/storefront"
)

// ProductHandler handles product endpoints
type ProductHandler struct {
	service *storefront.Service
}

// NewProductHandler creates a new product handler
func NewProductHandler(svc *storefront.Service) *ProductHandler {
	return &ProductHandler{service: svc}
}

// GetProducts handles GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	var query catalog.Query
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}
	if query.PageNumber < 0 || query.PageSize < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Page number and size must not be negative",
		})
		return
	}

	device, ok := loadDevice(c, h.service)
	if !ok {
		return
	}

	page, err := device.BrowseProducts(c.Request.Context(), query)
	if err != nil {
		respondError(c, err, "Failed to retrieve products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Products retrieved successfully",
		"data":    page.Items,
		"pagination": gin.H{
			"page":        page.CurrentPage,
			"total_pages": page.TotalPages,
			"total":       page.TotalItems,
			"has_next":    page.HasMore(),
			"has_prev":    page.CurrentPage > 0,
		},
	})
}

// GetProduct handles GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	productID, ok := idParam(c, "id", "product ID")
	if !ok {
		return
	}

	device, ok := loadDevice(c, h.service)
	if !ok {
		return
	}

	product, err := device.ProductDetail(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err, "Product not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product retrieved successfully",
		"data":    product,
	})
}
