package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/easyway-storefront/internal/api"
	"github.com/your-org/easyway-storefront/internal/storefront"
)

// FavoritesHandler handles favorite product endpoints
type FavoritesHandler struct {
	service *storefront.Service
}

// NewFavoritesHandler creates a new favorites handler
func NewFavoritesHandler(svc *storefront.Service) *FavoritesHandler {
	return &FavoritesHandler{service: svc}
}

// GetFavorites handles GET /favorites
func (h *FavoritesHandler) GetFavorites(c *gin.Context) {
	device, ok := loadDevice(c, h.service)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Favorites retrieved successfully",
		"data":    device.Favorites(),
	})
}

// ToggleFavorite handles POST /favorites/:id/toggle
func (h *FavoritesHandler) ToggleFavorite(c *gin.Context) {
	h.mutate(c, (*storefront.Device).ToggleFavorite, "Favorite updated successfully")
}

// AddFavorite handles PUT /favorites/:id
func (h *FavoritesHandler) AddFavorite(c *gin.Context) {
	h.mutate(c, (*storefront.Device).AddFavorite, "Product added to favorites")
}

// RemoveFavorite handles DELETE /favorites/:id
func (h *FavoritesHandler) RemoveFavorite(c *gin.Context) {
	h.mutate(c, (*storefront.Device).RemoveFavorite, "Product removed from favorites")
}

// SyncFavorites handles POST /favorites/sync
func (h *FavoritesHandler) SyncFavorites(c *gin.Context) {
	device, ok := loadDevice(c, h.service)
	if !ok {
		return
	}

	favorites, err := device.SyncFavorites(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to sync favorites")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Favorites synced successfully",
		"data":    favorites,
	})
}

type favoriteOp func(*storefront.Device, context.Context, int64) (storefront.FavoriteMutation, error)

func (h *FavoritesHandler) mutate(c *gin.Context, op favoriteOp, message string) {
	productID, ok := idParam(c, "id", "product ID")
	if !ok {
		return
	}

	device, ok := loadDevice(c, h.service)
	if !ok {
		return
	}

	mutation, err := op(device, c.Request.Context(), productID)
	if err != nil {
		if mutation.Outcome != storefront.OutcomeRolledBack || errors.Is(err, api.ErrUnauthorized) {
			respondError(c, err, "Failed to update favorites")
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Favorite change was rejected by the store and undone",
			"details": err.Error(),
			"data":    mutation,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"data":    mutation,
	})
}
