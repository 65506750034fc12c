// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/easyway-storefront/internal/interfaces/http/handlers"
	"github.com/your-org/easyway-storefront/internal/storefront"
)

// SetupRoutes registers every storefront route on rg. Device middleware must
// already be installed on rg.
func SetupRoutes(rg *gin.RouterGroup, svc *storefront.Service) {
	SetupSessionRoutes(rg, svc)
	SetupAuthRoutes(rg, svc)
	SetupProductRoutes(rg, svc)
	SetupCartRoutes(rg, svc)
	SetupFavoriteRoutes(rg, svc)
	SetupOrderRoutes(rg, svc)
	SetupAddressRoutes(rg, svc)
}

// SetupSessionRoutes sets up device state and preference routes
func SetupSessionRoutes(rg *gin.RouterGroup, svc *storefront.Service) {
	sessionHandler := handlers.NewSessionHandler(svc)

	rg.GET("/session", sessionHandler.GetState)
	rg.GET("/preferences", sessionHandler.GetPreferences)
	rg.PUT("/preferences", sessionHandler.UpdatePreferences)
}

// SetupAuthRoutes sets up authentication related routes
func SetupAuthRoutes(rg *gin.RouterGroup, svc *storefront.Service) {
	authHandler := handlers.NewAuthHandler(svc)

	auth := rg.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/profile", authHandler.GetProfile)
		auth.PUT("/profile", authHandler.UpdateProfile)
	}
}

// SetupProductRoutes sets up product related routes
func SetupProductRoutes(rg *gin.RouterGroup, svc *storefront.Service) {
	productHandler := handlers.NewProductHandler(svc)

	products := rg.Group("/products")
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/:id", productHandler.GetProduct)
	}
}

// SetupCartRoutes sets up cart routes; guests get a local-only cart
func SetupCartRoutes(rg *gin.RouterGroup, svc *storefront.Service) {
	cartHandler := handlers.NewCartHandler(svc)

	cart := rg.Group("/cart")
	{
		cart.GET("", cartHandler.GetCart)
		cart.DELETE("", cartHandler.ClearCart)
		cart.POST("/sync", cartHandler.SyncCart)
		cart.POST("/items", cartHandler.AddToCart)
		cart.PUT("/items/:id", cartHandler.UpdateCartItem)
		cart.DELETE("/items/:id", cartHandler.RemoveFromCart)
	}
}

// SetupFavoriteRoutes sets up favorite product routes
func SetupFavoriteRoutes(rg *gin.RouterGroup, svc *storefront.Service) {
	favoritesHandler := handlers.NewFavoritesHandler(svc)

	favorites := rg.Group("/favorites")
	{
		favorites.GET("", favoritesHandler.GetFavorites)
		favorites.POST("/sync", favoritesHandler.SyncFavorites)
		favorites.PUT("/:id", favoritesHandler.AddFavorite)
		favorites.DELETE("/:id", favoritesHandler.RemoveFavorite)
		favorites.POST("/:id/toggle", favoritesHandler.ToggleFavorite)
	}
}

// SetupOrderRoutes sets up checkout, payment and recurring order routes
func SetupOrderRoutes(rg *gin.RouterGroup, svc *storefront.Service) {
	checkoutHandler := handlers.NewCheckoutHandler(svc)
	paymentHandler := handlers.NewPaymentHandler(svc)
	recurringHandler := handlers.NewRecurringOrderHandler(svc)

	rg.POST("/checkout", checkoutHandler.Checkout)
	rg.POST("/orders/:id/payment", paymentHandler.CreatePayment)

	recurring := rg.Group("/recurring-orders")
	{
		recurring.GET("", recurringHandler.GetRecurringOrders)
		recurring.POST("", recurringHandler.CreateRecurringOrder)
		recurring.PUT("/:id/items/:productId", recurringHandler.AddItem)
		recurring.DELETE("/:id/items/:productId", recurringHandler.RemoveItem)
	}
}

// SetupAddressRoutes sets up delivery address routes
func SetupAddressRoutes(rg *gin.RouterGroup, svc *storefront.Service) {
	addressHandler := handlers.NewUserAddressHandler(svc)

	addresses := rg.Group("/addresses")
	{
		addresses.GET("", addressHandler.GetAddresses)
		addresses.POST("", addressHandler.CreateAddress)
		addresses.GET("/:id", addressHandler.GetAddress)
		addresses.PUT("/:id", addressHandler.UpdateAddress)
		addresses.DELETE("/:id", addressHandler.DeleteAddress)
		addresses.PUT("/:id/default", addressHandler.SetDefaultAddress)
	}
}
