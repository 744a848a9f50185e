package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/littlecubs/babyshop-api/config"
	cartControllers "github.com/littlecubs/babyshop-api/controllers/cart"
	userControllers "github.com/littlecubs/babyshop-api/controllers/user"
	"github.com/littlecubs/babyshop-api/middleware"
)

// SetupUserRoutes registers all "/api/user/*" endpoints. Requires the JWT
// auth gate.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	userGroup := r.Group("/api/user")
	userGroup.Use(middleware.UserAuth(db, cfg.JWTSecret))
	{
		// ──────────────── User Profile ────────────────
		userGroup.GET("/", userControllers.GetUser(db))
		userGroup.PUT("/", userControllers.UpdateUser(db))

		// ──────────────── Shopping Cart ────────────────
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.GetUserCart(db))
			cartGroup.POST("/", cartControllers.UpdateCartItem(db))
			cartGroup.POST("/reorder/:orderID", cartControllers.ReorderHandler(db))
			cartGroup.DELETE("/:product_id", cartControllers.DeleteCartItem(db))
			cartGroup.DELETE("/", cartControllers.ClearUserCart(db))
		}
	}
}
