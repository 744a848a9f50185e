package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/littlecubs/babyshop-api/config"
	orderControllers "github.com/littlecubs/babyshop-api/controllers/order"
	"github.com/littlecubs/babyshop-api/middleware"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Guest checkout validates its own guest token
	r.POST("/api/order/guest", orderControllers.PlaceGuestOrderHandler(db, cfg.JWTSecret))

	orders := r.Group("/api/order")
	orders.Use(middleware.UserAuth(db, cfg.JWTSecret))
	{
		// Place a new order from the submitted items
		orders.POST("/place", orderControllers.PlaceOrderHandler(db))

		// Fetch the caller's orders, sortable by id/date/amount/status
		orders.GET("/my-orders", orderControllers.MyOrdersHandler(db))

		// Fetch a single order by id or order ref
		orders.GET("/:orderID", orderControllers.GetOrderHandler(db))
	}
}
