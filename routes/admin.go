package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/littlecubs/babyshop-api/config"
	orderControllers "github.com/littlecubs/babyshop-api/controllers/order"
	productcontroller "github.com/littlecubs/babyshop-api/controllers/product"
	userControllers "github.com/littlecubs/babyshop-api/controllers/user"
	"github.com/littlecubs/babyshop-api/middleware"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires the API-key
// middleware; status and payment-status writes come from back-office tools
// and payment webhooks.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey(cfg.AdminAPIKey))
	{
		// ─────────── User Management ───────────
		adminGroup.GET("/users", userControllers.GetAllUsers(db))
		adminGroup.PUT("/users/:userID/active", userControllers.SetUserActive(db))

		// ─────────── Order Management ───────────
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(db))
			orderAdmin.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(db))
			orderAdmin.PUT("/:orderID/payment-status", orderControllers.UpdatePaymentStatusHandler(db))
			orderAdmin.GET("/export-excel", orderControllers.ExportOrdersToExcel(db))
		}

		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productcontroller.CreateProduct(db))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(db))
			productAdmin.GET("", productcontroller.GetProducts(db))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(db))
		}
	}
}
