package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/littlecubs/babyshop-api/auth"
	"github.com/littlecubs/babyshop-api/config"
	productcontroller "github.com/littlecubs/babyshop-api/controllers/product"
)

// SetupAuthRoutes registers the public endpoints: sign-up/sign-in, guest
// sessions and catalog browsing.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", auth.Register(db, cfg.JWTSecret))
		authGroup.POST("/login", auth.Login(db, cfg.JWTSecret))
		authGroup.POST("/guest", auth.CreateGuestSession(db, cfg.JWTSecret))
	}

	// Catalog browsing needs no session
	r.GET("/api/products", productcontroller.GetProducts(db))
	r.GET("/api/products/:id", productcontroller.GetProductByID(db))
}
