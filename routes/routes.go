package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/littlecubs/babyshop-api/config"
)

// SetupRoutes is the single entry-point that wires up Auth, User, Order and
// Admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db, cfg)

	// User routes (JWT-protected)
	SetupUserRoutes(r, db, cfg)

	// Order routes (JWT-protected, plus guest checkout)
	SetupOrderRoutes(r, db, cfg)

	// Admin routes (API-key-protected)
	SetupAdminRoutes(r, db, cfg)
}
