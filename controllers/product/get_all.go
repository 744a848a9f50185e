package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/littlecubs/babyshop-api/models"
)

// GetProducts lists the catalog. Optional query params: category (exact),
// search (name substring).
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Product{})

		if category := c.Query("category"); category != "" {
			query = query.Where("category = ?", category)
		}
		if search := c.Query("search"); search != "" {
			query = query.Where("name LIKE ?", "%"+search+"%")
		}

		var products []models.Product
		if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		c.JSON(http.StatusOK, products)
	}
}
