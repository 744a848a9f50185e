package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/littlecubs/babyshop-api/models"
)

type ProductUpdateInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Brand       *string  `json:"brand"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price"`
	Image       *string  `json:"image"`
	Stock       *int     `json:"stock"`
}

// PUT /admin/products/:id
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			}
			return
		}

		var input ProductUpdateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if input.Name != nil {
			product.Name = *input.Name
		}
		if input.Description != nil {
			product.Description = *input.Description
		}
		if input.Brand != nil {
			product.Brand = *input.Brand
		}
		if input.Category != nil {
			product.Category = *input.Category
		}
		if input.Price != nil {
			product.Price = *input.Price
		}
		if input.Image != nil {
			product.Image = *input.Image
		}
		if input.Stock != nil {
			product.Stock = *input.Stock
		}

		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		c.JSON(http.StatusOK, product)
	}
}
