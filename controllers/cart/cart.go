package cartControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/littlecubs/babyshop-api/middleware"
	"github.com/littlecubs/babyshop-api/models"
)

type CartItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

// POST /api/user/cart
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		// Fetch product from DB
		var product models.Product
		if err := db.First(&product, "id = ?", input.ProductID).Error; err != nil {
			status := http.StatusInternalServerError
			errMsg := "Failed to validate product"
			if errors.Is(err, gorm.ErrRecordNotFound) {
				status = http.StatusBadRequest
				errMsg = "Product does not exist"
			}
			c.JSON(status, gin.H{"error": errMsg})
			return
		}

		cart, err := userCart(db, user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "User cart not found"})
			return
		}

		// Check if item already exists in the cart
		var item models.CartItem
		err = db.Where("cart_id = ? AND product_id = ?", cart.CartID, input.ProductID).First(&item).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				newItem := models.CartItem{
					CartID:    cart.CartID,
					ProductID: product.ID,
					Name:      product.Name,
					Price:     product.Price,
					Image:     product.Image,
					Quantity:  input.Quantity,
					AddedAt:   time.Now(),
				}
				if err := db.Create(&newItem).Error; err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
					return
				}
				c.JSON(http.StatusCreated, newItem)
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart item"})
			return
		}

		// Update existing cart item quantity and time
		item.Quantity = input.Quantity
		item.AddedAt = time.Now()
		if err := db.Save(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}

		c.JSON(http.StatusOK, item)
	}
}

// DELETE /api/user/cart/:product_id
func DeleteCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		productID := c.Param("product_id")

		var cart models.Cart
		if err := db.Where("user_id = ?", user.ID).First(&cart).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User cart not found"})
			return
		}

		result := db.Where("cart_id = ? AND product_id = ?", cart.CartID, productID).Delete(&models.CartItem{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted"})
	}
}

// DELETE /api/user/cart
func ClearUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var cart models.Cart
		if err := db.Where("user_id = ?", user.ID).First(&cart).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user cart"})
			return
		}

		if err := db.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

// GET /api/user/cart
func GetUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var cart models.Cart
		if err := db.Preload("Items").Where("user_id = ?", user.ID).First(&cart).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		c.JSON(http.StatusOK, cart.Items)
	}
}

// userCart loads the user's cart, creating it on first use.
func userCart(db *gorm.DB, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := db.Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID}
		err = db.Create(&cart).Error
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}
