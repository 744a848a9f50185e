package cartControllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/littlecubs/babyshop-api/middleware"
	"github.com/littlecubs/babyshop-api/models"
)

// POST /api/user/cart/reorder/:orderID — re-add a past order's line items
// to the active cart. Products already in the cart get their quantity
// incremented, the rest are inserted from the order's snapshots. The
// response reports how many items were added vs updated.
func ReorderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		orderID := c.Param("orderID")
		query := db.Preload("Items").Where("user_id = ?", user.ID)
		// Try numeric id first; if not numeric, fall back to order_ref.
		if n, convErr := strconv.ParseUint(orderID, 10, 64); convErr == nil {
			query = query.Where("id = ?", n)
		} else {
			query = query.Where("order_ref = ?", orderID)
		}

		var order models.Order
		if err := query.First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}

		var added, updated int
		err := db.Transaction(func(tx *gorm.DB) error {
			var cart models.Cart
			err := tx.Where("user_id = ?", user.ID).First(&cart).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				cart = models.Cart{UserID: user.ID}
				if err := tx.Create(&cart).Error; err != nil {
					return err
				}
			} else if err != nil {
				return err
			}

			for _, orderItem := range order.Items {
				var cartItem models.CartItem
				lookupErr := tx.Where(
					"cart_id = ? AND product_id = ?",
					cart.CartID, orderItem.ProductID,
				).First(&cartItem).Error

				if lookupErr == nil {
					cartItem.Quantity += orderItem.Quantity
					cartItem.AddedAt = time.Now()
					if err := tx.Save(&cartItem).Error; err != nil {
						return err
					}
					updated++
				} else if errors.Is(lookupErr, gorm.ErrRecordNotFound) {
					newItem := models.CartItem{
						CartID:    cart.CartID,
						ProductID: orderItem.ProductID,
						Name:      orderItem.Name,
						Price:     orderItem.Price,
						Image:     orderItem.Image,
						Quantity:  orderItem.Quantity,
						AddedAt:   time.Now(),
					}
					if err := tx.Create(&newItem).Error; err != nil {
						return err
					}
					added++
				} else {
					return lookupErr
				}
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"added":   added,
			"updated": updated,
			"message": ReorderMessage(added, updated),
		})
	}
}

// ReorderMessage mirrors the storefront's wording for the re-add toast.
func ReorderMessage(added, updated int) string {
	switch {
	case added > 0 && updated > 0:
		return fmt.Sprintf("%d new item(s) added and %d existing item(s) updated in cart!", added, updated)
	case added > 0:
		return fmt.Sprintf("%d item(s) added to cart!", added)
	default:
		return fmt.Sprintf("%d item(s) updated in cart!", updated)
	}
}
