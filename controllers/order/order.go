package orderControllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/littlecubs/babyshop-api/auth"
	"github.com/littlecubs/babyshop-api/middleware"
	"github.com/littlecubs/babyshop-api/models"
)

// -------- Request Structs --------

type OrderItemInput struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity" binding:"omitempty,min=1"`
}

type AddressInput struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Street    string `json:"street" binding:"required"`
	City      string `json:"city" binding:"required"`
	State     string `json:"state"`
	Zipcode   string `json:"zipcode"`
	Country   string `json:"country"`
	Phone     string `json:"phone" binding:"required"`
}

type PlaceOrderRequest struct {
	Items         []OrderItemInput `json:"items" binding:"required,min=1,dive"`
	Address       AddressInput     `json:"address" binding:"required"`
	PaymentMethod string           `json:"paymentMethod"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

// -------- Helpers --------

// Map string to OrderStatus
func mapOrderStatus(status string) (models.OrderStatus, error) {
	switch strings.ToLower(status) {
	case string(models.OrderStatusPending):
		return models.OrderStatusPending, nil
	case string(models.OrderStatusConfirmed):
		return models.OrderStatusConfirmed, nil
	case string(models.OrderStatusShipped):
		return models.OrderStatusShipped, nil
	case string(models.OrderStatusDelivered):
		return models.OrderStatusDelivered, nil
	case string(models.OrderStatusCancelled):
		return models.OrderStatusCancelled, nil
	default:
		return "", errors.New("invalid order status")
	}
}

// Map string to PaymentStatus
func mapPaymentStatus(status string) (models.PaymentStatus, error) {
	switch strings.ToLower(status) {
	case string(models.PaymentStatusPending):
		return models.PaymentStatusPending, nil
	case string(models.PaymentStatusPaid):
		return models.PaymentStatusPaid, nil
	case string(models.PaymentStatusFailed):
		return models.PaymentStatusFailed, nil
	case string(models.PaymentStatusRefunded):
		return models.PaymentStatusRefunded, nil
	default:
		return "", errors.New("invalid payment status")
	}
}

// Map string to PaymentMethod; empty means the schema default (cod).
func mapPaymentMethod(method string) (models.PaymentMethod, error) {
	switch strings.ToLower(method) {
	case "":
		return models.PaymentMethodCOD, nil
	case string(models.PaymentMethodCOD):
		return models.PaymentMethodCOD, nil
	case string(models.PaymentMethodStripe):
		return models.PaymentMethodStripe, nil
	case string(models.PaymentMethodPaypal):
		return models.PaymentMethodPaypal, nil
	default:
		return "", errors.New("invalid payment method")
	}
}

// Generate unique order reference
func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// -------- Core Logic --------

// buildOrderItems resolves every requested product, checks and decrements
// its stock, and freezes name, price and image into order line items. The
// total is the sum of the snapshots, never a caller-supplied number.
func buildOrderItems(tx *gorm.DB, inputs []OrderItemInput) ([]models.OrderItem, float64, error) {
	var items []models.OrderItem
	var amount float64

	for _, in := range inputs {
		var product models.Product
		if err := tx.First(&product, "id = ?", in.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, 0, errors.New("product does not exist")
			}
			return nil, 0, err
		}

		quantity := in.Quantity
		if quantity <= 0 {
			quantity = 1
		}

		if product.Stock < quantity {
			return nil, 0, errors.New("insufficient stock for product: " + product.Name)
		}

		// Deduct stock. The guard keeps stock non-negative when two
		// checkouts race on the same product.
		res := tx.Model(&models.Product{}).
			Where("id = ? AND stock >= ?", product.ID, quantity).
			UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
		if res.Error != nil {
			return nil, 0, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, 0, errors.New("insufficient stock for product: " + product.Name)
		}

		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Image:     product.Image,
			Quantity:  quantity,
		})
		amount += product.Price * float64(quantity)
	}

	return items, amount, nil
}

func addressFromInput(in AddressInput) models.OrderAddress {
	return models.OrderAddress{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Street:    in.Street,
		City:      in.City,
		State:     in.State,
		Zipcode:   in.Zipcode,
		Country:   in.Country,
		Phone:     in.Phone,
	}
}

// -------- Handlers --------

// POST /api/order/place (authenticated user)
func PlaceOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		success := false
		defer func() { middleware.RecordOrderOperation("create", success) }()

		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not Authorized, login required"})
			return
		}

		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		method, err := mapPaymentMethod(req.PaymentMethod)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		var order models.Order
		err = db.Transaction(func(tx *gorm.DB) error {
			items, amount, err := buildOrderItems(tx, req.Items)
			if err != nil {
				return err
			}

			order = models.Order{
				OrderRef:      generateOrderRef(),
				UserID:        &user.ID,
				Items:         items,
				Amount:        amount,
				Address:       addressFromInput(req.Address),
				PaymentMethod: method,
			}
			if err := tx.Create(&order).Error; err != nil {
				return err
			}

			// Checkout empties the active cart.
			var cart models.Cart
			if err := tx.Where("user_id = ?", user.ID).First(&cart).Error; err == nil {
				if err := tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		success = true
		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Order placed successfully", "order": order})
	}
}

// POST /api/order/guest — guest checkout with a guest-session token. Guest
// orders carry no account reference, only the session id and the isGuest
// flag.
func PlaceGuestOrderHandler(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		success := false
		defer func() { middleware.RecordOrderOperation("create_guest", success) }()

		tokenString := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		claims, err := auth.ParseToken(secret, tokenString)
		if err != nil || claims.Role != auth.RoleGuest {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token"})
			return
		}

		var session models.GuestSession
		if err := db.First(&session, "id = ?", claims.UserID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token"})
			return
		}
		if time.Now().After(session.ExpiresAt) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token"})
			return
		}

		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		method, err := mapPaymentMethod(req.PaymentMethod)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		var order models.Order
		err = db.Transaction(func(tx *gorm.DB) error {
			items, amount, err := buildOrderItems(tx, req.Items)
			if err != nil {
				return err
			}
			order = models.Order{
				OrderRef:      generateOrderRef(),
				GuestID:       session.ID,
				IsGuest:       true,
				Items:         items,
				Amount:        amount,
				Address:       addressFromInput(req.Address),
				PaymentMethod: method,
			}
			return tx.Create(&order).Error
		})
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		success = true
		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Order placed successfully", "order": order})
	}
}

// GET /api/order/my-orders (authenticated user)
func MyOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		success := false
		defer func() { middleware.RecordOrderOperation("list", success) }()

		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not Authorized, login required"})
			return
		}

		var orders []models.Order
		if err := db.
			Where("user_id = ?", user.ID).
			Preload("Items").
			Order("date DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch orders"})
			return
		}

		key, desc, err := sortParams(c.Query("sort"), c.Query("dir"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		sortOrders(orders, key, desc)

		success = true
		c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
	}
}

// GET /api/order/:orderID (authenticated user) — numeric id or order ref.
func GetOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not Authorized, login required"})
			return
		}

		id := c.Param("orderID")
		query := db.Preload("Items").Where("user_id = ?", user.ID)
		// Try numeric id first; if not numeric, fall back to order_ref.
		if n, convErr := strconv.ParseUint(id, 10, 64); convErr == nil {
			query = query.Where("id = ?", n)
		} else {
			query = query.Where("order_ref = ?", id)
		}

		var order models.Order
		if err := query.First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch order"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
	}
}

// GET /admin/orders
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("Items").
			Order("date DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// PUT /admin/orders/:orderID/status
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		success := false
		defer func() { middleware.RecordOrderOperation("update_status", success) }()

		orderID := c.Param("orderID")
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, err := mapOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		result := db.Model(&models.Order{}).Where("id = ?", orderID).Update("status", newStatus)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order status"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}

		success = true
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully"})
	}
}

// PUT /admin/orders/:orderID/payment-status
func UpdatePaymentStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		success := false
		defer func() { middleware.RecordOrderOperation("update_payment_status", success) }()

		orderID := c.Param("orderID")
		var req UpdatePaymentStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, err := mapPaymentStatus(req.PaymentStatus)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		result := db.Model(&models.Order{}).Where("id = ?", orderID).Update("payment_status", newStatus)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update payment status"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}

		success = true
		c.JSON(http.StatusOK, gin.H{"message": "Payment status updated successfully"})
	}
}
