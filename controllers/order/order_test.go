package orderControllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/littlecubs/babyshop-api/config"
	"github.com/littlecubs/babyshop-api/models"
	"github.com/littlecubs/babyshop-api/routes"
)

const (
	testSecret = "test-secret"
	testAPIKey = "test-api-key"
)

func setupAPI(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.GuestSession{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	))

	r := gin.New()
	routes.SetupRoutes(r, db, &config.Config{JWTSecret: testSecret, AdminAPIKey: testAPIKey})
	return db, r
}

func doJSON(r *gin.Engine, method, path, token string, payload any) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "Test User",
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Token)
	return body.Token
}

func seedProducts(t *testing.T, db *gorm.DB) []models.Product {
	t.Helper()
	products := []models.Product{
		{Name: "Baby Bottle", Price: 10, Image: "bottle.jpg", Category: "feeding", Stock: 50},
		{Name: "Pacifier", Price: 5, Image: "pacifier.jpg", Category: "soothing", Stock: 100},
	}
	require.NoError(t, db.Create(&products).Error)
	return products
}

func checkoutPayload(products []models.Product) gin.H {
	return gin.H{
		"items": []gin.H{
			{"productId": products[0].ID, "quantity": 2},
			{"productId": products[1].ID},
		},
		"address": gin.H{
			"firstName": "Ada",
			"street":    "1 Main St",
			"city":      "Springfield",
			"phone":     "555-0101",
		},
	}
}

func TestPlaceOrder(t *testing.T) {
	db, r := setupAPI(t)
	token := registerUser(t, r, "ada@example.com")
	products := seedProducts(t, db)

	w := doJSON(r, http.MethodPost, "/api/order/place", token, checkoutPayload(products))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var body struct {
		Success bool         `json:"success"`
		Order   models.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.True(t, body.Success)

	order := body.Order
	// Amount is computed server-side from the snapshots: 2*10 + 1*5
	assert.Equal(t, 25.0, order.Amount)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.PaymentMethodCOD, order.PaymentMethod)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	assert.False(t, order.IsGuest)
	assert.NotEmpty(t, order.OrderRef)
	require.Len(t, order.Items, 2)
	// Name, price and image are frozen copies of the product
	assert.Equal(t, "Baby Bottle", order.Items[0].Name)
	assert.Equal(t, 10.0, order.Items[0].Price)
	assert.Equal(t, "bottle.jpg", order.Items[0].Image)
	assert.Equal(t, 2, order.Items[0].Quantity)
	// Omitted quantity defaults to 1
	assert.Equal(t, 1, order.Items[1].Quantity)
}

func TestPlaceOrder_UnknownProduct(t *testing.T) {
	_, r := setupAPI(t)
	token := registerUser(t, r, "ada@example.com")

	w := doJSON(r, http.MethodPost, "/api/order/place", token, gin.H{
		"items": []gin.H{{"productId": 999, "quantity": 1}},
		"address": gin.H{
			"firstName": "Ada",
			"street":    "1 Main St",
			"city":      "Springfield",
			"phone":     "555-0101",
		},
	})
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}

func TestPlaceOrder_ClearsCart(t *testing.T) {
	db, r := setupAPI(t)
	token := registerUser(t, r, "ada@example.com")
	products := seedProducts(t, db)

	w := doJSON(r, http.MethodPost, "/api/user/cart/", token, gin.H{
		"product_id": products[0].ID,
		"quantity":   3,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(r, http.MethodPost, "/api/order/place", token, checkoutPayload(products))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&count).Error)
	assert.Zero(t, count, "checkout should empty the cart")
}

func TestPlaceOrder_DecrementsStock(t *testing.T) {
	db, r := setupAPI(t)
	token := registerUser(t, r, "ada@example.com")
	products := seedProducts(t, db)

	w := doJSON(r, http.MethodPost, "/api/order/place", token, checkoutPayload(products))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var bottle, pacifier models.Product
	require.NoError(t, db.First(&bottle, products[0].ID).Error)
	require.NoError(t, db.First(&pacifier, products[1].ID).Error)
	assert.Equal(t, 48, bottle.Stock, "2 units ordered from stock 50")
	assert.Equal(t, 99, pacifier.Stock, "1 unit ordered from stock 100")
}

func TestPlaceOrder_InsufficientStock(t *testing.T) {
	db, r := setupAPI(t)
	token := registerUser(t, r, "ada@example.com")
	products := seedProducts(t, db)

	w := doJSON(r, http.MethodPost, "/api/order/place", token, gin.H{
		"items": []gin.H{
			// The first line fits and decrements; the second overdraws,
			// which must roll the whole checkout back.
			{"productId": products[0].ID, "quantity": 2},
			{"productId": products[1].ID, "quantity": 1000},
		},
		"address": gin.H{
			"firstName": "Ada",
			"street":    "1 Main St",
			"city":      "Springfield",
			"phone":     "555-0101",
		},
	})
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "insufficient stock")

	var bottle, pacifier models.Product
	require.NoError(t, db.First(&bottle, products[0].ID).Error)
	require.NoError(t, db.First(&pacifier, products[1].ID).Error)
	assert.Equal(t, 50, bottle.Stock, "rollback must restore the first line's stock")
	assert.Equal(t, 100, pacifier.Stock)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count, "no order may persist when a line overdraws stock")
}

func TestMyOrders(t *testing.T) {
	db, r := setupAPI(t)
	token := registerUser(t, r, "ada@example.com")
	otherToken := registerUser(t, r, "bob@example.com")
	products := seedProducts(t, db)

	for i := 0; i < 3; i++ {
		w := doJSON(r, http.MethodPost, "/api/order/place", token, checkoutPayload(products))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := doJSON(r, http.MethodGet, "/api/order/my-orders", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Success bool           `json:"success"`
		Orders  []models.Order `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.True(t, body.Success)
	assert.Len(t, body.Orders, 3)

	// Other accounts see only their own orders
	w = doJSON(r, http.MethodGet, "/api/order/my-orders", otherToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Empty(t, body.Orders)
}

func TestMyOrders_SortParams(t *testing.T) {
	db, r := setupAPI(t)
	token := registerUser(t, r, "ada@example.com")
	products := seedProducts(t, db)

	for i := 0; i < 3; i++ {
		w := doJSON(r, http.MethodPost, "/api/order/place", token, checkoutPayload(products))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := doJSON(r, http.MethodGet, "/api/order/my-orders?sort=id&dir=desc", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Orders []models.Order `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Orders, 3)
	assert.Greater(t, body.Orders[0].ID, body.Orders[1].ID)
	assert.Greater(t, body.Orders[1].ID, body.Orders[2].ID)

	w = doJSON(r, http.MethodGet, "/api/order/my-orders?sort=bogus", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetOrder_ByRef(t *testing.T) {
	db, r := setupAPI(t)
	token := registerUser(t, r, "ada@example.com")
	products := seedProducts(t, db)

	w := doJSON(r, http.MethodPost, "/api/order/place", token, checkoutPayload(products))
	require.Equal(t, http.StatusCreated, w.Code)
	var placed struct {
		Order models.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &placed))

	w = doJSON(r, http.MethodGet, "/api/order/"+placed.Order.OrderRef, token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// The numeric id resolves the same order
	w = doJSON(r, http.MethodGet, fmt.Sprintf("/api/order/%d", placed.Order.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var fetched struct {
		Order models.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, placed.Order.OrderRef, fetched.Order.OrderRef)

	// Another user cannot read it
	otherToken := registerUser(t, r, "bob@example.com")
	w = doJSON(r, http.MethodGet, "/api/order/"+placed.Order.OrderRef, otherToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGuestOrder(t *testing.T) {
	db, r := setupAPI(t)
	products := seedProducts(t, db)

	w := doJSON(r, http.MethodPost, "/api/auth/guest", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var guest struct {
		Token   string `json:"token"`
		GuestID string `json:"guest_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &guest))

	w = doJSON(r, http.MethodPost, "/api/order/guest", guest.Token, checkoutPayload(products))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var body struct {
		Order models.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Order.IsGuest)
	assert.Nil(t, body.Order.UserID)
	assert.Equal(t, guest.GuestID, body.Order.GuestID)

	// Guest checkout draws down stock the same way
	var bottle models.Product
	require.NoError(t, db.First(&bottle, products[0].ID).Error)
	assert.Equal(t, 48, bottle.Stock)
}

func TestGuestOrder_UserTokenRejected(t *testing.T) {
	db, r := setupAPI(t)
	token := registerUser(t, r, "ada@example.com")
	products := seedProducts(t, db)

	w := doJSON(r, http.MethodPost, "/api/order/guest", token, checkoutPayload(products))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminOrderStatusUpdates(t *testing.T) {
	db, r := setupAPI(t)
	token := registerUser(t, r, "ada@example.com")
	products := seedProducts(t, db)

	w := doJSON(r, http.MethodPost, "/api/order/place", token, checkoutPayload(products))
	require.Equal(t, http.StatusCreated, w.Code)
	var placed struct {
		Order models.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &placed))
	orderID := placed.Order.ID

	adminPut := func(path string, payload gin.H) *httptest.ResponseRecorder {
		raw, _ := json.Marshal(payload)
		req := httptest.NewRequest(http.MethodPut, path, bytes.NewBuffer(raw))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-API-KEY", testAPIKey)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w = adminPut(fmt.Sprintf("/admin/orders/%d/status", orderID), gin.H{"status": "shipped"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = adminPut(fmt.Sprintf("/admin/orders/%d/payment-status", orderID), gin.H{"payment_status": "paid"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var order models.Order
	require.NoError(t, db.First(&order, orderID).Error)
	assert.Equal(t, models.OrderStatusShipped, order.Status)
	assert.Equal(t, models.PaymentStatusPaid, order.PaymentStatus)

	// Values outside the closed sets are rejected
	w = adminPut(fmt.Sprintf("/admin/orders/%d/status", orderID), gin.H{"status": "teleported"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Missing API key is rejected
	raw, _ := json.Marshal(gin.H{"status": "shipped"})
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/admin/orders/%d/status", orderID), bytes.NewBuffer(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
