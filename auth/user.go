package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/littlecubs/babyshop-api/models"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/register
func Register(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		var existing models.User
		if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Email already registered"})
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create user"})
			return
		}

		userID := uuid.NewString()
		user := models.User{
			ID:       userID,
			Email:    req.Email,
			Password: string(hash),
			Name:     req.Name,
			Phone:    req.Phone,
			IsActive: true,
			Cart:     models.Cart{UserID: userID},
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create user"})
			return
		}

		token, err := IssueToken(secret, user.ID, user.Email, RoleUser)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Token generation failed"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "token": token, "user": user})
	}
}

// POST /api/auth/login
func Login(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		var user models.User
		if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid email or password"})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid email or password"})
			return
		}
		if !user.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Account is deactivated"})
			return
		}

		token, err := IssueToken(secret, user.ID, user.Email, RoleUser)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Token generation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "token": token, "user": user})
	}
}
