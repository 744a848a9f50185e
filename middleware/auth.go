package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/littlecubs/babyshop-api/auth"
	"github.com/littlecubs/babyshop-api/models"
)

// Context keys set by UserAuth on success.
const (
	ContextUserKey   = "user"
	ContextUserIDKey = "user_id"
)

// UserAuth admits requests carrying a valid signed token for an active
// account and attaches the account to the request context. Every
// verification failure, malformed, expired or wrongly signed, surfaces as
// the same "Invalid token" message so callers learn nothing about which
// check failed.
func UserAuth(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)

		// Clients that serialize a missing token end up sending the
		// literal strings "null" or "undefined".
		if tokenString == "" || tokenString == "null" || tokenString == "undefined" {
			reject(c, "Not Authorized, login required")
			return
		}

		claims, err := auth.ParseToken(secret, tokenString)
		if err != nil {
			reject(c, "Invalid token")
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", claims.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				reject(c, "User not found")
				return
			}
			log.Printf("auth: user lookup failed: %v", err)
			reject(c, "Invalid token")
			return
		}

		if !user.IsActive {
			reject(c, "Account is deactivated")
			return
		}

		c.Set(ContextUserKey, &user)
		c.Set(ContextUserIDKey, user.ID)
		c.Next()
	}
}

// CurrentUser returns the account attached by UserAuth.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

// extractToken reads the Authorization bearer header, falling back to the
// legacy "token" header older clients still send.
func extractToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return c.GetHeader("token")
}

func reject(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": message})
}
