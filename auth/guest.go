package auth

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/littlecubs/babyshop-api/models"
)

// POST /api/auth/guest
func CreateGuestSession(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		guestID := "guest_" + generateRandomString(16)

		guest := models.GuestSession{
			ID:        guestID,
			ExpiresAt: time.Now().Add(24 * time.Hour),
		}

		if err := db.Create(&guest).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create guest session"})
			return
		}

		token, err := IssueToken(secret, guestID, "", RoleGuest)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Token generation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"guest_id":   guestID,
			"token":      token,
			"expires_at": guest.ExpiresAt,
		})
	}
}

func generateRandomString(n int) string {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "rand_guest"
	}
	return hex.EncodeToString(bytes)
}
