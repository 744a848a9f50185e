package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ValidateAPIKey guards the admin route group. The key comes from config,
// loaded once at startup.
func ValidateAPIKey(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" || c.GetHeader("X-API-KEY") != apiKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing API key"})
			return
		}
		c.Next()
	}
}
