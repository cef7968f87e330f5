package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"connecta_backend/internal/config"
)

// APIKeyMiddleware guards the external gig ingestion endpoints. Callers
// send the shared key in X-API-Key.
func APIKeyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		expected := config.GetConfig().ExternalGigs.APIKey
		if expected == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"success": false, "message": "External gig ingestion is not configured"})
			return
		}

		key := c.GetHeader("X-API-Key")
		if subtle.ConstantTimeCompare([]byte(key), []byte(expected)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid API key"})
			return
		}

		c.Next()
	}
}
