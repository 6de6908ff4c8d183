package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// eventActorID is recorded as the acting user for requests authenticated
// with the event ingestion API key.
const eventActorID = "system"

// EventAPIKeyAuth creates a Gin middleware that authenticates collaborator
// services via the x-api-key header. The configured value is a bcrypt
// hash of the shared key, so the key itself never sits in config files.
func EventAPIKeyAuth(apiKeyHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		if apiKeyHash == "" {
			logger.Error("Event API key hash not configured")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Event ingestion is not configured"})
			return
		}

		apiKey := c.GetHeader("x-api-key")
		if apiKey == "" {
			logger.Warn("x-api-key header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "x-api-key header required"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(apiKeyHash), []byte(apiKey)); err != nil {
			logger.Warn("Invalid event API key")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
			return
		}

		// Mark the request authenticated so the JWT middleware skips it
		c.Set("authMethod", "api_key")
		c.Set(string(userIDKey), eventActorID)
		ctxWithUser := context.WithValue(c.Request.Context(), userIDKey, eventActorID)
		c.Request = c.Request.WithContext(ctxWithUser)
		c.Next()
	}
}
