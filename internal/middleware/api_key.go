package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	apperrors "homebudget/internal/errors"
)

// APIKeyMiddleware creates a Gin middleware that validates the X-API-Key
// header against the configured admin API key. With no key configured the
// protected routes are disabled.
func APIKeyMiddleware(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			abortWith(c, apperrors.WithMessage(apperrors.ErrUnavailable, "Admin endpoints are not configured"))
			return
		}
		key := c.GetHeader("X-API-Key")
		if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
			abortWith(c, apperrors.ErrInvalidAPIKey)
			return
		}
		c.Next()
	}
}
