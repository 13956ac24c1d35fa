package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"soulsync/internal/service"
)

// OptionalAuth resolves the user ID from a bearer token when one is present
// but lets unauthenticated requests through. Used on public read endpoints
// where the visibility decision depends on who is asking.
func OptionalAuth(authService *service.AuthService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		headerParts := strings.Split(authHeader, " ")
		if len(headerParts) != 2 || headerParts[0] != "Bearer" {
			c.Next()
			return
		}

		userID, err := authService.ValidateToken(headerParts[1])
		if err != nil {
			logger.Debug("optional auth token rejected", zap.Error(err))
			c.Next()
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}
