package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/genapagie/ovinpro/internal/server/handlers"
	"github.com/genapagie/ovinpro/pkg/token"
)

// authMiddleware verifies the Bearer token and stores the caller's user id
// in the request context.
func authMiddleware(tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := tokens.Verify(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(handlers.UserIDKey, claims.UserID)
		c.Next()
	}
}
