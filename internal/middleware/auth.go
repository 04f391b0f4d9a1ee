package middleware

import (
	"strings"

	"congrego/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// Authenticate validates a Bearer token when one is present and stores
// the caller's identity on the context. It never rejects by itself:
// access decisions belong to the policy gate, which runs after it.
func Authenticate(jwtSvc *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			c.Next()
			return
		}

		if !strings.HasPrefix(h, "Bearer ") {
			c.Set("auth_error", "Invalid Authorization header")
			c.Next()
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			c.Set("auth_error", "Empty token")
			c.Next()
			return
		}

		claims, err := jwtSvc.ValidateToken(tokenStr)
		if err != nil {
			c.Set("auth_error", "Invalid token")
			c.Next()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}
