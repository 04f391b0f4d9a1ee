package middleware

import (
	"net/http"

	"congrego/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Access is the level a route demands. Every route carries exactly one,
// declared next to its registration, so the whole surface's policy is
// readable in one place.
type Access int

const (
	Public Access = iota
	Authenticated
	Admin
)

// Require gates a route at the given access level. It assumes
// Authenticate already ran and left user_id/role (or auth_error) on the
// context.
func Require(level Access) gin.HandlerFunc {
	return func(c *gin.Context) {
		if level == Public {
			c.Next()
			return
		}

		if msg := c.GetString("auth_error"); msg != "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", msg)
			c.Abort()
			return
		}
		if c.GetInt64("user_id") == 0 {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			c.Abort()
			return
		}

		if level == Admin && c.GetString("role") != "admin" {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}
