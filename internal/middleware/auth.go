package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/curelink/admin-api/internal/response"
	"github.com/curelink/admin-api/internal/utils"
)

// AuthMiddleware resolves the caller's admin identity and role from the
// bearer token and attaches them to the request context. Handlers read
// adminID/adminRole and never touch the credential themselves.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Envelope{Success: false, Message: "Authorization header required"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ValidateJWT(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Envelope{Success: false, Message: "Invalid token"})
			return
		}

		c.Set("adminID", claims.AdminID)
		c.Set("adminRole", claims.Role)

		c.Next()
	}
}

// RequireRole short-circuits with 403 unless the resolved role is one of
// the allowed roles. Registered per route, so handlers carry no inline
// role conditionals.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("adminRole")
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, response.Envelope{Success: false, Message: "You do not have permission to perform this action"})
	}
}
