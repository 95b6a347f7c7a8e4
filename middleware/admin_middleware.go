package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminMiddleware restricts a route to users whose platform role is admin.
// It reads the role set by AuthMiddleware, so it must run after it.
// Project-level permissions are not checked here; those are decided by
// membership rows in the service layer.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Authentication required",
			})
			c.Abort()
			return
		}

		if roleStr, ok := role.(string); !ok || roleStr != "admin" {
			c.JSON(http.StatusForbidden, gin.H{
				"status":  "error",
				"message": "Admin privileges required",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
