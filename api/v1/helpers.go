package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// currentUserID pulls the authenticated user from the context set by
// AuthMiddleware. Writes the 401 itself so handlers can just return.
func currentUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("userId")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "User not authenticated"})
		return "", false
	}
	return userID.(string), true
}

// queryLimit parses the limit query parameter with a default
func queryLimit(c *gin.Context, fallback int) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(fallback)))
	if err != nil || limit < 0 {
		return fallback
	}
	return limit
}
