package utils

import (
	"github.com/gin-gonic/gin"
)

// RespondError writes the standard error envelope for a domain error
func RespondError(c *gin.Context, err error) {
	body := gin.H{
		"status":  "error",
		"message": err.Error(),
	}
	if kind := KindOf(err); kind != "" {
		body["kind"] = string(kind)
	}
	c.JSON(HTTPStatus(err), body)
}

// RespondData writes the standard success envelope
func RespondData(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{
		"status": "success",
		"data":   data,
	})
}
