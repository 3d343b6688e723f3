package response

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// CustomError accepts a message of any shape: plain strings, errors, or
// validation maps which are passed through as details.
func CustomError(c *gin.Context, statusCode int, code string, message any) {
	switch m := message.(type) {
	case string:
		Error(c, statusCode, code, m)
	case error:
		Error(c, statusCode, code, m.Error())
	case map[string]string:
		ErrorWithDetails(c, statusCode, code, "Validation failed", m)
	default:
		Error(c, statusCode, code, fmt.Sprint(m))
	}
}

// Abort writes an error envelope and stops the handler chain.
func Abort(c *gin.Context, statusCode int, code string, message string) {
	Error(c, statusCode, code, message)
	c.Abort()
}
