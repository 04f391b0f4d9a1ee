// Package response renders the one JSON envelope every endpoint speaks:
// {"success": true, "data": ...} on the happy path and
// {"success": false, "error": {"code", "message", "details"?}} otherwise.
// Codes are stable machine-readable strings; messages are for humans.
package response

import "github.com/gin-gonic/gin"

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

// ErrorWithDetails attaches structured context to the error object, e.g.
// the conflicting booking ids on a 409 or field violations on a 400.
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
