package utils

import (
	"github.com/gin-gonic/gin"
)

// RespondSuccess writes {"response": {"success": message}}.
func RespondSuccess(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"response": gin.H{"success": message}})
}

// RespondError writes {"error": {title: message}}.
func RespondError(c *gin.Context, status int, title, message string) {
	c.JSON(status, gin.H{"error": gin.H{title: message}})
}
