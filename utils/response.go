package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Every response uses the {status, data?|message?} envelope.

func Success(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"status": "success", "data": data})
}

func SuccessMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": message})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"status": "error", "message": message})
}
