// utils/response.go
package utils

import "github.com/gin-gonic/gin"

// RespondWithError writes the single JSON error shape used across the API.
func RespondWithError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}
