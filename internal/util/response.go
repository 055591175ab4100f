package util

import "github.com/gin-gonic/gin"

// JSONError writes the standard error body {"message": ...}.
// Internal detail never goes to the client; callers log it themselves.
func JSONError(c *gin.Context, httpStatus int, msg string) {
	c.JSON(httpStatus, gin.H{"message": msg})
}
