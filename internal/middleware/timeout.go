package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// QueryTimeout bounds every request context so a stalled store query
// fails instead of hanging the request forever. Handlers pass the
// request context to gorm via WithContext.
func QueryTimeout(d time.Duration) gin.HandlerFunc {
	if d <= 0 {
		d = 5 * time.Second
	}
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
