package middleware

import (
	"time"

	"usergate/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIdKey = "request_id"

// RequestAudit tags every request with a generated id, echoes it back in the
// X-Request-Id response header and logs the outcome after the handler ran.
func RequestAudit() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set(requestIdKey, id)
		c.Writer.Header().Set("X-Request-Id", id)

		start := time.Now()
		c.Next()

		caller := "-"
		if principal, ok := GetPrincipal(c); ok {
			caller = principal.Name
		}
		logger.Debugf("%s %s %d user=%s rid=%s took=%s",
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			caller,
			id,
			time.Since(start),
		)
	}
}

// GetRequestId returns the id assigned by RequestAudit, or an empty string
// when the middleware did not run.
func GetRequestId(c *gin.Context) string {
	return c.GetString(requestIdKey)
}
