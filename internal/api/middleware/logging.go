package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"edeon_enerji/pkg/logger"
)

// Logging writes one line per request. 4xx log at WARN and 5xx at ERROR.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		msg := fmt.Sprintf("%s %s %d %dms", c.Request.Method, c.Request.URL.Path, status, time.Since(start).Milliseconds())
		if id := c.GetString("user_id"); id != "" {
			msg += " user=" + id
		}
		if len(c.Errors) > 0 {
			msg += " errors=" + c.Errors.String()
		}

		logger.WriteLog(levelFor(status), c.GetString("correlation_id"), "HTTP", msg)
	}
}

func levelFor(status int) string {
	switch {
	case status >= 500:
		return "ERROR"
	case status >= 400:
		return "WARN"
	default:
		return "INFO"
	}
}
