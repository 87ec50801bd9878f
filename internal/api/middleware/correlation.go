package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const CorrelationHeader = "X-Correlation-ID"

// Correlation tags every request with a correlation id, reusing the
// caller's when present.
func Correlation() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationID := c.GetHeader(CorrelationHeader)
		if correlationID == "" {
			correlationID = uuid.New().String()
		}

		c.Set("correlation_id", correlationID)
		c.Header(CorrelationHeader, correlationID)

		c.Next()
	}
}
