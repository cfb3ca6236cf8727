package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	XRequestID     = "X-Request-ID"
	XCorrelationID = "X-Correlation-ID"

	// RequestIDKey is the gin context key holding the request id
	RequestIDKey = "request_id"
)

// RequestID reuses an incoming request or correlation id, or generates one,
// and echoes it in the response headers
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(XRequestID)
		if reqID == "" {
			reqID = c.GetHeader(XCorrelationID)
		}
		if reqID == "" {
			reqID = uuid.New().String()
		}
		c.Set(RequestIDKey, reqID)
		c.Header(XRequestID, reqID)
		c.Next()
	}
}

// GetRequestID returns the id set by RequestID, "" outside of it
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}
