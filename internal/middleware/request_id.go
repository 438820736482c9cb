package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader carries the request ID in requests and responses
	RequestIDHeader = "X-Request-ID"

	requestIDKey = "request_id"
)

// RequestID is a Gin middleware that assigns every request an ID.
// An incoming X-Request-ID header is reused, otherwise a new UUID is generated.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(requestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

// GetRequestID returns the request ID stored in the context by RequestID
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
