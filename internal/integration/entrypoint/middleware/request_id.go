// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderXRequestID is the header carrying the request correlation ID.
const HeaderXRequestID = "X-Request-ID"

// requestIDKey is the gin context key under which the request ID is stored.
const requestIDKey = "request_id"

// RequestID returns a middleware that extracts the request ID from the
// incoming headers or generates one, and echoes it on the response so
// failures can be correlated across logs and clients.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(HeaderXRequestID, requestID)

		c.Next()
	}
}

// GetRequestID returns the request ID stored by the RequestID middleware,
// or an empty string when none is set.
func GetRequestID(c *gin.Context) string {
	if id, ok := c.Get(requestIDKey); ok {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}
