package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"content-hub/internal/logger"
)

const (
	// RequestIDHeader is the header name for request ID
	RequestIDHeader = "X-Request-ID"
	// RequestIDKey is the context key for request ID
	RequestIDKey = "request_id"
	// LoggerKey is the context key for the request-scoped logger
	LoggerKey = "logger"
)

// RequestID middleware adds a unique request ID to each request and a logger
// carrying it. A client-provided X-Request-ID header is reused.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(RequestIDKey, requestID)
		c.Set(LoggerKey, logger.WithRequestID(requestID))
		c.Header(RequestIDHeader, requestID)

		c.Next()
	}
}

// GetRequestID retrieves the request ID from the gin context.
func GetRequestID(c *gin.Context) string {
	if requestID, exists := c.Get(RequestIDKey); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return ""
}

// GetLogger returns the request-scoped logger, or the default logger when
// RequestID did not run.
func GetLogger(c *gin.Context) *slog.Logger {
	if l, exists := c.Get(LoggerKey); exists {
		if lg, ok := l.(*slog.Logger); ok {
			return lg
		}
	}
	return logger.Default()
}
