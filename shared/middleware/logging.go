package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "requestId"
)

// LoggingMiddleware assigns every request an id and logs one line per request
// once the handler chain has finished.
func LoggingMiddleware(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()

		entry := log.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.FullPath(),
			"status":     c.Writer.Status(),
			"latency":    time.Since(start).String(),
			"client_ip":  c.ClientIP(),
		})
		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String())
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			entry.Error("request failed")
		case status >= 400:
			entry.Warn("request rejected")
		default:
			entry.Info("request handled")
		}
	}
}

// RequestLogger returns a logger carrying the current request id.
func RequestLogger(c *gin.Context, log logrus.FieldLogger) logrus.FieldLogger {
	if id, ok := c.Get(requestIDKey); ok {
		return log.WithField("request_id", id)
	}
	return log
}
