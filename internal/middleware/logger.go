package middleware

import (
	"time"

	"dexboard/backend/internal/util"
	"dexboard/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextRequestIDKey holds the request id
const ContextRequestIDKey = "request_id"

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(ContextRequestIDKey, requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// Logger middleware logs HTTP requests
func Logger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()

		logFields := map[string]interface{}{
			"request_id": c.GetString(ContextRequestIDKey),
			"method":     method,
			"path":       path,
			"route":      c.FullPath(),
			"status":     statusCode,
			"latency_ms": latency.Milliseconds(),
			"ip":         c.ClientIP(),
			"user_agent": c.Request.UserAgent(),
		}

		if userID := c.GetString(util.ContextUserIDKey); userID != "" {
			logFields["user_id"] = userID
		}

		// Causes recorded by util.SendError for 5xx responses
		var cause error
		if last := c.Errors.Last(); last != nil {
			cause = last.Err
		}

		switch {
		case statusCode >= 500:
			log.WithFields(logFields).Error("Server error", cause)
		case statusCode >= 400:
			log.WithFields(logFields).Warn("Client error")
		default:
			log.WithFields(logFields).Info("Request completed")
		}
	}
}
