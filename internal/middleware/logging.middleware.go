package middleware

import (
	"time"

	"github.com/duccv/whereisit/internal/constant"
	"github.com/duccv/whereisit/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LoggingMiddleware provides request logging functionality
type LoggingMiddleware struct {
	config *MiddlewareConfig
}

// NewLoggingMiddleware creates a new logging middleware
func NewLoggingMiddleware(config *MiddlewareConfig) *LoggingMiddleware {
	return &LoggingMiddleware{
		config: config,
	}
}

// RequestLogger logs one line when a request starts and one when it completes,
// including any errors handlers attached with c.Error.
func (l *LoggingMiddleware) RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.config.LoggingEnabled {
			c.Next()
			return
		}

		start := time.Now()
		log := l.createRequestLogger(c)

		log.Debug("Request started",
			zap.String("query", c.Request.URL.RawQuery),
			zap.String("referer", c.GetHeader("Referer")))

		c.Next()

		duration := time.Since(start)
		fields := []zap.Field{
			zap.Int("status", c.Writer.Status()),
			zap.Int("size", c.Writer.Size()),
			zap.Duration("duration", duration),
		}

		if len(c.Errors) > 0 {
			for _, err := range c.Errors {
				log.Error("Request error", zap.Error(err.Err))
			}
			log.Warn("Request completed with errors", fields...)
		} else {
			log.Info("Request completed", fields...)
		}

		if duration > l.config.SlowRequestThreshold {
			log.Warn("Slow request detected", zap.Duration("duration", duration))
		}
	}
}

// createRequestLogger creates a logger with request context
func (l *LoggingMiddleware) createRequestLogger(c *gin.Context) *zap.Logger {
	fields := []zap.Field{
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
	}

	if requestID := c.GetString(constant.RequestIDKey); requestID != "" {
		fields = append(fields, zap.String(constant.RequestIDKey, requestID))
	}

	if l.config.LogIPAddress {
		fields = append(fields, zap.String("ip", getClientIP(c)))
	}

	if l.config.LogUserAgent {
		fields = append(fields, zap.String("userAgent", c.GetHeader("User-Agent")))
	}

	return logger.FromContext(c.Request.Context()).With(fields...)
}
