package middleware

import (
	"time"

	"amedick/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestLogger attaches a per-request logger tagged with a request id and logs the outcome.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		logger := utils.GetLogger().With(zap.String("requestId", requestID))
		c.Set("logger", logger)
		c.Header("X-Request-ID", requestID)

		c.Next()

		logger.Info("Request handled",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", getClientIP(c)),
		)
	}
}
