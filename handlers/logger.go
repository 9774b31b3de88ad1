package handlers

import (
	"amedick/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger retrieves the request-scoped Zap logger from the Gin context, falling back to the global one.
func getLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get("logger"); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return utils.GetLogger()
}
