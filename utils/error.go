package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AppError is an error that knows how it should be reported to a client.
type AppError struct {
	Status  int
	Code    string
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

// NewAppError builds an AppError.
func NewAppError(status int, code, message string) *AppError {
	return &AppError{Status: status, Code: code, Message: message}
}

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err), zap.String("path", c.Request.URL.Path))

				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Error:   "internal_error",
				})
			}
		}()
		c.Next()
	}
}

// RespondError writes err as JSON. AppErrors keep their status; anything else is a 500.
func RespondError(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		c.AbortWithStatusJSON(appErr.Status, ErrorResponse{Message: appErr.Message, Error: appErr.Code})
		return
	}
	logger := GetLogger()
	if l, ok := c.Get("logger"); ok {
		if rl, ok := l.(*zap.Logger); ok {
			logger = rl
		}
	}
	logger.Error("Request failed", zap.Error(err))
	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
		Message: "Internal Server Error",
		Error:   "internal_error",
	})
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, code string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Message: message, Error: code})
}
