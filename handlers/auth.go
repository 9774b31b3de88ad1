package handlers

import (
	"context"
	"net/http"
	"time"

	"amedick/middleware"
	"amedick/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TokenRevoker denylists a token until it would have expired anyway.
type TokenRevoker interface {
	Revoke(ctx context.Context, token string, expiresAt time.Time) error
}

type AuthHandler struct {
	Revoker TokenRevoker
}

func NewAuthHandler(revoker TokenRevoker) *AuthHandler {
	return &AuthHandler{Revoker: revoker}
}

// LogoutHandler handles POST /auth/logout.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	token, expiresAt := middleware.CurrentToken(c)
	if token == "" {
		utils.JSONError(c, http.StatusUnauthorized, "Not authorized, no token", "unauthorized")
		return
	}
	if err := h.Revoker.Revoke(c.Request.Context(), token, expiresAt); err != nil {
		getLogger(c).Error("Failed to revoke token", zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
