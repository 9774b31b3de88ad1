package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"amedick/models"
	"amedick/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// AccessTokenCookie is set by the login handlers and accepted in place of the header.
	AccessTokenCookie = "accesstoken"

	principalKey = "principal"
	tokenKey     = "token"
	tokenExpKey  = "tokenExpiresAt"
)

// RevocationChecker reports whether a token was revoked before its expiry.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// Authenticate resolves the caller's principal from the bearer token or the
// access token cookie. Revoked, expired and malformed tokens are rejected with 401.
func Authenticate(revocations RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			utils.JSONError(c, http.StatusUnauthorized, "Not authorized, no token", "unauthorized")
			return
		}

		principal, expiresAt, err := utils.ParsePrincipal(tokenString)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "Not authorized, token failed", "unauthorized")
			return
		}

		if revocations != nil {
			revoked, err := revocations.IsRevoked(c.Request.Context(), tokenString)
			if err != nil {
				// Denylist unavailable: the signature and expiry checks above still hold.
				utils.GetLogger().Warn("Revocation check failed", zap.Error(err))
			} else if revoked {
				utils.JSONError(c, http.StatusUnauthorized, "Token has been revoked", "unauthorized")
				return
			}
		}

		c.Set(principalKey, principal)
		c.Set(tokenKey, tokenString)
		c.Set(tokenExpKey, expiresAt)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
		return strings.TrimSpace(cookie)
	}
	return ""
}

// CurrentPrincipal returns the principal set by Authenticate.
func CurrentPrincipal(c *gin.Context) (models.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return models.Principal{}, false
	}
	p, ok := v.(models.Principal)
	return p, ok
}

// CurrentToken returns the raw token of the request and its expiry.
func CurrentToken(c *gin.Context) (string, time.Time) {
	token := c.GetString(tokenKey)
	exp, _ := c.Get(tokenExpKey)
	expiresAt, _ := exp.(time.Time)
	return token, expiresAt
}
