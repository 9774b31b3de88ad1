package middleware

import (
	"net/http"

	"amedick/models"
	"amedick/utils"

	"github.com/gin-gonic/gin"
)

// Require admits the request only when the authenticated principal holds every capability.
// It must run after Authenticate.
func Require(caps ...models.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := CurrentPrincipal(c)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "Not authorized, no token", "unauthorized")
			return
		}
		if !p.Can(caps...) {
			utils.JSONError(c, http.StatusForbidden, "Access denied", "forbidden")
			return
		}
		c.Next()
	}
}

// RequireRole narrows a route shared by several roles' capabilities to specific roles.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := CurrentPrincipal(c)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "Not authorized, no token", "unauthorized")
			return
		}
		for _, r := range roles {
			if p.Role == r {
				c.Next()
				return
			}
		}
		utils.JSONError(c, http.StatusForbidden, "Access denied", "forbidden")
	}
}
