package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// getClientIP prefers the first well-formed address in X-Forwarded-For, then X-Real-IP,
// then the socket peer.
func getClientIP(c *gin.Context) string {
	for _, candidate := range strings.Split(c.GetHeader("X-Forwarded-For"), ",") {
		if ip := strings.TrimSpace(candidate); net.ParseIP(ip) != nil {
			return ip
		}
	}
	if ip := strings.TrimSpace(c.GetHeader("X-Real-IP")); net.ParseIP(ip) != nil {
		return ip
	}
	if host, _, err := net.SplitHostPort(c.Request.RemoteAddr); err == nil {
		return host
	}
	return c.Request.RemoteAddr
}
