package middleware

import (
	"net/http"
	"sync"
	"time"

	"amedick/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// rateLimiterStore holds a map of IP addresses to their rate limiters.
type rateLimiterStore struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	perMin   int
}

func newRateLimiterStore(perMin int) *rateLimiterStore {
	if perMin <= 0 {
		perMin = 100
	}
	return &rateLimiterStore{limiters: make(map[string]*rate.Limiter), perMin: perMin}
}

// getLimiter returns the rate limiter for a given IP, creating one if it doesn't exist.
func (s *rateLimiterStore) getLimiter(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, exists := s.limiters[ip]
	if !exists {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(s.perMin)), s.perMin)
		s.limiters[ip] = limiter
	}
	return limiter
}

// RateLimitMiddleware allows perMin requests per minute per client IP, bursting up to perMin.
func RateLimitMiddleware(perMin int) gin.HandlerFunc {
	store := newRateLimiterStore(perMin)
	return func(c *gin.Context) {
		ip := getClientIP(c)
		if !store.getLimiter(ip).Allow() {
			utils.GetLogger().Warn("Rate limit exceeded", zap.String("ip", ip))
			utils.JSONError(c, http.StatusTooManyRequests, "Too many requests, please try again later.", "rate_limited")
			return
		}
		c.Next()
	}
}
