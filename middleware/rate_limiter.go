package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"slotbook/config"
)

// rateLimiterStore holds a map of client keys to their rate limiters.
type rateLimiterStore struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
}

var limiterStore = &rateLimiterStore{
	limiters: make(map[string]*rate.Limiter),
}

// getLimiter returns the rate limiter for a given client, creating one if it
// doesn't exist.
func (s *rateLimiterStore) getLimiter(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, exists := s.limiters[key]
	if !exists {
		perMin := config.AppConfig.MaxRequestsPerMin
		if perMin <= 0 {
			perMin = 100
		}
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMin)), perMin)
		s.limiters[key] = limiter
	}
	return limiter
}

// RateLimitMiddleware limits requests per client. Requests carrying a
// clientID path parameter are limited per client, everything else per IP, so
// one chatty client cannot starve the shared store lock for everyone.
func RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Param("clientID")
		if key == "" {
			key = c.ClientIP()
		}
		limiter := limiterStore.getLimiter(key)
		if !limiter.Allow() {
			zap.L().Warn("Rate limit exceeded", zap.String("client", key))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded. Try again later."})
			return
		}
		c.Next()
	}
}
