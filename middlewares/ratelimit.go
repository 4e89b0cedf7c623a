package middlewares

import (
	"net/http"
	"sync"

	"MedicApp/logger"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiterConfig sets the token bucket given to each client.
type RateLimiterConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// clientLimiters keeps one bucket per client key.
type clientLimiters struct {
	config   RateLimiterConfig
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func (l *clientLimiters) allow(key string) bool {
	l.mu.Lock()
	limiter, ok := l.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(l.config.RequestsPerSecond), l.config.Burst)
		l.limiters[key] = limiter
	}
	l.mu.Unlock()
	return limiter.Allow()
}

// clientKey identifies the caller by device token, falling back to the client IP.
func clientKey(c *gin.Context) string {
	if token := c.GetHeader(DeviceTokenHeader); token != "" {
		return "device:" + token
	}
	return "ip:" + c.ClientIP()
}

// NewRateLimiterMiddleware rejects a client that exceeds its bucket with 429.
func NewRateLimiterMiddleware(config RateLimiterConfig, log *logger.Logger) gin.HandlerFunc {
	limiters := &clientLimiters{config: config, limiters: make(map[string]*rate.Limiter)}

	return func(c *gin.Context) {
		if !limiters.allow(clientKey(c)) {
			HttpError(c, log, "Too many requests, please try again shortly", http.StatusTooManyRequests, nil)
			return
		}

		c.Next()
	}
}
