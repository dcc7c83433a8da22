package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit returns a process-wide token bucket limiter for the proxy
// endpoints. Burst allows short spikes; sustained traffic is capped at
// requestsPerHour.
func RateLimit(requestsPerHour int) gin.HandlerFunc {
	burst := requestsPerHour / 10
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Every(time.Hour/time.Duration(requestsPerHour)), burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			c.Abort()
			return
		}
		c.Next()
	}
}
