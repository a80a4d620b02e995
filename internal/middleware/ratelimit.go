package middleware

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/readcoach/api/internal/limiter"
)

// RateLimitMiddleware enforces the per-user limit for one action. Fails open:
// if the limiter (Redis) is unavailable the request goes through.
func RateLimitMiddleware(l *limiter.Limiter, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l == nil {
			c.Next()
			return
		}

		clientID := c.ClientIP()
		if userID, exists := c.Get("userID"); exists {
			clientID = "user:" + strconv.FormatInt(userID.(int64), 10)
		}

		result, err := l.Check(c.Request.Context(), clientID, action)
		if err != nil {
			log.Printf("Warning: rate limit check failed for %s: %v", action, err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(result.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt, 10))

		if !result.Allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			c.Abort()
			return
		}

		c.Next()
	}
}
