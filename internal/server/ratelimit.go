package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimiter enforces a fixed-window request budget per caller, backed by
// Redis so multiple instances share one budget. Callers are keyed by client
// IP since extraction endpoints sit in front of any account system.
type RateLimiter struct {
	rdb    *redis.Client
	window time.Duration
	limit  int
	prefix string
}

// NewRateLimiter builds a limiter allowing limit requests per window.
func NewRateLimiter(rdb *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{rdb: rdb, window: window, limit: limit, prefix: "mealdeck:ratelimit"}
}

// Middleware returns a gin handler that consults the limiter once per
// request. A Redis failure fails open: extraction availability matters more
// than strict budgeting.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := c.ClientIP()
		allowed, remaining, reset, err := rl.Allow(c.Request.Context(), caller)
		if err != nil {
			c.Header("X-RateLimit-Error", "rate limit check failed")
			c.Next()
			return
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))
		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate_limited",
				"message":     fmt.Sprintf("rate limit of %d requests per %v exceeded", rl.limit, rl.window),
				"retry_after": int(time.Until(reset).Seconds()),
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// Allow reports whether one more request fits the caller's current window,
// along with remaining budget and the window reset time.
func (rl *RateLimiter) Allow(ctx context.Context, caller string) (bool, int, time.Time, error) {
	now := time.Now()
	windowStart := now.Truncate(rl.window)
	key := fmt.Sprintf("%s:%s:%d", rl.prefix, caller, windowStart.Unix())

	pipe := rl.rdb.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, rl.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, time.Time{}, err
	}

	count := int(incr.Val())
	reset := windowStart.Add(rl.window)
	remaining := rl.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return count <= rl.limit, remaining, reset, nil
}
