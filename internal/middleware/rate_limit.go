package middleware

import (
	"context"
	"fmt"
	"sync"
	"time"

	"dexboard/backend/internal/util"
	"dexboard/backend/pkg/logger"
	"dexboard/backend/pkg/redis"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter counts requests per identifier in fixed Redis windows.
// When Redis is unavailable it falls back to an in-process token bucket per identifier.
type RateLimiter struct {
	redis  *redis.Client
	limit  int
	window time.Duration
	scope  string
	log    *logger.Logger

	mu    sync.Mutex
	local map[string]*rate.Limiter
}

// NewRateLimiter creates a new rate limiter; redisClient may be nil
func NewRateLimiter(redisClient *redis.Client, limit int, window time.Duration, scope string, log *logger.Logger) *RateLimiter {
	return &RateLimiter{
		redis:  redisClient,
		limit:  limit,
		window: window,
		scope:  scope,
		log:    log,
		local:  make(map[string]*rate.Limiter),
	}
}

// Limit returns a middleware that limits requests
func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.limit <= 0 {
			c.Next()
			return
		}

		identifier := c.ClientIP()
		if userID := c.GetString(util.ContextUserIDKey); userID != "" {
			identifier = fmt.Sprintf("user:%s", userID)
		}

		if !rl.allow(c.Request.Context(), identifier) {
			c.Header("Retry-After", fmt.Sprintf("%d", int(rl.window.Seconds())))
			util.AbortWithError(c, util.ErrRateLimit("Rate limit exceeded. Please try again later."))
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) allow(ctx context.Context, identifier string) bool {
	if rl.redis != nil {
		count, err := rl.redis.IncrWithExpire(ctx, redis.RateLimitKey(identifier, rl.scope), rl.window)
		if err == nil {
			return count <= int64(rl.limit)
		}
		if rl.log != nil {
			rl.log.Warnf("Rate limit check for %s failed, using local limiter: %v", rl.scope, err)
		}
	}
	return rl.localLimiter(identifier).Allow()
}

func (rl *RateLimiter) localLimiter(identifier string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	l, ok := rl.local[identifier]
	if !ok {
		l = rate.NewLimiter(rate.Every(rl.window/time.Duration(rl.limit)), rl.limit)
		rl.local[identifier] = l
	}
	return l
}

// RateLimit creates a rate limiting middleware for general API traffic
func RateLimit(redisClient *redis.Client, limit int, log *logger.Logger) gin.HandlerFunc {
	return NewRateLimiter(redisClient, limit, time.Minute, "general", log).Limit()
}

// AuthRateLimit creates a rate limiting middleware for credential endpoints
func AuthRateLimit(redisClient *redis.Client, limit int, log *logger.Logger) gin.HandlerFunc {
	return NewRateLimiter(redisClient, limit, time.Minute, "auth", log).Limit()
}
