package middleware

import (
	"github.com/gin-gonic/gin"

	"hungrylist/internal/infrastructure/ratelimit"
	"hungrylist/internal/shared/constants"
	"hungrylist/internal/shared/errors"
	"hungrylist/internal/shared/logger"
	"hungrylist/internal/shared/utils"
)

// RateLimiter throttles API calls per client IP.
type RateLimiter struct {
	limiter ratelimit.RateLimiter
	limits  ratelimit.Limits
	logger  logger.Interface
}

// NewRateLimiter returns nil when limiter is nil; a nil RateLimiter's Limit
// lets every request through.
func NewRateLimiter(limiter ratelimit.RateLimiter, limits ratelimit.Limits, log logger.Interface) *RateLimiter {
	if limiter == nil {
		return nil
	}
	return &RateLimiter{limiter: limiter, limits: limits, logger: log}
}

func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl == nil {
			c.Next()
			return
		}

		allowed, err := rl.limiter.Allow(c.Request.Context(), c.ClientIP(), rl.limits)
		if err != nil {
			// Redis trouble must not take the API down.
			rl.logger.Warnw("rate limiter unavailable", "error", err)
			c.Next()
			return
		}

		if !allowed {
			c.Header(constants.HeaderRetryAfter, "60")
			utils.AbortWithError(c, errors.NewRateLimitedError("Too many requests. Please slow down."))
			return
		}

		c.Next()
	}
}
