package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/infrastructure/ratelimit"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/constants"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/utils"
)

// RateLimiter applies a sliding-window budget per authenticated user,
// falling back to the client IP before authentication.
type RateLimiter struct {
	limiter ratelimit.RateLimiter
	policy  ratelimit.Policy
	logger  logger.Interface
}

func NewRateLimiter(limiter ratelimit.RateLimiter, policy ratelimit.Policy, logger logger.Interface) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
		policy:  policy,
		logger:  logger,
	}
}

// Limit scopes the budget by name so separate route groups do not share a counter.
func (rl *RateLimiter) Limit(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.policy.Enabled() {
			c.Next()
			return
		}

		subject := c.GetString(constants.ContextKeyUserID)
		if subject == "" {
			subject = "ip:" + c.ClientIP()
		}
		key := scope + ":" + subject

		allowed, err := rl.limiter.Allow(c.Request.Context(), key, rl.policy)
		if err != nil {
			// limiter backend down: fail open
			rl.logger.Warnw("rate limiter unavailable", "error", err, "key", key)
			c.Next()
			return
		}

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(rl.policy.Window.Seconds())))
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
