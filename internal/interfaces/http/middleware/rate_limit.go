package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openkyc/kyc/internal/application/dto"
	appservice "github.com/openkyc/kyc/internal/application/service"
	"github.com/openkyc/kyc/internal/domain/service"
	"github.com/openkyc/kyc/internal/infrastructure/monitoring"
	apperrors "github.com/openkyc/kyc/pkg/errors"
	"github.com/openkyc/kyc/pkg/logger"
)

// RateLimit gates requests through the limiter. The IP dimension keys on the
// client address; the user dimension keys on the authenticated user and only
// applies after RequireAuth has run.
func RateLimit(limiter service.RateLimitService, dimension service.RateLimitDimension, metrics *monitoring.Metrics, log logger.Logger) gin.HandlerFunc {
	log = log.WithComponent("rate_limit")
	return func(c *gin.Context) {
		key := c.ClientIP()
		if dimension == service.RateLimitDimensionUser {
			actor := appservice.ActorFromContext(c.Request.Context())
			if actor.UserID == "" {
				c.Next()
				return
			}
			key = actor.UserID
		}

		allowed, remaining, resetAt, err := limiter.Allow(c.Request.Context(), dimension, key)
		if err != nil {
			// Fail open: the limiter is protection, not a dependency.
			log.Error(c.Request.Context(), "rate limiter failed", err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		if !allowed {
			if metrics != nil {
				metrics.RecordRateLimitHit(string(dimension))
			}
			c.Header("Retry-After", strconv.FormatInt(int64(time.Until(resetAt).Seconds())+1, 10))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.ErrorResponse(apperrors.ErrRateLimited("too many requests"),
					TraceIDFrom(c.Request.Context())))
			return
		}
		c.Next()
	}
}
