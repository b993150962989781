package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	domainservice "github.com/openkyc/kyc/internal/domain/service"
	"github.com/openkyc/kyc/internal/infrastructure/ratelimit"
	"github.com/openkyc/kyc/pkg/logger"
)

func TestRateLimitRejectsAfterBudget(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := ratelimit.NewLimiter(ratelimit.Limits{
		PerIPCapacity:   2,
		PerIPRate:       0.001,
		PerUserCapacity: 2,
		PerUserRate:     0.001,
	}, logger.NewNoopLogger())
	defer limiter.Close()

	engine := gin.New()
	engine.Use(RequestContext())
	engine.GET("/", RateLimit(limiter, domainservice.RateLimitDimensionIP, nil, logger.NewNoopLogger()), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestRateLimitUserDimensionSkipsAnonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := ratelimit.NewLimiter(ratelimit.Limits{
		PerIPCapacity:   1,
		PerIPRate:       0.001,
		PerUserCapacity: 1,
		PerUserRate:     0.001,
	}, logger.NewNoopLogger())
	defer limiter.Close()

	engine := gin.New()
	engine.Use(RequestContext())
	engine.GET("/", RateLimit(limiter, domainservice.RateLimitDimensionUser, nil, logger.NewNoopLogger()), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// No authenticated actor on the context: the user limit does not apply.
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
