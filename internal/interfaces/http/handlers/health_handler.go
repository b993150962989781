package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// DependencyChecker reports the health of one backing dependency.
type DependencyChecker interface {
	HealthCheck(ctx context.Context) (map[string]interface{}, error)
}

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	dependencies map[string]DependencyChecker
	version      string
}

// NewHealthHandler creates the health handler over named dependencies.
func NewHealthHandler(version string, dependencies map[string]DependencyChecker) *HealthHandler {
	return &HealthHandler{
		dependencies: dependencies,
		version:      version,
	}
}

// Liveness handles GET /health/live. It only proves the process is serving.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "alive",
		"version": h.version,
	})
}

// Readiness handles GET /health/ready. It checks every dependency and
// reports 503 when any is unavailable.
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx := c.Request.Context()
	status := http.StatusOK
	checks := make(map[string]interface{}, len(h.dependencies))

	for name, dep := range h.dependencies {
		result, err := dep.HealthCheck(ctx)
		if err != nil {
			status = http.StatusServiceUnavailable
			checks[name] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			continue
		}
		checks[name] = result
	}

	overall := "ready"
	if status != http.StatusOK {
		overall = "not_ready"
	}
	c.JSON(status, gin.H{
		"status":  overall,
		"version": h.version,
		"checks":  checks,
	})
}
