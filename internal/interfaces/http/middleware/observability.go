package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/openkyc/kyc/internal/infrastructure/monitoring"
	"github.com/openkyc/kyc/pkg/logger"
)

// Observability wraps each request in a trace span, records the Prometheus
// request metrics, and emits one structured access log line.
func Observability(tracer trace.Tracer, metrics *monitoring.Metrics, log logger.Logger) gin.HandlerFunc {
	log = log.WithComponent("http")
	return func(c *gin.Context) {
		start := time.Now()

		ctx, span := tracer.Start(c.Request.Context(), c.Request.Method+" "+c.FullPath())
		defer span.End()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = "not_found"
		}

		if metrics != nil {
			metrics.RecordHTTPRequest(c.Request.Method, path, strconv.Itoa(status), duration)
		}
		span.SetAttributes(
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.path", path),
			attribute.Int("http.status_code", status),
			attribute.String("http.client_ip", c.ClientIP()),
		)

		fields := logger.Fields{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      status,
			"duration_ms": duration.Milliseconds(),
			"client_ip":   c.ClientIP(),
		}
		if status >= 500 {
			log.Error(c.Request.Context(), "request failed", nil, fields)
		} else {
			log.Info(c.Request.Context(), "request completed", fields)
		}
	}
}
