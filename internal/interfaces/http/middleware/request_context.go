// Package middleware holds the gin middleware chain: request context setup,
// authentication, rate limiting, and observability.
package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/openkyc/kyc/pkg/constants"
)

// RequestContext assigns a request ID and trace ID to every request and
// exposes both as response headers. The trace ID comes from the active
// OpenTelemetry span when there is one.
func RequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		traceID := ""
		if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().IsValid() {
			traceID = span.SpanContext().TraceID().String()
		}
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctx := c.Request.Context()
		ctx = context.WithValue(ctx, constants.ContextKeyRequestID, requestID)
		ctx = context.WithValue(ctx, constants.ContextKeyTraceID, traceID)
		c.Request = c.Request.WithContext(ctx)

		c.Header("X-Request-ID", requestID)
		c.Header("X-Trace-ID", traceID)
		c.Next()
	}
}

// TraceIDFrom returns the trace ID assigned by RequestContext, or "".
func TraceIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(constants.ContextKeyTraceID).(string); ok {
		return v
	}
	return ""
}
