// Package logger defines the structured logging interface used across the service.
// The production implementation (zap-backed) lives in internal/infrastructure/monitoring;
// this package only carries the contract and a no-op implementation for tests.
package logger

import "context"

// Fields is a set of key-value pairs attached to a log entry.
type Fields map[string]interface{}

// Logger is the structured, context-aware logging interface.
// Implementations are expected to pull the trace ID out of the context.
type Logger interface {
	// Debug logs a debug message.
	Debug(ctx context.Context, msg string, fields ...Fields)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, fields ...Fields)

	// Warn logs a warning message.
	Warn(ctx context.Context, msg string, fields ...Fields)

	// Error logs an error message with the triggering error.
	Error(ctx context.Context, msg string, err error, fields ...Fields)

	// Fatal logs a fatal message and terminates the process.
	Fatal(ctx context.Context, msg string, err error, fields ...Fields)

	// WithFields returns a logger that attaches the given fields to every entry.
	WithFields(fields Fields) Logger

	// WithComponent returns a logger tagged with a component name.
	WithComponent(component string) Logger
}
