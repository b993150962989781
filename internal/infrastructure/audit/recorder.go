// Package audit implements the audit trail recorder and its sinks. The
// database sink is the system of record; the Kafka sink streams entries to
// downstream compliance tooling when enabled.
package audit

import (
	"context"

	"github.com/openkyc/kyc/internal/domain/models"
	"github.com/openkyc/kyc/internal/domain/service"
	"github.com/openkyc/kyc/pkg/logger"
)

// Sink is one destination for audit entries.
type Sink interface {
	Write(ctx context.Context, entry *models.AuditLog) error
}

// Recorder fans every entry out to all configured sinks. Sink failures are
// logged and swallowed: an unavailable audit destination must never fail the
// business operation that produced the entry.
type Recorder struct {
	sinks  []Sink
	logger logger.Logger
}

// NewRecorder creates the audit recorder over the given sinks.
func NewRecorder(log logger.Logger, sinks ...Sink) service.AuditService {
	return &Recorder{
		sinks:  sinks,
		logger: log.WithComponent("audit_recorder"),
	}
}

func (r *Recorder) Record(ctx context.Context, entry *models.AuditLog) {
	if entry == nil {
		return
	}
	for _, sink := range r.sinks {
		if err := sink.Write(ctx, entry); err != nil {
			r.logger.Error(ctx, "audit sink write failed", err, logger.Fields{
				"event_id": entry.EventID.String(),
				"action":   string(entry.Action),
			})
		}
	}
}
