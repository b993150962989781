package audit

import (
	"context"
	"encoding/json"

	"github.com/openkyc/kyc/internal/domain/models"
	"github.com/openkyc/kyc/internal/infrastructure/monitoring"
	"github.com/openkyc/kyc/pkg/constants"
)

// MetricsSink derives the domain Prometheus counters from the audit stream.
// Every counted event is already audited, so feeding the counters from the
// fan-out keeps the application services free of metrics plumbing.
type MetricsSink struct {
	metrics *monitoring.Metrics
}

// NewMetricsSink creates the metrics sink.
func NewMetricsSink(metrics *monitoring.Metrics) *MetricsSink {
	return &MetricsSink{metrics: metrics}
}

func (s *MetricsSink) Write(_ context.Context, entry *models.AuditLog) error {
	switch entry.Action {
	case constants.ActionLogin:
		s.metrics.RecordLoginAttempt("success")
	case constants.ActionLoginFailure:
		s.metrics.RecordLoginAttempt("failure")
	case constants.ActionRiskAssessment, constants.ActionRiskOverride:
		s.metrics.RecordRiskAssessment(metadataField(entry, "category"))
	case constants.ActionCreateAlert:
		alertType := metadataField(entry, "type")
		s.metrics.RecordAlertRaised(alertType)
		if alertType == string(constants.AlertTypeSuspiciousPattern) {
			s.metrics.StructuringHits.Inc()
		}
	case constants.ActionFlagTransaction:
		if entry.Result == constants.AuditResultSuccess {
			s.metrics.FlaggedTransactions.Inc()
		}
	case constants.ActionAccessDenied:
		s.metrics.RecordAccessDenied(entry.ActorRole)
	}
	return nil
}

// metadataField reads one string field from the entry metadata, "unknown"
// when absent or unparsable.
func metadataField(entry *models.AuditLog, field string) string {
	if len(entry.Metadata) == 0 {
		return "unknown"
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(entry.Metadata, &payload); err != nil {
		return "unknown"
	}
	if v, ok := payload[field].(string); ok && v != "" {
		return v
	}
	return "unknown"
}
