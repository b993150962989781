package audit

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openkyc/kyc/internal/domain/models"
	"github.com/openkyc/kyc/internal/infrastructure/monitoring"
	"github.com/openkyc/kyc/pkg/constants"
)

func TestMetricsSinkCountsAuditStream(t *testing.T) {
	metrics := monitoring.NewMetrics()
	sink := NewMetricsSink(metrics)
	ctx := context.Background()

	require.NoError(t, sink.Write(ctx,
		models.NewAuditLog(constants.ActionLogin, constants.AuditResultSuccess, "ok")))
	require.NoError(t, sink.Write(ctx,
		models.NewAuditLog(constants.ActionLoginFailure, constants.AuditResultFailure, "bad password")))

	require.NoError(t, sink.Write(ctx,
		models.NewAuditLog(constants.ActionRiskAssessment, constants.AuditResultSuccess, "assessed").
			WithMetadata(map[string]interface{}{"category": "High"})))
	require.NoError(t, sink.Write(ctx,
		models.NewAuditLog(constants.ActionRiskOverride, constants.AuditResultSuccess, "no metadata")))

	require.NoError(t, sink.Write(ctx,
		models.NewAuditLog(constants.ActionCreateAlert, constants.AuditResultSuccess, "raised").
			WithMetadata(map[string]interface{}{"type": string(constants.AlertTypeSuspiciousPattern)})))

	require.NoError(t, sink.Write(ctx,
		models.NewAuditLog(constants.ActionFlagTransaction, constants.AuditResultSuccess, "flagged")))

	require.NoError(t, sink.Write(ctx,
		models.NewAuditLog(constants.ActionAccessDenied, constants.AuditResultFailure, "denied").
			WithActor("usr-1", "kyc_analyst")))

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.LoginAttempts.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.LoginAttempts.WithLabelValues("failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RiskAssessments.WithLabelValues("High")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RiskAssessments.WithLabelValues("unknown")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.AlertsRaised.WithLabelValues(string(constants.AlertTypeSuspiciousPattern))))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.StructuringHits))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.FlaggedTransactions))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.AccessDenied.WithLabelValues("kyc_analyst")))
}
