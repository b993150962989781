package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openkyc/kyc/internal/domain/models"
	"github.com/openkyc/kyc/pkg/constants"
	"github.com/openkyc/kyc/pkg/logger"
)

type captureSink struct {
	entries []*models.AuditLog
	err     error
}

func (s *captureSink) Write(ctx context.Context, entry *models.AuditLog) error {
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, entry)
	return nil
}

func TestRecorderFansOutToAllSinks(t *testing.T) {
	first := &captureSink{}
	second := &captureSink{}
	recorder := NewRecorder(logger.NewNoopLogger(), first, second)

	entry := models.NewAuditLog(constants.ActionAddCustomer, constants.AuditResultSuccess, "customer registered")
	recorder.Record(context.Background(), entry)

	assert.Len(t, first.entries, 1)
	assert.Len(t, second.entries, 1)
	assert.Equal(t, entry.EventID, first.entries[0].EventID)
}

func TestRecorderSwallowsSinkFailures(t *testing.T) {
	failing := &captureSink{err: errors.New("broker unavailable")}
	healthy := &captureSink{}
	recorder := NewRecorder(logger.NewNoopLogger(), failing, healthy)

	recorder.Record(context.Background(),
		models.NewAuditLog(constants.ActionLogin, constants.AuditResultFailure, "invalid credentials"))

	assert.Len(t, healthy.entries, 1)
}

func TestRecorderIgnoresNilEntry(t *testing.T) {
	sink := &captureSink{}
	recorder := NewRecorder(logger.NewNoopLogger(), sink)

	recorder.Record(context.Background(), nil)

	assert.Empty(t, sink.entries)
}

func TestSignEntryRoundTrip(t *testing.T) {
	payload := []byte(`{"action":"add_customer"}`)

	signature := SignEntry(payload, "secret")
	assert.True(t, VerifyEntry(payload, "secret", signature))
	assert.False(t, VerifyEntry(payload, "other", signature))
	assert.False(t, VerifyEntry([]byte(`{"action":"edited"}`), "secret", signature))
}
