package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openkyc/kyc/pkg/constants"
	"github.com/openkyc/kyc/pkg/errors"
)

func validAlert() *Alert {
	return &Alert{
		ID:          "alt-1",
		CustomerID:  "cst-1",
		Date:        time.Now().Add(-time.Hour),
		Type:        constants.AlertTypeSuspiciousPattern,
		Description: "Three cash deposits just under the reporting threshold",
		Status:      constants.AlertStatusOpen,
		Severity:    constants.SeverityHigh,
		AssignedTo:  "Compliance Team",
	}
}

func TestAlertValidate(t *testing.T) {
	require.NoError(t, validAlert().Validate())

	tests := []struct {
		name   string
		mutate func(*Alert)
	}{
		{"missing customer", func(a *Alert) { a.CustomerID = "" }},
		{"missing description", func(a *Alert) { a.Description = "" }},
		{"missing assignee", func(a *Alert) { a.AssignedTo = "" }},
		{"bad type", func(a *Alert) { a.Type = "Gossip" }},
		{"bad status", func(a *Alert) { a.Status = "Paused" }},
		{"bad severity", func(a *Alert) { a.Severity = "Extreme" }},
		{"date in the future", func(a *Alert) { a.Date = time.Now().Add(time.Hour) }},
		{"date tomorrow", func(a *Alert) { a.Date = time.Now().AddDate(0, 0, 1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validAlert()
			tt.mutate(a)
			err := a.Validate()
			require.Error(t, err)
			assert.Equal(t, constants.ErrCodeValidation, errors.CodeOf(err))
		})
	}
}

func TestAlertLifecycle(t *testing.T) {
	now := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)

	a := validAlert()
	require.NoError(t, a.StartInvestigation("andi", now))
	assert.Equal(t, constants.AlertStatusInProgress, a.Status)
	assert.Equal(t, "andi", a.AssignedTo)

	err := a.StartInvestigation("budi", now)
	require.Error(t, err)
	assert.Equal(t, constants.ErrCodeConflict, errors.CodeOf(err))

	err = a.Close("", now)
	require.Error(t, err)
	assert.Equal(t, constants.ErrCodeValidation, errors.CodeOf(err))

	require.NoError(t, a.Close("Reviewed, transactions legitimate", now))
	assert.Equal(t, constants.AlertStatusClosed, a.Status)

	err = a.Close("again", now)
	require.Error(t, err)
	assert.Equal(t, constants.ErrCodeConflict, errors.CodeOf(err))
}
