package models

import (
	"fmt"
	"time"

	"github.com/openkyc/kyc/pkg/constants"
	"github.com/openkyc/kyc/pkg/errors"
)

// Alert is a compliance work item attached to a customer.
type Alert struct {
	ID          string                  `json:"id"`
	CustomerID  string                  `json:"customer_id"`
	Date        time.Time               `json:"date"`
	Type        constants.AlertType     `json:"type"`
	Description string                  `json:"description"`
	Status      constants.AlertStatus   `json:"status"`
	Severity    constants.AlertSeverity `json:"severity"`
	AssignedTo  string                  `json:"assigned_to"`
	LastUpdated time.Time               `json:"last_updated"`
}

// Validate checks the alert against the closed vocabularies and field rules.
func (a *Alert) Validate() error {
	if a.CustomerID == "" {
		return errors.ErrValidation("customer_id is required")
	}
	if a.Description == "" {
		return errors.ErrValidation("description is required")
	}
	if len(a.Description) > constants.MaxAlertDescriptionLen {
		return errors.ErrValidation(fmt.Sprintf("description too long (max %d characters)", constants.MaxAlertDescriptionLen))
	}
	if a.AssignedTo == "" {
		return errors.ErrValidation("assigned_to is required")
	}
	if !validAlertType(a.Type) {
		return errors.ErrValidation(fmt.Sprintf("invalid alert type %q", a.Type))
	}
	if !validAlertStatus(a.Status) {
		return errors.ErrValidation(fmt.Sprintf("invalid alert status %q", a.Status))
	}
	if !validAlertSeverity(a.Severity) {
		return errors.ErrValidation(fmt.Sprintf("invalid alert severity %q", a.Severity))
	}
	if a.Date.After(time.Now()) {
		return errors.ErrValidation("alert date cannot be in the future")
	}
	return nil
}

// StartInvestigation moves an open alert to In Progress and reassigns it.
func (a *Alert) StartInvestigation(assignee string, now time.Time) error {
	if a.Status != constants.AlertStatusOpen {
		return errors.ErrConflict(fmt.Sprintf("alert %s is %s, only Open alerts can start investigation", a.ID, a.Status))
	}
	a.Status = constants.AlertStatusInProgress
	a.AssignedTo = assignee
	a.LastUpdated = now
	return nil
}

// Close finishes an alert. A response note is mandatory so the resolution is
// recorded on the case.
func (a *Alert) Close(responseNote string, now time.Time) error {
	if a.Status == constants.AlertStatusClosed {
		return errors.ErrConflict(fmt.Sprintf("alert %s is already closed", a.ID))
	}
	if responseNote == "" {
		return errors.ErrValidation("response note is required to close an alert")
	}
	a.Status = constants.AlertStatusClosed
	a.LastUpdated = now
	return nil
}

// Escalate hands an alert to the compliance team at High severity.
func (a *Alert) Escalate(now time.Time) {
	a.Severity = constants.SeverityHigh
	a.AssignedTo = "Compliance Team"
	a.LastUpdated = now
}

func validAlertType(t constants.AlertType) bool {
	for _, v := range constants.AlertTypes {
		if v == t {
			return true
		}
	}
	return false
}

func validAlertStatus(s constants.AlertStatus) bool {
	for _, v := range constants.AlertStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func validAlertSeverity(s constants.AlertSeverity) bool {
	for _, v := range constants.AlertSeverities {
		if v == s {
			return true
		}
	}
	return false
}
