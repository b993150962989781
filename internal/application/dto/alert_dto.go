package dto

import (
	"time"

	"github.com/openkyc/kyc/internal/domain/models"
)

// AlertCreateRequest raises a new alert on a customer.
type AlertCreateRequest struct {
	CustomerID  string `json:"customer_id" validate:"required"`
	Type        string `json:"type" validate:"required"`
	Description string `json:"description" validate:"required,max=1000"`
	Severity    string `json:"severity" validate:"required,oneof=Low Medium High Critical"`
	AssignedTo  string `json:"assigned_to" validate:"omitempty,max=128"`
}

// AlertCloseRequest closes an alert with a mandatory resolution note.
type AlertCloseRequest struct {
	ResponseNote string `json:"response_note" validate:"required,max=2000"`
}

// AlertAssignRequest moves an alert into investigation under an assignee.
type AlertAssignRequest struct {
	AssignedTo string `json:"assigned_to" validate:"required,max=128"`
}

// AlertListRequest filters the alert listing.
type AlertListRequest struct {
	CustomerID string `form:"customer_id"`
	Status     string `form:"status"`
	Severity   string `form:"severity" validate:"omitempty,oneof=Low Medium High Critical"`
	Type       string `form:"type"`
	AssignedTo string `form:"assigned_to"`
	Page       int    `form:"page" validate:"omitempty,min=1"`
	PageSize   int    `form:"page_size" validate:"omitempty,min=1,max=100"`
}

// AlertResponse is the API representation of an alert.
type AlertResponse struct {
	ID          string    `json:"id"`
	CustomerID  string    `json:"customer_id"`
	Date        time.Time `json:"date"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Severity    string    `json:"severity"`
	AssignedTo  string    `json:"assigned_to"`
	LastUpdated time.Time `json:"last_updated"`
}

// NewAlertResponse maps a domain alert to its API shape.
func NewAlertResponse(a *models.Alert) *AlertResponse {
	return &AlertResponse{
		ID:          a.ID,
		CustomerID:  a.CustomerID,
		Date:        a.Date,
		Type:        string(a.Type),
		Description: a.Description,
		Status:      string(a.Status),
		Severity:    string(a.Severity),
		AssignedTo:  a.AssignedTo,
		LastUpdated: a.LastUpdated,
	}
}

// NewAlertResponses maps a slice of domain alerts.
func NewAlertResponses(alerts []*models.Alert) []*AlertResponse {
	out := make([]*AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, NewAlertResponse(a))
	}
	return out
}
