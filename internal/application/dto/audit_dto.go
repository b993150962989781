package dto

import (
	"encoding/json"
	"time"

	"github.com/openkyc/kyc/internal/domain/models"
)

// AuditListRequest filters the audit trail query.
type AuditListRequest struct {
	ActorID    string `form:"actor_id"`
	Action     string `form:"action"`
	EntityType string `form:"entity_type"`
	EntityID   string `form:"entity_id"`
	From       string `form:"from" validate:"omitempty,datetime=2006-01-02"`
	To         string `form:"to" validate:"omitempty,datetime=2006-01-02"`
	Page       int    `form:"page" validate:"omitempty,min=1"`
	PageSize   int    `form:"page_size" validate:"omitempty,min=1,max=100"`
}

// AuditLogResponse is the API representation of an audit entry.
type AuditLogResponse struct {
	EventID    string          `json:"event_id"`
	Action     string          `json:"action"`
	ActorID    string          `json:"actor_id"`
	ActorRole  string          `json:"actor_role,omitempty"`
	EntityType string          `json:"entity_type,omitempty"`
	EntityID   string          `json:"entity_id,omitempty"`
	Result     string          `json:"result"`
	Message    string          `json:"message,omitempty"`
	IPAddress  string          `json:"ip_address,omitempty"`
	TraceID    string          `json:"trace_id,omitempty"`
	Metadata   json.RawMessage `json:"metadata,omitempty"`
	Timestamp  time.Time       `json:"timestamp"`
}

// NewAuditLogResponse maps a domain audit entry to its API shape.
func NewAuditLogResponse(e *models.AuditLog) *AuditLogResponse {
	return &AuditLogResponse{
		EventID:    e.EventID.String(),
		Action:     string(e.Action),
		ActorID:    e.ActorID,
		ActorRole:  e.ActorRole,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		Result:     e.Result,
		Message:    e.Message,
		IPAddress:  e.IPAddress,
		TraceID:    e.TraceID,
		Metadata:   e.Metadata,
		Timestamp:  e.Timestamp,
	}
}

// NewAuditLogResponses maps a slice of audit entries.
func NewAuditLogResponses(entries []*models.AuditLog) []*AuditLogResponse {
	out := make([]*AuditLogResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, NewAuditLogResponse(e))
	}
	return out
}
