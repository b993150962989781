package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/openkyc/kyc/pkg/constants"
)

// AuditLog represents a single audit trail event. Entries are append-only:
// nothing in the service updates or deletes one after it is written.
type AuditLog struct {
	EventID    uuid.UUID
	Action     constants.AuditAction
	ActorID    string // user ID, or "system" for automated actions
	ActorRole  string
	EntityType string // "customer", "alert", "transaction", "user"
	EntityID   string
	Result     string // "success" or "failure"
	ResultCode constants.ErrorCode
	IPAddress  string
	UserAgent  string
	TraceID    string
	Message    string
	Metadata   json.RawMessage // Flexible field for event-specific data
	Timestamp  time.Time
}

// NewAuditLog creates a new audit log entry.
func NewAuditLog(action constants.AuditAction, result string, message string) *AuditLog {
	return &AuditLog{
		EventID:   uuid.New(),
		Action:    action,
		Result:    result,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// WithActor sets who performed the action.
func (a *AuditLog) WithActor(actorID, role string) *AuditLog {
	a.ActorID = actorID
	a.ActorRole = role
	return a
}

// WithEntity sets the record the action touched.
func (a *AuditLog) WithEntity(entityType, entityID string) *AuditLog {
	a.EntityType = entityType
	a.EntityID = entityID
	return a
}

// WithContextInfo sets request-scoped information.
func (a *AuditLog) WithContextInfo(ip, ua, traceID string) *AuditLog {
	a.IPAddress = ip
	a.UserAgent = ua
	a.TraceID = traceID
	return a
}

// WithMetadata sets JSON metadata for the audit log.
func (a *AuditLog) WithMetadata(data interface{}) *AuditLog {
	jsonData, err := json.Marshal(data)
	if err == nil {
		a.Metadata = jsonData
	}
	return a
}

// WithResultCode sets the specific error code for failed events.
func (a *AuditLog) WithResultCode(code constants.ErrorCode) *AuditLog {
	a.ResultCode = code
	return a
}
