// Package constants defines system-wide constants for the KYC case-management service.
// This package provides type-safe constant definitions used across all modules.
package constants

import "time"

// ================================================================================
// Risk Constants
// ================================================================================

// RiskCategory represents the banded classification of a risk score.
type RiskCategory string

const (
	// RiskCategoryLow covers scores in [0.00, 0.30).
	RiskCategoryLow RiskCategory = "Low"

	// RiskCategoryMedium covers scores in [0.30, 0.70).
	RiskCategoryMedium RiskCategory = "Medium"

	// RiskCategoryHigh covers scores in [0.70, 1.00].
	RiskCategoryHigh RiskCategory = "High"
)

// IncomeLevel represents a customer's declared income band.
type IncomeLevel string

const (
	IncomeLevelLow    IncomeLevel = "Low"
	IncomeLevelMedium IncomeLevel = "Medium"
	IncomeLevelHigh   IncomeLevel = "High"
)

// ValidIncomeLevel reports whether the given value is a known income band.
func ValidIncomeLevel(v IncomeLevel) bool {
	switch v {
	case IncomeLevelLow, IncomeLevelMedium, IncomeLevelHigh:
		return true
	}
	return false
}

// ================================================================================
// Verification Constants
// ================================================================================

// VerificationStatus represents the document verification state of a customer.
type VerificationStatus string

const (
	// VerificationUnderReview is the initial state for newly registered customers.
	VerificationUnderReview VerificationStatus = "Under Review"

	// VerificationVerified indicates identity documents passed verification.
	VerificationVerified VerificationStatus = "Verified"

	// VerificationRejected indicates verification failed and the record needs follow-up.
	VerificationRejected VerificationStatus = "Rejected"
)

// ================================================================================
// Alert Constants
// ================================================================================

// AlertType categorizes the condition an alert was raised for.
type AlertType string

const (
	AlertTypeUnusualTransaction    AlertType = "Unusual Transaction"
	AlertTypeDocumentExpiry        AlertType = "Document Expiry"
	AlertTypeRiskEscalation        AlertType = "Risk Escalation"
	AlertTypeVerificationFailure   AlertType = "Document Verification Failure"
	AlertTypeSuspiciousActivity    AlertType = "Suspicious Activity"
	AlertTypeSuspiciousTransaction AlertType = "Suspicious Transaction"
	AlertTypeSuspiciousPattern     AlertType = "Suspicious Pattern"
	AlertTypeEDDInterview          AlertType = "EDD Interview"
	AlertTypeDocumentRequest       AlertType = "Document Request"
	AlertTypeComplianceReferral    AlertType = "Compliance Referral"
	AlertTypeOther                 AlertType = "Other"
)

// AlertTypes lists every valid alert type, in display order.
var AlertTypes = []AlertType{
	AlertTypeUnusualTransaction,
	AlertTypeDocumentExpiry,
	AlertTypeRiskEscalation,
	AlertTypeVerificationFailure,
	AlertTypeSuspiciousActivity,
	AlertTypeSuspiciousTransaction,
	AlertTypeSuspiciousPattern,
	AlertTypeEDDInterview,
	AlertTypeDocumentRequest,
	AlertTypeComplianceReferral,
	AlertTypeOther,
}

// AlertStatus represents the lifecycle state of an alert.
type AlertStatus string

const (
	AlertStatusOpen        AlertStatus = "Open"
	AlertStatusInProgress  AlertStatus = "In Progress"
	AlertStatusScheduled   AlertStatus = "Scheduled"
	AlertStatusPending     AlertStatus = "Pending"
	AlertStatusCompleted   AlertStatus = "Completed"
	AlertStatusClosed      AlertStatus = "Closed"
	AlertStatusUnderReview AlertStatus = "Under Review"
)

// AlertStatuses lists every valid alert status.
var AlertStatuses = []AlertStatus{
	AlertStatusOpen,
	AlertStatusInProgress,
	AlertStatusScheduled,
	AlertStatusPending,
	AlertStatusCompleted,
	AlertStatusClosed,
	AlertStatusUnderReview,
}

// AlertSeverity represents how urgently an alert needs attention.
type AlertSeverity string

const (
	SeverityLow      AlertSeverity = "Low"
	SeverityMedium   AlertSeverity = "Medium"
	SeverityHigh     AlertSeverity = "High"
	SeverityCritical AlertSeverity = "Critical"
)

// AlertSeverities lists every valid alert severity.
var AlertSeverities = []AlertSeverity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}

// MaxAlertDescriptionLen caps alert description length.
const MaxAlertDescriptionLen = 1000

// ================================================================================
// Transaction Constants
// ================================================================================

// TransactionType categorizes a monitored transaction.
type TransactionType string

const (
	TransactionTransfer       TransactionType = "Transfer"
	TransactionCashDeposit    TransactionType = "Cash Deposit"
	TransactionCashWithdrawal TransactionType = "Cash Withdrawal"
	TransactionSalary         TransactionType = "Salary"
	TransactionOther          TransactionType = "Other"
)

// TransactionTypes lists every valid transaction type.
var TransactionTypes = []TransactionType{
	TransactionTransfer,
	TransactionCashDeposit,
	TransactionCashWithdrawal,
	TransactionSalary,
	TransactionOther,
}

const (
	// StructuringWindow is the look-back period for cash deposit pattern detection.
	StructuringWindow = 7 * 24 * time.Hour

	// StructuringDepositThreshold is the number of cash deposits inside the window
	// that triggers a Suspicious Pattern alert.
	StructuringDepositThreshold = 3
)

// ================================================================================
// Audit Constants
// ================================================================================

// AuditAction represents different types of auditable events.
type AuditAction string

const (
	ActionViewCustomer     AuditAction = "view_customer"
	ActionAddCustomer      AuditAction = "add_customer"
	ActionEditCustomer     AuditAction = "edit_customer"
	ActionDeleteCustomer   AuditAction = "delete_customer"
	ActionArchiveCustomer  AuditAction = "archive_customer"
	ActionRiskAssessment   AuditAction = "risk_assessment"
	ActionRiskOverride     AuditAction = "risk_override"
	ActionCreateAlert      AuditAction = "create_alert"
	ActionUpdateAlert      AuditAction = "update_alert"
	ActionEscalateAlert    AuditAction = "escalate_alert"
	ActionAddTransaction   AuditAction = "add_transaction"
	ActionFlagTransaction  AuditAction = "flag_transaction"
	ActionEDD              AuditAction = "edd_action"
	ActionLogin            AuditAction = "login"
	ActionLoginFailure     AuditAction = "login_failure"
	ActionAccessDenied     AuditAction = "access_denied"
	ActionCreateUser       AuditAction = "create_user"
	ActionDeactivateUser   AuditAction = "deactivate_user"
	ActionViewAuditTrail   AuditAction = "view_audit_trail"
)

const (
	// AuditResultSuccess marks an audit entry for a completed operation.
	AuditResultSuccess = "success"

	// AuditResultFailure marks an audit entry for a rejected or failed operation.
	AuditResultFailure = "failure"
)

// ================================================================================
// Authentication Constants
// ================================================================================

const (
	// MaxLoginAttempts is the number of failed logins before a temporary lockout.
	MaxLoginAttempts = 3

	// LoginLockoutWindow is how long failed-attempt counters are retained.
	LoginLockoutWindow = 15 * time.Minute

	// SessionTokenDefaultTTL is the default lifetime of a session JWT (8 hours).
	SessionTokenDefaultTTL = 8 * time.Hour
)

// ================================================================================
// Cache Constants
// ================================================================================

const (
	// CustomerCacheTTL is the read-cache lifetime for customer records.
	CustomerCacheTTL = 30 * time.Second

	// CustomerCacheSweep is the expired-entry cleanup interval.
	CustomerCacheSweep = 5 * time.Minute
)

// ================================================================================
// Error Code Constants
// ================================================================================

// ErrorCode represents a machine-readable application error code.
type ErrorCode string

const (
	// ErrCodeInvalidRequest indicates malformed or missing request parameters.
	ErrCodeInvalidRequest ErrorCode = "invalid_request"

	// ErrCodeValidation indicates a domain validation failure.
	ErrCodeValidation ErrorCode = "validation_failed"

	// ErrCodeUnauthorized indicates missing or invalid credentials.
	ErrCodeUnauthorized ErrorCode = "unauthorized"

	// ErrCodeForbidden indicates the caller's role lacks the required permission.
	ErrCodeForbidden ErrorCode = "forbidden"

	// ErrCodeNotFound indicates the requested entity does not exist.
	ErrCodeNotFound ErrorCode = "not_found"

	// ErrCodeConflict indicates a uniqueness or state conflict (e.g. duplicate NIK).
	ErrCodeConflict ErrorCode = "conflict"

	// ErrCodeLocked indicates a temporarily locked account.
	ErrCodeLocked ErrorCode = "account_locked"

	// ErrCodeRateLimited indicates the caller exceeded the request budget.
	ErrCodeRateLimited ErrorCode = "rate_limited"

	// ErrCodeInternal indicates an unexpected server-side failure.
	ErrCodeInternal ErrorCode = "internal_error"
)

// ================================================================================
// Logging Constants
// ================================================================================

// LogLevel represents the severity level of log messages.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
	LogLevelFatal LogLevel = "fatal"
)

// ================================================================================
// Context Keys
// ================================================================================

// ContextKey represents keys used in context.Context.
type ContextKey string

const (
	// ContextKeyRequestID is the key for request ID in context.
	ContextKeyRequestID ContextKey = "request_id"

	// ContextKeyTraceID is the key for distributed trace ID in context.
	ContextKeyTraceID ContextKey = "trace_id"

	// ContextKeyUserID is the key for the authenticated user's ID.
	ContextKeyUserID ContextKey = "user_id"

	// ContextKeyUsername is the key for the authenticated user's username.
	ContextKeyUsername ContextKey = "username"

	// ContextKeyUserRole is the key for the authenticated user's role identifier.
	ContextKeyUserRole ContextKey = "user_role"
)
