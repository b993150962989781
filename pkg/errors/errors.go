// Package errors defines structured error types for the KYC case-management service.
// Errors carry a machine-readable code, an HTTP status, and an optional cause chain.
//
// Authorization denial is deliberately NOT modeled as an error: access checks
// return a plain bool and callers treat false as a control-flow value.
package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/openkyc/kyc/pkg/constants"
)

// AppError is the structured error type used across the service.
type AppError struct {
	code       constants.ErrorCode
	httpStatus int
	message    string
	cause      error
	metadata   map[string]interface{}
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Code returns the machine-readable error code.
func (e *AppError) Code() constants.ErrorCode {
	return e.code
}

// HTTPStatus returns the HTTP status code this error maps to.
func (e *AppError) HTTPStatus() int {
	return e.httpStatus
}

// Message returns the human-readable message without the cause chain.
func (e *AppError) Message() string {
	return e.message
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *AppError) Unwrap() error {
	return e.cause
}

// WithCause attaches a cause error to the chain.
func (e *AppError) WithCause(cause error) *AppError {
	e.cause = cause
	return e
}

// WithMetadata attaches additional context metadata.
func (e *AppError) WithMetadata(key string, value interface{}) *AppError {
	if e.metadata == nil {
		e.metadata = make(map[string]interface{})
	}
	e.metadata[key] = value
	return e
}

// Metadata returns all metadata attached to the error.
func (e *AppError) Metadata() map[string]interface{} {
	return e.metadata
}

// NewError creates an AppError with the given code, status, and message.
func NewError(code constants.ErrorCode, httpStatus int, message string) *AppError {
	return &AppError{
		code:       code,
		httpStatus: httpStatus,
		message:    message,
	}
}

// ================================================================================
// Predefined Error Constructors
// ================================================================================

// ErrInvalidRequest creates an invalid_request error (HTTP 400).
func ErrInvalidRequest(message string) *AppError {
	return NewError(constants.ErrCodeInvalidRequest, http.StatusBadRequest, message)
}

// ErrValidation creates a validation_failed error (HTTP 422).
func ErrValidation(message string) *AppError {
	return NewError(constants.ErrCodeValidation, http.StatusUnprocessableEntity, message)
}

// ErrUnauthorized creates an unauthorized error (HTTP 401).
func ErrUnauthorized(message string) *AppError {
	return NewError(constants.ErrCodeUnauthorized, http.StatusUnauthorized, message)
}

// ErrForbidden creates a forbidden error (HTTP 403) for a denied role/resource pair.
func ErrForbidden(message string) *AppError {
	return NewError(constants.ErrCodeForbidden, http.StatusForbidden, message)
}

// ErrNotFound creates a not_found error (HTTP 404).
func ErrNotFound(entity, id string) *AppError {
	return NewError(constants.ErrCodeNotFound, http.StatusNotFound,
		fmt.Sprintf("%s %s not found", entity, id)).WithMetadata("id", id)
}

// ErrConflict creates a conflict error (HTTP 409), e.g. a duplicate NIK.
func ErrConflict(message string) *AppError {
	return NewError(constants.ErrCodeConflict, http.StatusConflict, message)
}

// ErrRateLimited creates a rate_limited error (HTTP 429).
func ErrRateLimited(message string) *AppError {
	return NewError(constants.ErrCodeRateLimited, http.StatusTooManyRequests, message)
}

// ErrAccountLocked creates an account_locked error (HTTP 423).
func ErrAccountLocked(message string) *AppError {
	return NewError(constants.ErrCodeLocked, http.StatusLocked, message)
}

// ErrInternal creates an internal_error (HTTP 500) wrapping the given cause.
func ErrInternal(message string, cause error) *AppError {
	return NewError(constants.ErrCodeInternal, http.StatusInternalServerError, message).WithCause(cause)
}

// ================================================================================
// Helpers
// ================================================================================

// AsAppError extracts an *AppError from an error chain. The second return is
// false when the chain contains no AppError.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HTTPStatusOf returns the HTTP status an error maps to, defaulting to 500.
func HTTPStatusOf(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.HTTPStatus()
	}
	return http.StatusInternalServerError
}

// CodeOf returns the error code of an error, defaulting to internal_error.
func CodeOf(err error) constants.ErrorCode {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code()
	}
	return constants.ErrCodeInternal
}
