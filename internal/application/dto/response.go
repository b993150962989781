// Package dto defines the request and response shapes of the HTTP API.
package dto

import (
	"time"

	"github.com/openkyc/kyc/pkg/constants"
	"github.com/openkyc/kyc/pkg/errors"
)

// APIResponse is the common envelope for every endpoint.
type APIResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     *ErrorDTO   `json:"error,omitempty"`
	TraceID   string      `json:"trace_id,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// ErrorDTO carries a machine-readable error to the client.
type ErrorDTO struct {
	Code    constants.ErrorCode    `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// PaginationResponse is the paging metadata attached to list responses.
type PaginationResponse struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// SuccessResponse wraps data in the standard envelope.
func SuccessResponse(data interface{}, traceID string) *APIResponse {
	return &APIResponse{
		Success:   true,
		Data:      data,
		TraceID:   traceID,
		Timestamp: time.Now().Unix(),
	}
}

// ErrorResponse wraps an error in the standard envelope. Application errors
// keep their code and metadata; anything else is reported as internal.
func ErrorResponse(err error, traceID string) *APIResponse {
	var errorDTO *ErrorDTO
	if appErr, ok := errors.AsAppError(err); ok {
		errorDTO = &ErrorDTO{
			Code:    appErr.Code(),
			Message: appErr.Message(),
			Details: appErr.Metadata(),
		}
	} else {
		errorDTO = &ErrorDTO{
			Code:    constants.ErrCodeInternal,
			Message: "internal server error",
		}
	}

	return &APIResponse{
		Success:   false,
		Error:     errorDTO,
		TraceID:   traceID,
		Timestamp: time.Now().Unix(),
	}
}

// ListResponse is the shape of paginated collections.
type ListResponse struct {
	Items      interface{}        `json:"items"`
	Pagination PaginationResponse `json:"pagination"`
}

// NewListResponse builds a paginated collection payload.
func NewListResponse(items interface{}, page, pageSize int, total int64) *ListResponse {
	if pageSize <= 0 {
		pageSize = 20
	}
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return &ListResponse{
		Items: items,
		Pagination: PaginationResponse{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
		},
	}
}
