package dto

import (
	"time"

	"github.com/openkyc/kyc/internal/domain/models"
	"github.com/openkyc/kyc/pkg/utils"
)

// TransactionCreateRequest records a monitored transaction.
type TransactionCreateRequest struct {
	CustomerID  string  `json:"customer_id" validate:"required"`
	Type        string  `json:"type" validate:"required,oneof=Transfer 'Cash Deposit' 'Cash Withdrawal' Salary Other"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Description string  `json:"description" validate:"omitempty,max=512"`
	Destination string  `json:"destination" validate:"omitempty,max=256"`
	Date        string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// TransactionFlagRequest marks a transaction as suspicious.
type TransactionFlagRequest struct {
	Reason string `json:"reason" validate:"required,max=512"`
}

// TransactionListRequest filters the transaction listing.
type TransactionListRequest struct {
	CustomerID  string `form:"customer_id"`
	Type        string `form:"type"`
	FlaggedOnly bool   `form:"flagged_only"`
	From        string `form:"from" validate:"omitempty,datetime=2006-01-02"`
	To          string `form:"to" validate:"omitempty,datetime=2006-01-02"`
	Page        int    `form:"page" validate:"omitempty,min=1"`
	PageSize    int    `form:"page_size" validate:"omitempty,min=1,max=100"`
}

// TransactionResponse is the API representation of a transaction. Amount is
// duplicated as formatted Rupiah for display clients.
type TransactionResponse struct {
	ID              string    `json:"id"`
	CustomerID      string    `json:"customer_id"`
	Date            time.Time `json:"date"`
	Type            string    `json:"type"`
	Amount          float64   `json:"amount"`
	AmountFormatted string    `json:"amount_formatted"`
	Description     string    `json:"description"`
	Destination     string    `json:"destination,omitempty"`
	Flagged         bool      `json:"flagged"`
	FlagReason      string    `json:"flag_reason,omitempty"`
	RecordedBy      string    `json:"recorded_by"`
}

// NewTransactionResponse maps a domain transaction to its API shape.
func NewTransactionResponse(t *models.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:              t.ID,
		CustomerID:      t.CustomerID,
		Date:            t.Date,
		Type:            string(t.Type),
		Amount:          t.Amount,
		AmountFormatted: utils.FormatIDR(t.Amount),
		Description:     t.Description,
		Destination:     t.Destination,
		Flagged:         t.Flagged,
		FlagReason:      t.FlagReason,
		RecordedBy:      t.RecordedBy,
	}
}

// NewTransactionResponses maps a slice of domain transactions.
func NewTransactionResponses(txns []*models.Transaction) []*TransactionResponse {
	out := make([]*TransactionResponse, 0, len(txns))
	for _, t := range txns {
		out = append(out, NewTransactionResponse(t))
	}
	return out
}
