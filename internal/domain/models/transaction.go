package models

import (
	"fmt"
	"time"

	"github.com/openkyc/kyc/pkg/constants"
	"github.com/openkyc/kyc/pkg/errors"
)

// Transaction is a monitored customer transaction. Amounts are IDR.
type Transaction struct {
	ID          string                    `json:"id"`
	CustomerID  string                    `json:"customer_id"`
	Date        time.Time                 `json:"date"`
	Type        constants.TransactionType `json:"type"`
	Amount      float64                   `json:"amount"`
	Description string                    `json:"description"`
	Destination string                    `json:"destination"`
	Flagged     bool                      `json:"flagged"`
	FlagReason  string                    `json:"flag_reason,omitempty"`
	RecordedBy  string                    `json:"recorded_by"`
	CreatedAt   time.Time                 `json:"created_at"`
}

// Validate checks a transaction before it is recorded.
func (t *Transaction) Validate() error {
	if t.CustomerID == "" {
		return errors.ErrValidation("customer_id is required")
	}
	if t.Amount <= 0 {
		return errors.ErrValidation("amount must be greater than zero")
	}
	if !validTransactionType(t.Type) {
		return errors.ErrValidation(fmt.Sprintf("invalid transaction type %q", t.Type))
	}
	if t.Type == constants.TransactionTransfer && t.Destination == "" {
		return errors.ErrValidation("destination is required for transfers")
	}
	return nil
}

// Flag marks the transaction as suspicious with the reviewer's reason.
func (t *Transaction) Flag(reason string) error {
	if reason == "" {
		return errors.ErrValidation("flag reason is required")
	}
	t.Flagged = true
	t.FlagReason = reason
	return nil
}

// IsCashDeposit reports whether the transaction counts toward the cash deposit
// structuring window.
func (t *Transaction) IsCashDeposit() bool {
	return t.Type == constants.TransactionCashDeposit
}

func validTransactionType(tt constants.TransactionType) bool {
	for _, v := range constants.TransactionTypes {
		if v == tt {
			return true
		}
	}
	return false
}
