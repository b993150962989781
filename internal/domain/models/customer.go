// Package models defines the domain models for the KYC case-management service.
package models

import (
	"time"

	"github.com/openkyc/kyc/internal/domain/risk"
	"github.com/openkyc/kyc/pkg/constants"
	"github.com/openkyc/kyc/pkg/errors"
	"github.com/openkyc/kyc/pkg/utils"
)

// Customer is the central KYC record. Risk score and category are derived
// state: they are only ever written through ApplyAssessment so they cannot
// drift apart from the attributes they were computed from.
type Customer struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`

	// NIK is the customer's 16-digit national identity number. Unique.
	NIK         string `json:"nik"`
	DateOfBirth string `json:"dob"`
	Address     string `json:"address"`

	Occupation  string                `json:"occupation"`
	IncomeLevel constants.IncomeLevel `json:"income_level"`

	PEPStatus          bool   `json:"pep_status"`
	SuspiciousActivity bool   `json:"suspicious_activity"`
	TransactionProfile string `json:"transaction_profile"`

	RiskScore      float64                `json:"risk_score"`
	RiskCategory   constants.RiskCategory `json:"risk_category"`
	RiskOverridden bool                   `json:"risk_overridden"`

	VerificationStatus constants.VerificationStatus `json:"verification_status"`
	Documents          []string                     `json:"documents"`
	Notes              string                       `json:"notes"`

	RegistrationDate time.Time `json:"registration_date"`
	LastUpdated      time.Time `json:"last_updated"`
}

// RiskProfile projects the risk-relevant attributes for the scoring engine.
func (c *Customer) RiskProfile() risk.Profile {
	return risk.Profile{
		Occupation:         c.Occupation,
		IncomeLevel:        c.IncomeLevel,
		PEPStatus:          c.PEPStatus,
		SuspiciousActivity: c.SuspiciousActivity,
		TransactionProfile: c.TransactionProfile,
	}
}

// ApplyAssessment stores a freshly computed risk assessment on the record.
// This is the only write path for RiskScore/RiskCategory.
func (c *Customer) ApplyAssessment(a risk.Assessment) {
	c.RiskScore = a.Score
	c.RiskCategory = a.Category
	c.RiskOverridden = a.Overridden
	c.LastUpdated = a.AssessedAt
}

// Validate checks the required-field contract for a customer record.
// Optional fields (notes, documents, transaction profile) may be empty;
// required fields missing or malformed are a caller contract violation.
func (c *Customer) Validate() error {
	switch {
	case c.FullName == "":
		return errors.ErrValidation("full_name is required")
	case c.NIK == "":
		return errors.ErrValidation("nik is required")
	case !utils.ValidNIK(c.NIK):
		return errors.ErrValidation("nik must be a 16-digit number")
	case c.Address == "":
		return errors.ErrValidation("address is required")
	case c.Occupation == "":
		return errors.ErrValidation("occupation is required")
	case !constants.ValidIncomeLevel(c.IncomeLevel):
		return errors.ErrValidation("income_level must be Low, Medium or High")
	}
	return nil
}

// AppendNote adds a dated annotation to the customer's notes, the convention
// used by the alert and risk flows.
func (c *Customer) AppendNote(date time.Time, note string) {
	entry := "[" + date.Format("2006-01-02") + "] " + note
	if c.Notes == "" {
		c.Notes = entry
		return
	}
	c.Notes += "\n" + entry
}

// ArchivedCustomer is a retired customer record. Customers with related
// alerts or transactions are archived rather than deleted so the case history
// stays reconstructible.
type ArchivedCustomer struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`

	// NIK carries an archival suffix so the uniqueness constraint keeps
	// holding if the same person is ever re-onboarded.
	NIK           string    `json:"nik"`
	ArchiveDate   time.Time `json:"archive_date"`
	ArchiveReason string    `json:"archive_reason"`

	// Snapshot is the full customer record at archive time, as JSON.
	Snapshot []byte `json:"snapshot"`
}
