package dto

import (
	"time"

	"github.com/openkyc/kyc/internal/domain/models"
)

// CustomerCreateRequest registers a new customer.
type CustomerCreateRequest struct {
	FullName           string   `json:"full_name" validate:"required,min=2,max=256"`
	NIK                string   `json:"nik" validate:"required,nik"`
	DateOfBirth        string   `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Address            string   `json:"address" validate:"required,max=512"`
	Occupation         string   `json:"occupation" validate:"required,max=128"`
	IncomeLevel        string   `json:"income_level" validate:"required,oneof=Low Medium High"`
	PEPStatus          bool     `json:"pep_status"`
	SuspiciousActivity bool     `json:"suspicious_activity"`
	TransactionProfile string   `json:"transaction_profile" validate:"omitempty,max=512"`
	Documents          []string `json:"documents" validate:"omitempty,dive,max=256"`
	Notes              string   `json:"notes" validate:"omitempty,max=4000"`
}

// CustomerUpdateRequest modifies an existing customer. Pointer fields
// distinguish "leave unchanged" from "set to zero value".
type CustomerUpdateRequest struct {
	FullName           *string   `json:"full_name" validate:"omitempty,min=2,max=256"`
	Address            *string   `json:"address" validate:"omitempty,max=512"`
	Occupation         *string   `json:"occupation" validate:"omitempty,max=128"`
	IncomeLevel        *string   `json:"income_level" validate:"omitempty,oneof=Low Medium High"`
	PEPStatus          *bool     `json:"pep_status"`
	SuspiciousActivity *bool     `json:"suspicious_activity"`
	TransactionProfile *string   `json:"transaction_profile" validate:"omitempty,max=512"`
	VerificationStatus *string   `json:"verification_status" validate:"omitempty,oneof='Under Review' Verified Rejected"`
	Documents          *[]string `json:"documents" validate:"omitempty,dive,max=256"`
	Notes              *string   `json:"notes" validate:"omitempty,max=4000"`
}

// CustomerListRequest filters the customer listing.
type CustomerListRequest struct {
	RiskCategory       string `form:"risk_category" validate:"omitempty,oneof=Low Medium High"`
	VerificationStatus string `form:"verification_status" validate:"omitempty,oneof='Under Review' Verified Rejected"`
	Search             string `form:"search" validate:"omitempty,max=256"`
	Page               int    `form:"page" validate:"omitempty,min=1"`
	PageSize           int    `form:"page_size" validate:"omitempty,min=1,max=100"`
}

// CustomerResponse is the full customer representation.
type CustomerResponse struct {
	ID                 string    `json:"id"`
	FullName           string    `json:"full_name"`
	NIK                string    `json:"nik"`
	DateOfBirth        string    `json:"date_of_birth"`
	Address            string    `json:"address"`
	Occupation         string    `json:"occupation"`
	IncomeLevel        string    `json:"income_level"`
	PEPStatus          bool      `json:"pep_status"`
	SuspiciousActivity bool      `json:"suspicious_activity"`
	TransactionProfile string    `json:"transaction_profile"`
	RiskScore          float64   `json:"risk_score"`
	RiskCategory       string    `json:"risk_category"`
	RiskOverridden     bool      `json:"risk_overridden"`
	VerificationStatus string    `json:"verification_status"`
	Documents          []string  `json:"documents"`
	Notes              string    `json:"notes"`
	RegistrationDate   time.Time `json:"registration_date"`
	LastUpdated        time.Time `json:"last_updated"`
}

// NewCustomerResponse maps a domain customer to its API shape.
func NewCustomerResponse(c *models.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:                 c.ID,
		FullName:           c.FullName,
		NIK:                c.NIK,
		DateOfBirth:        c.DateOfBirth,
		Address:            c.Address,
		Occupation:         c.Occupation,
		IncomeLevel:        string(c.IncomeLevel),
		PEPStatus:          c.PEPStatus,
		SuspiciousActivity: c.SuspiciousActivity,
		TransactionProfile: c.TransactionProfile,
		RiskScore:          c.RiskScore,
		RiskCategory:       string(c.RiskCategory),
		RiskOverridden:     c.RiskOverridden,
		VerificationStatus: string(c.VerificationStatus),
		Documents:          c.Documents,
		Notes:              c.Notes,
		RegistrationDate:   c.RegistrationDate,
		LastUpdated:        c.LastUpdated,
	}
}

// NewCustomerResponses maps a slice of domain customers.
func NewCustomerResponses(customers []*models.Customer) []*CustomerResponse {
	out := make([]*CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, NewCustomerResponse(c))
	}
	return out
}

// DeleteResult reports how a delete request was resolved: removed outright,
// or archived because related case records exist.
type DeleteResult struct {
	Deleted  bool   `json:"deleted"`
	Archived bool   `json:"archived"`
	Reason   string `json:"reason,omitempty"`
}

// ArchivedCustomerResponse is the archive listing shape.
type ArchivedCustomerResponse struct {
	ID            string    `json:"id"`
	FullName      string    `json:"full_name"`
	NIK           string    `json:"nik"`
	ArchiveDate   time.Time `json:"archive_date"`
	ArchiveReason string    `json:"archive_reason"`
}

// NewArchivedCustomerResponse maps an archived record to its API shape.
func NewArchivedCustomerResponse(a *models.ArchivedCustomer) *ArchivedCustomerResponse {
	return &ArchivedCustomerResponse{
		ID:            a.ID,
		FullName:      a.FullName,
		NIK:           a.NIK,
		ArchiveDate:   a.ArchiveDate,
		ArchiveReason: a.ArchiveReason,
	}
}
