package dto

import (
	"time"

	"github.com/openkyc/kyc/internal/domain/risk"
)

// RiskOverrideRequest manually sets a customer's risk score. The category is
// always derived from the score, never supplied.
type RiskOverrideRequest struct {
	Score         float64 `json:"score" validate:"min=0,max=1"`
	Justification string  `json:"justification" validate:"required,max=1000"`
}

// EDDActionRequest records an enhanced due diligence step for a high-risk
// customer.
type EDDActionRequest struct {
	Action string `json:"action" validate:"required,oneof='EDD Interview' 'Document Request' 'Compliance Referral'"`
	Notes  string `json:"notes" validate:"omitempty,max=1000"`
}

// RiskAssessmentResponse reports a scoring run: the resulting assessment,
// the per-factor breakdown, and the human-readable explanation.
type RiskAssessmentResponse struct {
	CustomerID  string             `json:"customer_id"`
	Score       float64            `json:"score"`
	Category    string             `json:"category"`
	Overridden  bool               `json:"overridden"`
	Factors     map[string]float64 `json:"factors,omitempty"`
	Reasons     []string           `json:"reasons"`
	AssessedAt  time.Time          `json:"assessed_at"`
	AlertRaised bool               `json:"alert_raised"`
}

// NewRiskAssessmentResponse builds the scoring report for a customer.
func NewRiskAssessmentResponse(customerID string, a risk.Assessment, factors map[risk.Factor]float64, reasons []string, alertRaised bool) *RiskAssessmentResponse {
	fs := make(map[string]float64, len(factors))
	for f, v := range factors {
		fs[string(f)] = v
	}
	if reasons == nil {
		reasons = []string{}
	}
	return &RiskAssessmentResponse{
		CustomerID:  customerID,
		Score:       a.Score,
		Category:    string(a.Category),
		Overridden:  a.Overridden,
		Factors:     fs,
		Reasons:     reasons,
		AssessedAt:  a.AssessedAt,
		AlertRaised: alertRaised,
	}
}
