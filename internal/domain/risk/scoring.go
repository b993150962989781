// Package risk implements the customer risk scoring engine.
//
// The engine is a set of pure functions over an immutable profile value and
// static lookup tables: same input always yields the same score. It performs
// no I/O and is safe for concurrent use without coordination.
package risk

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/openkyc/kyc/pkg/constants"
)

// Factor identifies one component of the weighted risk model.
type Factor string

const (
	FactorOccupation  Factor = "occupation"
	FactorIncome      Factor = "income"
	FactorPEP         Factor = "pep_status"
	FactorActivity    Factor = "activity"
	FactorTransaction Factor = "transaction"
	FactorLocation    Factor = "location"
	FactorDocuments   Factor = "documents"
)

// Weights assigns each factor its share of the final score. The table must sum
// to exactly 1.0; any drift silently changes the score's bounds, so the sum is
// asserted at init and pinned by a test. Location and documents are reserved
// slots that split the residual 0.05: no profile field feeds them yet, so
// their contribution is zero and the five scored factors cap out at 0.95.
var Weights = map[Factor]float64{
	FactorOccupation:  0.25,
	FactorIncome:      0.10,
	FactorPEP:         0.30,
	FactorActivity:    0.20,
	FactorTransaction: 0.10,
	FactorLocation:    0.025,
	FactorDocuments:   0.025,
}

// OccupationRisk maps declared occupations to normalized risk values.
var OccupationRisk = map[string]float64{
	"Business Owner":          0.8,
	"Real Estate Developer":   0.8,
	"Politician":              1.0,
	"Lawyer":                  0.6,
	"Doctor":                  0.4,
	"Government Employee":     0.5,
	"Private Sector Employee": 0.3,
	"Teacher":                 0.2,
	"Student":                 0.1,
	"Retired":                 0.2,
	"Military/Police":         0.4,
	"Other":                   0.3,
}

// DefaultOccupationRisk is used for occupations absent from the table.
const DefaultOccupationRisk = 0.3

// Category thresholds. Bands are half-open on the low end: 0.30 is Medium,
// 0.70 is High.
const (
	mediumThreshold = 0.3
	highThreshold   = 0.7
)

// notableThreshold is the normalized value at which a factor earns a line in
// the score explanation.
const notableThreshold = 0.7

func init() {
	sum := 0.0
	for _, w := range Weights {
		sum += w
	}
	if math.Abs(sum-1.0) > 1e-9 {
		panic(fmt.Sprintf("risk: factor weights sum to %v, want 1.0", sum))
	}
}

// Profile carries the customer attributes relevant to risk scoring. The
// scoring engine only reads it; ownership stays with customer management.
type Profile struct {
	Occupation         string
	IncomeLevel        constants.IncomeLevel
	PEPStatus          bool
	SuspiciousActivity bool
	TransactionProfile string
}

// Assessment is the derived view of a profile: a score and the category that
// score falls into. It is always produced by Assess or OverrideAssessment so a
// mismatched (score, category) pair cannot be constructed.
type Assessment struct {
	Score      float64
	Category   constants.RiskCategory
	AssessedAt time.Time
	Overridden bool
}

// Score computes the weighted risk score for a profile.
//
// Each factor is normalized to [0,1], multiplied by its weight, and summed.
// The sum is clamped to 1.0 before rounding, so the maximum representable
// score is exactly 1.00. Rounding is half-away-from-zero to 2 decimal places.
func Score(p Profile) float64 {
	score := occupationScore(p.Occupation) * Weights[FactorOccupation]
	score += incomeScore(p.IncomeLevel) * Weights[FactorIncome]
	score += boolScore(p.PEPStatus) * Weights[FactorPEP]
	score += boolScore(p.SuspiciousActivity) * Weights[FactorActivity]
	score += transactionScore(p.TransactionProfile) * Weights[FactorTransaction]

	return round2(math.Min(score, 1.0))
}

// CategoryFor classifies a score: <0.30 Low, <0.70 Medium, otherwise High.
func CategoryFor(score float64) constants.RiskCategory {
	switch {
	case score < mediumThreshold:
		return constants.RiskCategoryLow
	case score < highThreshold:
		return constants.RiskCategoryMedium
	default:
		return constants.RiskCategoryHigh
	}
}

// Assess computes the score and its category in a single call.
func Assess(p Profile) Assessment {
	score := Score(p)
	return Assessment{
		Score:      score,
		Category:   CategoryFor(score),
		AssessedAt: time.Now().UTC(),
	}
}

// OverrideAssessment builds an assessment from a manually chosen score. The
// category is still derived from the score; only the score itself is manual.
func OverrideAssessment(score float64) Assessment {
	score = round2(math.Min(math.Max(score, 0.0), 1.0))
	return Assessment{
		Score:      score,
		Category:   CategoryFor(score),
		AssessedAt: time.Now().UTC(),
		Overridden: true,
	}
}

// Factors returns the five normalized, pre-weight factor values for display
// and debugging. They are not weighted, so they do not sum to the score.
func Factors(p Profile) map[Factor]float64 {
	return map[Factor]float64{
		FactorOccupation:  occupationScore(p.Occupation),
		FactorIncome:      incomeScore(p.IncomeLevel),
		FactorPEP:         boolScore(p.PEPStatus),
		FactorActivity:    boolScore(p.SuspiciousActivity),
		FactorTransaction: transactionScore(p.TransactionProfile),
	}
}

// Explain returns a human-readable reason for each factor whose normalized
// value crosses the notable threshold, in factor table order. An empty slice
// is a valid outcome: a customer can be low-risk in every dimension.
func Explain(p Profile) []string {
	var reasons []string

	if occupationScore(p.Occupation) >= notableThreshold {
		reasons = append(reasons, fmt.Sprintf("High-risk occupation: %s", p.Occupation))
	}
	if incomeScore(p.IncomeLevel) >= notableThreshold {
		reasons = append(reasons, "High income level requires enhanced monitoring")
	}
	if p.PEPStatus {
		reasons = append(reasons, "Politically Exposed Person (PEP)")
	}
	if p.SuspiciousActivity {
		reasons = append(reasons, "Suspicious activity detected")
	}
	if transactionScore(p.TransactionProfile) >= notableThreshold {
		reasons = append(reasons, "High-value transaction profile")
	}

	return reasons
}

func occupationScore(occupation string) float64 {
	if v, ok := OccupationRisk[occupation]; ok {
		return v
	}
	return DefaultOccupationRisk
}

func incomeScore(level constants.IncomeLevel) float64 {
	switch level {
	case constants.IncomeLevelLow:
		return 0.2
	case constants.IncomeLevelMedium:
		return 0.5
	case constants.IncomeLevelHigh:
		return 0.8
	default:
		return 0.5
	}
}

func boolScore(flag bool) float64 {
	if flag {
		return 1.0
	}
	return 0.0
}

// transactionScore scans the free-text transaction profile for risk keywords.
// A missing profile is treated as empty text and contributes nothing.
func transactionScore(profile string) float64 {
	text := strings.ToLower(profile)
	switch {
	case strings.Contains(text, "high-value"):
		return 0.8
	case strings.Contains(text, "regular"):
		return 0.3
	default:
		return 0.0
	}
}

// round2 rounds half away from zero to 2 decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
