package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics manages the Prometheus metrics.
type Metrics struct {
	HTTPRequests        *prometheus.CounterVec
	HTTPLatency         *prometheus.HistogramVec
	LoginAttempts       *prometheus.CounterVec
	RiskAssessments     *prometheus.CounterVec
	AlertsRaised        *prometheus.CounterVec
	StructuringHits     prometheus.Counter
	FlaggedTransactions prometheus.Counter
	AccessDenied        *prometheus.CounterVec
	RateLimitHits       *prometheus.CounterVec
}

// NewMetrics creates and registers the Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kyc_http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kyc_http_request_duration_seconds",
				Help:    "HTTP request latency.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		LoginAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kyc_login_attempts_total",
				Help: "Total number of login attempts.",
			},
			[]string{"result"},
		),
		RiskAssessments: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kyc_risk_assessments_total",
				Help: "Total number of risk assessments by resulting category.",
			},
			[]string{"category"},
		),
		AlertsRaised: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kyc_alerts_raised_total",
				Help: "Total number of alerts raised by type.",
			},
			[]string{"type"},
		),
		StructuringHits: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "kyc_structuring_detections_total",
				Help: "Total number of structuring patterns detected.",
			},
		),
		FlaggedTransactions: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "kyc_flagged_transactions_total",
				Help: "Total number of transactions flagged as suspicious.",
			},
		),
		AccessDenied: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kyc_access_denied_total",
				Help: "Total number of operations denied by the access policy.",
			},
			[]string{"role"},
		),
		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kyc_rate_limit_hits_total",
				Help: "Total number of requests rejected by the rate limiter.",
			},
			[]string{"dimension"},
		),
	}
}

// RecordHTTPRequest records one served HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.HTTPRequests.WithLabelValues(method, path, status).Inc()
	m.HTTPLatency.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordLoginAttempt records a login attempt outcome.
func (m *Metrics) RecordLoginAttempt(result string) {
	m.LoginAttempts.WithLabelValues(result).Inc()
}

// RecordRiskAssessment records a completed risk assessment.
func (m *Metrics) RecordRiskAssessment(category string) {
	m.RiskAssessments.WithLabelValues(category).Inc()
}

// RecordAlertRaised records a raised alert.
func (m *Metrics) RecordAlertRaised(alertType string) {
	m.AlertsRaised.WithLabelValues(alertType).Inc()
}

// RecordAccessDenied records an operation denied by the access policy.
func (m *Metrics) RecordAccessDenied(role string) {
	if role == "" {
		role = "unknown"
	}
	m.AccessDenied.WithLabelValues(role).Inc()
}

// RecordRateLimitHit records a rate-limited request.
func (m *Metrics) RecordRateLimitHit(dimension string) {
	m.RateLimitHits.WithLabelValues(dimension).Inc()
}
