package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/openkyc/kyc/internal/application/dto"
	"github.com/openkyc/kyc/internal/application/service"
)

// RiskHandler serves risk scoring, override, and EDD endpoints.
type RiskHandler struct {
	risk service.RiskAppService
}

// NewRiskHandler creates the risk handler.
func NewRiskHandler(risk service.RiskAppService) *RiskHandler {
	return &RiskHandler{risk: risk}
}

// Assess handles POST /api/v1/customers/:id/risk/assess.
func (h *RiskHandler) Assess(c *gin.Context) {
	resp, err := h.risk.Assess(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	ok(c, resp)
}

// Explain handles GET /api/v1/customers/:id/risk.
func (h *RiskHandler) Explain(c *gin.Context) {
	resp, err := h.risk.Explain(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	ok(c, resp)
}

// Override handles PUT /api/v1/customers/:id/risk/override.
func (h *RiskHandler) Override(c *gin.Context) {
	var req dto.RiskOverrideRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.risk.Override(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondErr(c, err)
		return
	}
	ok(c, resp)
}

// RecordEDDAction handles POST /api/v1/customers/:id/edd.
func (h *RiskHandler) RecordEDDAction(c *gin.Context) {
	var req dto.EDDActionRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.risk.RecordEDDAction(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondErr(c, err)
		return
	}
	created(c, resp)
}
