package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/openkyc/kyc/internal/application/dto"
	"github.com/openkyc/kyc/internal/application/service"
)

// AlertHandler serves the alert lifecycle endpoints.
type AlertHandler struct {
	alerts service.AlertAppService
}

// NewAlertHandler creates the alert handler.
func NewAlertHandler(alerts service.AlertAppService) *AlertHandler {
	return &AlertHandler{alerts: alerts}
}

// Create handles POST /api/v1/alerts.
func (h *AlertHandler) Create(c *gin.Context) {
	var req dto.AlertCreateRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.alerts.Create(c.Request.Context(), &req)
	if err != nil {
		respondErr(c, err)
		return
	}
	created(c, resp)
}

// Get handles GET /api/v1/alerts/:id.
func (h *AlertHandler) Get(c *gin.Context) {
	resp, err := h.alerts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	ok(c, resp)
}

// List handles GET /api/v1/alerts.
func (h *AlertHandler) List(c *gin.Context) {
	var req dto.AlertListRequest
	if !bindQuery(c, &req) {
		return
	}
	resp, err := h.alerts.List(c.Request.Context(), &req)
	if err != nil {
		respondErr(c, err)
		return
	}
	ok(c, resp)
}

// StartInvestigation handles POST /api/v1/alerts/:id/investigate.
func (h *AlertHandler) StartInvestigation(c *gin.Context) {
	var req dto.AlertAssignRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.alerts.StartInvestigation(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondErr(c, err)
		return
	}
	ok(c, resp)
}

// Close handles POST /api/v1/alerts/:id/close.
func (h *AlertHandler) Close(c *gin.Context) {
	var req dto.AlertCloseRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.alerts.Close(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondErr(c, err)
		return
	}
	ok(c, resp)
}

// Escalate handles POST /api/v1/alerts/:id/escalate.
func (h *AlertHandler) Escalate(c *gin.Context) {
	resp, err := h.alerts.Escalate(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	ok(c, resp)
}
