package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/openkyc/kyc/internal/application/dto"
	"github.com/openkyc/kyc/internal/application/service"
)

// AuditHandler serves the audit trail query endpoint.
type AuditHandler struct {
	audit service.AuditAppService
}

// NewAuditHandler creates the audit handler.
func NewAuditHandler(audit service.AuditAppService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// List handles GET /api/v1/audit.
func (h *AuditHandler) List(c *gin.Context) {
	var req dto.AuditListRequest
	if !bindQuery(c, &req) {
		return
	}
	resp, err := h.audit.List(c.Request.Context(), &req)
	if err != nil {
		respondErr(c, err)
		return
	}
	ok(c, resp)
}
