package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/openkyc/kyc/internal/application/dto"
	"github.com/openkyc/kyc/internal/application/service"
)

// TransactionHandler serves the transaction monitoring endpoints.
type TransactionHandler struct {
	txns service.TransactionAppService
}

// NewTransactionHandler creates the transaction handler.
func NewTransactionHandler(txns service.TransactionAppService) *TransactionHandler {
	return &TransactionHandler{txns: txns}
}

// Record handles POST /api/v1/transactions.
func (h *TransactionHandler) Record(c *gin.Context) {
	var req dto.TransactionCreateRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.txns.Record(c.Request.Context(), &req)
	if err != nil {
		respondErr(c, err)
		return
	}
	created(c, resp)
}

// Get handles GET /api/v1/transactions/:id.
func (h *TransactionHandler) Get(c *gin.Context) {
	resp, err := h.txns.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	ok(c, resp)
}

// List handles GET /api/v1/transactions.
func (h *TransactionHandler) List(c *gin.Context) {
	var req dto.TransactionListRequest
	if !bindQuery(c, &req) {
		return
	}
	resp, err := h.txns.List(c.Request.Context(), &req)
	if err != nil {
		respondErr(c, err)
		return
	}
	ok(c, resp)
}

// Flag handles POST /api/v1/transactions/:id/flag.
func (h *TransactionHandler) Flag(c *gin.Context) {
	var req dto.TransactionFlagRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.txns.Flag(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondErr(c, err)
		return
	}
	ok(c, resp)
}
