package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/openkyc/kyc/internal/application/dto"
	"github.com/openkyc/kyc/internal/application/service"
)

// CustomerHandler serves the customer management endpoints.
type CustomerHandler struct {
	customers service.CustomerAppService
}

// NewCustomerHandler creates the customer handler.
func NewCustomerHandler(customers service.CustomerAppService) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

// Register handles POST /api/v1/customers.
func (h *CustomerHandler) Register(c *gin.Context) {
	var req dto.CustomerCreateRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.customers.Register(c.Request.Context(), &req)
	if err != nil {
		respondErr(c, err)
		return
	}
	created(c, resp)
}

// Get handles GET /api/v1/customers/:id.
func (h *CustomerHandler) Get(c *gin.Context) {
	resp, err := h.customers.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	ok(c, resp)
}

// List handles GET /api/v1/customers.
func (h *CustomerHandler) List(c *gin.Context) {
	var req dto.CustomerListRequest
	if !bindQuery(c, &req) {
		return
	}
	resp, err := h.customers.List(c.Request.Context(), &req)
	if err != nil {
		respondErr(c, err)
		return
	}
	ok(c, resp)
}

// Update handles PUT /api/v1/customers/:id.
func (h *CustomerHandler) Update(c *gin.Context) {
	var req dto.CustomerUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.customers.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondErr(c, err)
		return
	}
	ok(c, resp)
}

// Delete handles DELETE /api/v1/customers/:id. Customers with alert or
// transaction history are archived instead of removed.
func (h *CustomerHandler) Delete(c *gin.Context) {
	var req struct {
		Reason string `form:"reason" validate:"omitempty,max=512"`
	}
	if !bindQuery(c, &req) {
		return
	}
	resp, err := h.customers.Delete(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		respondErr(c, err)
		return
	}
	ok(c, resp)
}

// ListArchived handles GET /api/v1/customers/archived.
func (h *CustomerHandler) ListArchived(c *gin.Context) {
	var req struct {
		Page     int `form:"page" validate:"omitempty,min=1"`
		PageSize int `form:"page_size" validate:"omitempty,min=1,max=100"`
	}
	if !bindQuery(c, &req) {
		return
	}
	resp, err := h.customers.ListArchived(c.Request.Context(), req.Page, req.PageSize)
	if err != nil {
		respondErr(c, err)
		return
	}
	ok(c, resp)
}
