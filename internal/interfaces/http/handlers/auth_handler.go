package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/openkyc/kyc/internal/application/dto"
	"github.com/openkyc/kyc/internal/application/service"
)

// AuthHandler serves login and user administration.
type AuthHandler struct {
	auth service.AuthAppService
}

// NewAuthHandler creates the auth handler.
func NewAuthHandler(auth service.AuthAppService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.auth.Login(c.Request.Context(), &req)
	if err != nil {
		respondErr(c, err)
		return
	}
	ok(c, resp)
}

// CreateUser handles POST /api/v1/users.
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req dto.UserCreateRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.auth.CreateUser(c.Request.Context(), &req)
	if err != nil {
		respondErr(c, err)
		return
	}
	created(c, resp)
}

// ListUsers handles GET /api/v1/users.
func (h *AuthHandler) ListUsers(c *gin.Context) {
	var req struct {
		Page     int `form:"page" validate:"omitempty,min=1"`
		PageSize int `form:"page_size" validate:"omitempty,min=1,max=100"`
	}
	if !bindQuery(c, &req) {
		return
	}
	resp, err := h.auth.ListUsers(c.Request.Context(), req.Page, req.PageSize)
	if err != nil {
		respondErr(c, err)
		return
	}
	ok(c, resp)
}

// DeactivateUser handles POST /api/v1/users/:id/deactivate.
func (h *AuthHandler) DeactivateUser(c *gin.Context) {
	resp, err := h.auth.DeactivateUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	ok(c, resp)
}
