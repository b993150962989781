// Package handlers implements the HTTP endpoints over the application
// services. Handlers bind and validate requests, delegate, and translate
// errors into the response envelope.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openkyc/kyc/internal/application/dto"
	"github.com/openkyc/kyc/internal/interfaces/http/middleware"
	apperrors "github.com/openkyc/kyc/pkg/errors"
	"github.com/openkyc/kyc/pkg/utils"
)

func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, dto.SuccessResponse(data, middleware.TraceIDFrom(c.Request.Context())))
}

func respondErr(c *gin.Context, err error) {
	c.JSON(apperrors.HTTPStatusOf(err), dto.ErrorResponse(err, middleware.TraceIDFrom(c.Request.Context())))
}

// bindJSON binds and validates a JSON body. Returns false after writing the
// error response when the request is malformed.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondErr(c, apperrors.ErrInvalidRequest("malformed request body").WithCause(err))
		return false
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondErr(c, err)
		return false
	}
	return true
}

// bindQuery binds and validates query parameters.
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		respondErr(c, apperrors.ErrInvalidRequest("malformed query parameters").WithCause(err))
		return false
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondErr(c, err)
		return false
	}
	return true
}

func ok(c *gin.Context, data interface{})      { respond(c, http.StatusOK, data) }
func created(c *gin.Context, data interface{}) { respond(c, http.StatusCreated, data) }
