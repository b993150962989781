package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/openkyc/kyc/internal/application/dto"
	apperrors "github.com/openkyc/kyc/pkg/errors"
)

// MockCustomerAppService is a mock for the CustomerAppService.
type MockCustomerAppService struct {
	mock.Mock
}

func (m *MockCustomerAppService) Register(ctx context.Context, req *dto.CustomerCreateRequest) (*dto.CustomerResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CustomerResponse), args.Error(1)
}

func (m *MockCustomerAppService) Get(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CustomerResponse), args.Error(1)
}

func (m *MockCustomerAppService) List(ctx context.Context, req *dto.CustomerListRequest) (*dto.ListResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListResponse), args.Error(1)
}

func (m *MockCustomerAppService) Update(ctx context.Context, id string, req *dto.CustomerUpdateRequest) (*dto.CustomerResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CustomerResponse), args.Error(1)
}

func (m *MockCustomerAppService) Delete(ctx context.Context, id, reason string) (*dto.DeleteResult, error) {
	args := m.Called(ctx, id, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DeleteResult), args.Error(1)
}

func (m *MockCustomerAppService) ListArchived(ctx context.Context, page, pageSize int) (*dto.ListResponse, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListResponse), args.Error(1)
}

func newCustomerRouter(svc *MockCustomerAppService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	h := NewCustomerHandler(svc)
	engine.POST("/customers", h.Register)
	engine.GET("/customers/:id", h.Get)
	engine.DELETE("/customers/:id", h.Delete)
	return engine
}

func validCreateBody() map[string]interface{} {
	return map[string]interface{}{
		"full_name":     "Budi Santoso",
		"nik":           "3175094501850001",
		"date_of_birth": "1985-04-12",
		"address":       "Jl. Sudirman 10, Jakarta",
		"occupation":    "Teacher",
		"income_level":  "Medium",
	}
}

func TestCustomerHandlerRegister(t *testing.T) {
	svc := new(MockCustomerAppService)
	svc.On("Register", mock.Anything, mock.MatchedBy(func(req *dto.CustomerCreateRequest) bool {
		return req.NIK == "3175094501850001"
	})).Return(&dto.CustomerResponse{ID: "cus-1", FullName: "Budi Santoso"}, nil)

	body, _ := json.Marshal(validCreateBody())
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/customers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	newCustomerRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var envelope dto.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	svc.AssertExpectations(t)
}

func TestCustomerHandlerRegisterRejectsBadNIK(t *testing.T) {
	svc := new(MockCustomerAppService)

	payload := validCreateBody()
	payload["nik"] = "12345"
	body, _ := json.Marshal(payload)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/customers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	newCustomerRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	svc.AssertNotCalled(t, "Register")
}

func TestCustomerHandlerGetNotFound(t *testing.T) {
	svc := new(MockCustomerAppService)
	svc.On("Get", mock.Anything, "cus-none").Return(nil, apperrors.ErrNotFound("customer", "cus-none"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/customers/cus-none", nil)
	newCustomerRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var envelope dto.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
	assert.Equal(t, "not_found", string(envelope.Error.Code))
}

func TestCustomerHandlerDeleteReturnsArchiveOutcome(t *testing.T) {
	svc := new(MockCustomerAppService)
	svc.On("Delete", mock.Anything, "cus-1", "account closed").
		Return(&dto.DeleteResult{Deleted: false, Archived: true, Reason: "customer has alert history"}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/customers/cus-1?reason=account+closed", nil)
	newCustomerRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data dto.DeleteResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.Data.Archived)
	assert.False(t, envelope.Data.Deleted)
}
