package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	identityapp "github.com/worksuite/backend/internal/application/identity"
	"github.com/worksuite/backend/internal/domain/identity"
	"github.com/worksuite/backend/internal/domain/shared"
	"github.com/worksuite/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// MockOrganizationRepository implements identity.OrganizationRepository for testing
type MockOrganizationRepository struct {
	mock.Mock
}

func (m *MockOrganizationRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*identity.Organization, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]identity.Organization, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) Save(ctx context.Context, org *identity.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *MockOrganizationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrganizationRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, tenantID, code)
	return args.Bool(0), args.Error(1)
}

func newOrganizationTestRouter(orgRepo identity.OrganizationRepository, tenantRepo identity.TenantRepository) *gin.Engine {
	service := identityapp.NewOrganizationService(orgRepo, tenantRepo, nil, zap.NewNop())
	h := NewOrganizationHandler(service)

	router := gin.New()
	v1 := router.Group("/api/v1")
	v1.POST("/identity/organizations", h.Create)
	v1.GET("/identity/organizations", h.ListByTenant)
	v1.GET("/identity/organizations/:id", h.GetByID)
	return router
}

func TestOrganizationHandler_Create(t *testing.T) {
	tenant, err := identity.NewTenant("acme", "Acme Corp")
	require.NoError(t, err)

	orgRepo := new(MockOrganizationRepository)
	tenantRepo := new(MockTenantRepository)
	router := newOrganizationTestRouter(orgRepo, tenantRepo)

	tenantRepo.On("FindByID", mock.Anything, tenant.ID).Return(tenant, nil)
	orgRepo.On("ExistsByCode", mock.Anything, tenant.ID, "hq").Return(false, nil)
	orgRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	body, _ := json.Marshal(map[string]string{
		"tenant_id": tenant.ID.String(),
		"code":      "hq",
		"name":      "Headquarters",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/identity/organizations", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "Headquarters", data["name"])
	assert.Equal(t, tenant.ID.String(), data["tenant_id"])
	orgRepo.AssertExpectations(t)
}

func TestOrganizationHandler_Create_TenantMissing(t *testing.T) {
	orgRepo := new(MockOrganizationRepository)
	tenantRepo := new(MockTenantRepository)
	router := newOrganizationTestRouter(orgRepo, tenantRepo)

	missingID := uuid.New()
	tenantRepo.On("FindByID", mock.Anything, missingID).Return(nil, shared.ErrNotFound)

	body, _ := json.Marshal(map[string]string{
		"tenant_id": missingID.String(),
		"code":      "hq",
		"name":      "Headquarters",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/identity/organizations", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
}

func TestOrganizationHandler_Create_TenantInactive(t *testing.T) {
	tenant, err := identity.NewTenant("acme", "Acme Corp")
	require.NoError(t, err)
	require.NoError(t, tenant.Deactivate())

	orgRepo := new(MockOrganizationRepository)
	tenantRepo := new(MockTenantRepository)
	router := newOrganizationTestRouter(orgRepo, tenantRepo)

	tenantRepo.On("FindByID", mock.Anything, tenant.ID).Return(tenant, nil)

	body, _ := json.Marshal(map[string]string{
		"tenant_id": tenant.ID.String(),
		"code":      "hq",
		"name":      "Headquarters",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/identity/organizations", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrCodeTenantInactive, resp.Error.Code)
}

func TestOrganizationHandler_GetByID(t *testing.T) {
	tenantID := uuid.New()
	org, err := identity.NewOrganization(tenantID, "hq", "Headquarters")
	require.NoError(t, err)

	orgRepo := new(MockOrganizationRepository)
	tenantRepo := new(MockTenantRepository)
	router := newOrganizationTestRouter(orgRepo, tenantRepo)

	orgRepo.On("FindByID", mock.Anything, org.ID).Return(org, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/identity/organizations/"+org.ID.String(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, org.ID.String(), data["id"])
}

func TestOrganizationHandler_ListByTenant(t *testing.T) {
	tenantID := uuid.New()
	org, err := identity.NewOrganization(tenantID, "hq", "Headquarters")
	require.NoError(t, err)

	orgRepo := new(MockOrganizationRepository)
	tenantRepo := new(MockTenantRepository)
	router := newOrganizationTestRouter(orgRepo, tenantRepo)

	orgRepo.On("FindByTenant", mock.Anything, tenantID, mock.Anything).Return([]identity.Organization{*org}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/identity/organizations?tenant_id="+tenantID.String(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.([]interface{})
	assert.Len(t, data, 1)
}

func TestOrganizationHandler_ListByTenant_MissingTenantParam(t *testing.T) {
	orgRepo := new(MockOrganizationRepository)
	tenantRepo := new(MockTenantRepository)
	router := newOrganizationTestRouter(orgRepo, tenantRepo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/identity/organizations", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
