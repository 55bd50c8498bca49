package identity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/worksuite/backend/internal/domain/identity"
	"github.com/worksuite/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// MockOrganizationRepository is a mock implementation of OrganizationRepository
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

func TestOrganizationServiceCreate(t *testing.T) {
	ctx := context.Background()

	activeTenant := func(t *testing.T) *identity.Tenant {
		tenant, err := identity.NewTenant("ACME", "ACME Inc")
		require.NoError(t, err)
		tenant.ClearDomainEvents()
		return tenant
	}

	t.Run("creates organization and publishes creation event", func(t *testing.T) {
		tenant := activeTenant(t)
		orgRepo := new(MockOrganizationRepository)
		tenantRepo := new(MockTenantRepository)
		publisher := new(MockEventPublisher)
		service := NewOrganizationService(orgRepo, tenantRepo, publisher, zap.NewNop())

		tenantRepo.On("FindByID", ctx, tenant.ID).Return(tenant, nil)
		orgRepo.On("ExistsByCode", ctx, tenant.ID, "ACME-EU").Return(false, nil)
		orgRepo.On("Save", ctx, mock.AnythingOfType("*identity.Organization")).Return(nil)

		var published []shared.DomainEvent
		publisher.On("Publish", ctx, mock.Anything).Run(func(args mock.Arguments) {
			published = args.Get(1).([]shared.DomainEvent)
		}).Return(nil)

		dto, err := service.Create(ctx, CreateOrganizationInput{TenantID: tenant.ID, Code: "ACME-EU", Name: "ACME Europe"})

		require.NoError(t, err)
		assert.Equal(t, tenant.ID, dto.TenantID)
		require.Len(t, published, 1)
		assert.Equal(t, identity.EventTypeOrganizationCreated, published[0].EventType())
		orgRepo.AssertExpectations(t)
	})

	t.Run("rejects unknown tenant", func(t *testing.T) {
		orgRepo := new(MockOrganizationRepository)
		tenantRepo := new(MockTenantRepository)
		service := NewOrganizationService(orgRepo, tenantRepo, nil, zap.NewNop())
		tenantID := uuid.New()

		tenantRepo.On("FindByID", ctx, tenantID).Return(nil, shared.ErrNotFound)

		dto, err := service.Create(ctx, CreateOrganizationInput{TenantID: tenantID, Code: "ACME-EU", Name: "ACME Europe"})

		assert.Nil(t, dto)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("rejects inactive tenant", func(t *testing.T) {
		tenant := activeTenant(t)
		require.NoError(t, tenant.Deactivate())
		orgRepo := new(MockOrganizationRepository)
		tenantRepo := new(MockTenantRepository)
		service := NewOrganizationService(orgRepo, tenantRepo, nil, zap.NewNop())

		tenantRepo.On("FindByID", ctx, tenant.ID).Return(tenant, nil)

		dto, err := service.Create(ctx, CreateOrganizationInput{TenantID: tenant.ID, Code: "ACME-EU", Name: "ACME Europe"})

		assert.Nil(t, dto)
		assert.Error(t, err)
	})

	t.Run("rejects duplicate code within tenant", func(t *testing.T) {
		tenant := activeTenant(t)
		orgRepo := new(MockOrganizationRepository)
		tenantRepo := new(MockTenantRepository)
		service := NewOrganizationService(orgRepo, tenantRepo, nil, zap.NewNop())

		tenantRepo.On("FindByID", ctx, tenant.ID).Return(tenant, nil)
		orgRepo.On("ExistsByCode", ctx, tenant.ID, "ACME-EU").Return(true, nil)

		dto, err := service.Create(ctx, CreateOrganizationInput{TenantID: tenant.ID, Code: "ACME-EU", Name: "ACME Europe"})

		assert.Nil(t, dto)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})
}
