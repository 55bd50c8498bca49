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

// MockTenantRepository is a mock implementation of TenantRepository
type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindByCode(ctx context.Context, code string) (*identity.Tenant, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Tenant, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Save(ctx context.Context, tenant *identity.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTenantRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTenantRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

// MockEventPublisher records published domain events
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func TestTenantServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates tenant and publishes creation event", func(t *testing.T) {
		repo := new(MockTenantRepository)
		publisher := new(MockEventPublisher)
		service := NewTenantService(repo, publisher, zap.NewNop())

		repo.On("ExistsByCode", ctx, "ACME").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*identity.Tenant")).Return(nil)

		var published []shared.DomainEvent
		publisher.On("Publish", ctx, mock.Anything).Run(func(args mock.Arguments) {
			published = args.Get(1).([]shared.DomainEvent)
		}).Return(nil)

		dto, err := service.Create(ctx, CreateTenantInput{Code: "ACME", Name: "ACME Inc"})

		require.NoError(t, err)
		assert.Equal(t, "ACME", dto.Code)
		require.Len(t, published, 1)
		assert.Equal(t, identity.EventTypeTenantCreated, published[0].EventType())
		repo.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("rejects duplicate code", func(t *testing.T) {
		repo := new(MockTenantRepository)
		publisher := new(MockEventPublisher)
		service := NewTenantService(repo, publisher, zap.NewNop())

		repo.On("ExistsByCode", ctx, "ACME").Return(true, nil)

		dto, err := service.Create(ctx, CreateTenantInput{Code: "ACME", Name: "ACME Inc"})

		assert.Error(t, err)
		assert.Nil(t, dto)
		assert.Contains(t, err.Error(), "already exists")
		publisher.AssertNotCalled(t, "Publish")
	})

	t.Run("does not publish when save fails", func(t *testing.T) {
		repo := new(MockTenantRepository)
		publisher := new(MockEventPublisher)
		service := NewTenantService(repo, publisher, zap.NewNop())

		repo.On("ExistsByCode", ctx, "ACME").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*identity.Tenant")).Return(assert.AnError)

		dto, err := service.Create(ctx, CreateTenantInput{Code: "ACME", Name: "ACME Inc"})

		assert.Error(t, err)
		assert.Nil(t, dto)
		publisher.AssertNotCalled(t, "Publish")
	})
}

func TestTenantServiceGetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("maps not found to domain error", func(t *testing.T) {
		repo := new(MockTenantRepository)
		service := NewTenantService(repo, nil, zap.NewNop())
		id := uuid.New()

		repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		dto, err := service.GetByID(ctx, id)

		assert.Nil(t, dto)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}
