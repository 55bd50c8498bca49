package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/worksuite/backend/internal/domain/identity"
	"github.com/worksuite/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// OrganizationService handles organization management operations
type OrganizationService struct {
	orgRepo    identity.OrganizationRepository
	tenantRepo identity.TenantRepository
	events     shared.EventPublisher
	logger     *zap.Logger
}

// NewOrganizationService creates a new organization service
func NewOrganizationService(
	orgRepo identity.OrganizationRepository,
	tenantRepo identity.TenantRepository,
	events shared.EventPublisher,
	logger *zap.Logger,
) *OrganizationService {
	return &OrganizationService{
		orgRepo:    orgRepo,
		tenantRepo: tenantRepo,
		events:     events,
		logger:     logger,
	}
}

// CreateOrganizationInput contains input for creating an organization
type CreateOrganizationInput struct {
	TenantID uuid.UUID
	Code     string
	Name     string
	Website  string
}

// OrganizationDTO represents organization data transfer object
type OrganizationDTO struct {
	ID        uuid.UUID `json:"id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	Website   string    `json:"website,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Create creates a new organization under an existing tenant and
// publishes its creation event
func (s *OrganizationService) Create(ctx context.Context, input CreateOrganizationInput) (*OrganizationDTO, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, input.TenantID)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.NewDomainError("TENANT_NOT_FOUND", "Tenant not found")
		}
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find tenant")
	}
	if !tenant.IsActive() {
		return nil, shared.NewDomainError("TENANT_INACTIVE", "Cannot create organizations under an inactive tenant")
	}

	exists, err := s.orgRepo.ExistsByCode(ctx, input.TenantID, input.Code)
	if err != nil {
		s.logger.Error("Failed to check organization code existence", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check code availability")
	}
	if exists {
		return nil, shared.NewDomainError("CODE_EXISTS", "Organization code already exists in this tenant")
	}

	org, err := identity.NewOrganization(input.TenantID, input.Code, input.Name)
	if err != nil {
		return nil, err
	}
	if input.Website != "" {
		if err := org.Update(org.Name, input.Website); err != nil {
			return nil, err
		}
	}

	if err := s.orgRepo.Save(ctx, org); err != nil {
		s.logger.Error("Failed to create organization", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create organization")
	}

	s.publish(ctx, org.GetDomainEvents()...)
	org.ClearDomainEvents()

	s.logger.Info("Organization created successfully",
		zap.String("organization_id", org.ID.String()),
		zap.String("tenant_id", input.TenantID.String()),
		zap.String("code", org.Code))

	return toOrganizationDTO(org), nil
}

// GetByID retrieves an organization by ID
func (s *OrganizationService) GetByID(ctx context.Context, id uuid.UUID) (*OrganizationDTO, error) {
	org, err := s.orgRepo.FindByID(ctx, id)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.NewDomainError("ORGANIZATION_NOT_FOUND", "Organization not found")
		}
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to find organization")
	}
	return toOrganizationDTO(org), nil
}

// ListByTenant retrieves the organizations of a tenant
func (s *OrganizationService) ListByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]OrganizationDTO, error) {
	orgs, err := s.orgRepo.FindByTenant(ctx, tenantID, filter)
	if err != nil {
		s.logger.Error("Failed to list organizations", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list organizations")
	}

	dtos := make([]OrganizationDTO, len(orgs))
	for i := range orgs {
		dtos[i] = *toOrganizationDTO(&orgs[i])
	}
	return dtos, nil
}

func (s *OrganizationService) publish(ctx context.Context, events ...shared.DomainEvent) {
	if s.events == nil || len(events) == 0 {
		return
	}
	if err := s.events.Publish(ctx, events...); err != nil {
		s.logger.Error("Failed to publish organization events", zap.Error(err))
	}
}

// toOrganizationDTO converts domain Organization to OrganizationDTO
func toOrganizationDTO(org *identity.Organization) *OrganizationDTO {
	return &OrganizationDTO{
		ID:        org.ID,
		TenantID:  org.TenantID,
		Code:      org.Code,
		Name:      org.Name,
		Status:    string(org.Status),
		Website:   org.Website,
		CreatedAt: org.CreatedAt,
		UpdatedAt: org.UpdatedAt,
	}
}
