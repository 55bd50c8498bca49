package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/worksuite/backend/internal/domain/shared"
)

// OrganizationRepository is the persistence port for organizations.
// Every lookup except FindByID is tenant-scoped because organization
// codes are only unique within a tenant.
type OrganizationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Organization, error)
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*Organization, error)
	FindByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Organization, error)
	Save(ctx context.Context, org *Organization) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error)
}
