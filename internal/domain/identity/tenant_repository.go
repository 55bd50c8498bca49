package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/worksuite/backend/internal/domain/shared"
)

// TenantRepository is the persistence port for tenants. Code lookups
// are case-insensitive since codes are normalized to uppercase.
type TenantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	FindByCode(ctx context.Context, code string) (*Tenant, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Tenant, error)
	Save(ctx context.Context, tenant *Tenant) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
}
