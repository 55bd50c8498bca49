package identity

import (
	"github.com/google/uuid"
	"github.com/worksuite/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeOrganization = "Organization"

// Event type constants
const (
	EventTypeOrganizationCreated = "OrganizationCreated"
)

// OrganizationCreatedEvent is published when a new organization is
// created. The provisioning handler reacts to it by cloning the tenant
// tier classification sets into the organization scope.
type OrganizationCreatedEvent struct {
	shared.BaseDomainEvent
	OrganizationID uuid.UUID `json:"organization_id"`
	Code           string    `json:"code"`
	Name           string    `json:"name"`
}

// NewOrganizationCreatedEvent creates a new OrganizationCreatedEvent
func NewOrganizationCreatedEvent(org *Organization) *OrganizationCreatedEvent {
	return &OrganizationCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrganizationCreated, AggregateTypeOrganization, org.ID, org.TenantID),
		OrganizationID:  org.ID,
		Code:            org.Code,
		Name:            org.Name,
	}
}
