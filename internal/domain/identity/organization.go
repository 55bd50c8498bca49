package identity

import (
	"strings"

	"github.com/google/uuid"
	"github.com/worksuite/backend/internal/domain/shared"
)

// OrganizationStatus represents the status of an organization
type OrganizationStatus string

const (
	OrganizationStatusActive   OrganizationStatus = "active"
	OrganizationStatusInactive OrganizationStatus = "inactive"
)

// Organization is a business unit inside a tenant. Creating one
// triggers provisioning of its classification sets from the tenant
// tier.
type Organization struct {
	shared.TenantAggregateRoot
	Code    string             `gorm:"type:varchar(50);not null;uniqueIndex:idx_org_tenant_code,priority:2"`
	Name    string             `gorm:"type:varchar(200);not null"`
	Status  OrganizationStatus `gorm:"type:varchar(20);not null;default:'active'"`
	Website string             `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Organization) TableName() string {
	return "organizations"
}

// NewOrganization creates a new organization under a tenant
func NewOrganization(tenantID uuid.UUID, code, name string) (*Organization, error) {
	if err := validateOrganizationCode(code); err != nil {
		return nil, err
	}
	if err := validateOrganizationName(name); err != nil {
		return nil, err
	}

	org := &Organization{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                strings.ToUpper(code),
		Name:                name,
		Status:              OrganizationStatusActive,
	}

	org.AddDomainEvent(NewOrganizationCreatedEvent(org))

	return org, nil
}

// Update updates the organization's basic information
func (o *Organization) Update(name, website string) error {
	if err := validateOrganizationName(name); err != nil {
		return err
	}
	if website != "" && len(website) > 500 {
		return shared.NewDomainError("INVALID_WEBSITE", "Website cannot exceed 500 characters")
	}

	o.Name = name
	o.Website = website
	o.Touch()
	o.IncrementVersion()

	return nil
}

// Deactivate deactivates the organization
func (o *Organization) Deactivate() error {
	if o.Status == OrganizationStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Organization is already inactive")
	}

	o.Status = OrganizationStatusInactive
	o.Touch()
	o.IncrementVersion()

	return nil
}

// IsActive returns true if the organization is active
func (o *Organization) IsActive() bool {
	return o.Status == OrganizationStatusActive
}

func validateOrganizationCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Organization code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Organization code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "Organization code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

func validateOrganizationName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Organization name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Organization name cannot exceed 200 characters")
	}
	return nil
}
