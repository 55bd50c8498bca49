package taxonomy

import (
	"strings"

	"github.com/google/uuid"
)

// Tier is one level of the resolution hierarchy. Lookup walks from the
// narrowest populated tier down to the global defaults.
type Tier int

const (
	TierGlobal Tier = iota
	TierTenant
	TierOrganization
	TierProjectOrTeam
)

// String returns a human-readable tier name
func (t Tier) String() string {
	switch t {
	case TierTenant:
		return "tenant"
	case TierOrganization:
		return "organization"
	case TierProjectOrTeam:
		return "project_or_team"
	default:
		return "global"
	}
}

// Scope is the (tenant, organization, project, team) tuple a lookup or
// write targets. Each pointer is independently optional; project and
// team are alternative siblings at the narrowest tier.
type Scope struct {
	TenantID       *uuid.UUID
	OrganizationID *uuid.UUID
	ProjectID      *uuid.UUID
	TeamID         *uuid.UUID
}

// GlobalScope returns the scope matching system-seeded defaults
func GlobalScope() Scope {
	return Scope{}
}

// TenantScope returns a scope covering a whole tenant
func TenantScope(tenantID uuid.UUID) Scope {
	return Scope{TenantID: &tenantID}
}

// OrganizationScope returns a scope covering one organization
func OrganizationScope(tenantID, organizationID uuid.UUID) Scope {
	return Scope{TenantID: &tenantID, OrganizationID: &organizationID}
}

// ProjectScope returns a scope covering one project
func ProjectScope(tenantID, organizationID, projectID uuid.UUID) Scope {
	return Scope{TenantID: &tenantID, OrganizationID: &organizationID, ProjectID: &projectID}
}

// TeamScope returns a scope covering one team
func TeamScope(tenantID, organizationID, teamID uuid.UUID) Scope {
	return Scope{TenantID: &tenantID, OrganizationID: &organizationID, TeamID: &teamID}
}

// IsGlobal reports whether no scope pointer is set
func (s Scope) IsGlobal() bool {
	return s.TenantID == nil && s.OrganizationID == nil && s.ProjectID == nil && s.TeamID == nil
}

// Tier returns the narrowest populated tier of the scope
func (s Scope) Tier() Tier {
	switch {
	case s.ProjectID != nil || s.TeamID != nil:
		return TierProjectOrTeam
	case s.OrganizationID != nil:
		return TierOrganization
	case s.TenantID != nil:
		return TierTenant
	default:
		return TierGlobal
	}
}

// Broaden drops the narrowest populated tier and returns the resulting
// scope. Project and team are dropped together since they occupy the
// same tier. The second return value is false when the scope is
// already global and cannot widen further.
func (s Scope) Broaden() (Scope, bool) {
	switch s.Tier() {
	case TierProjectOrTeam:
		return Scope{TenantID: s.TenantID, OrganizationID: s.OrganizationID}, true
	case TierOrganization:
		return Scope{TenantID: s.TenantID}, true
	case TierTenant:
		return Scope{}, true
	default:
		return s, false
	}
}

// CacheKey returns a stable cache key for the scope within a kind
func (s Scope) CacheKey(kind Kind) string {
	parts := []string{"taxonomy", kind.String(), keyPart(s.TenantID), keyPart(s.OrganizationID), keyPart(s.ProjectID), keyPart(s.TeamID)}
	return strings.Join(parts, ":")
}

func keyPart(id *uuid.UUID) string {
	if id == nil {
		return "-"
	}
	return id.String()
}
