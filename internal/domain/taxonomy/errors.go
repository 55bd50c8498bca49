package taxonomy

import "github.com/worksuite/backend/internal/domain/shared"

// Taxonomy-specific domain errors
var (
	// ErrNotSeeded means the global tier holds no rows for a kind.
	// Seeding runs at bootstrap, so hitting this at resolution time is
	// a deployment fault, not a normal empty result.
	ErrNotSeeded = shared.NewDomainError("TAXONOMY_NOT_SEEDED", "No global defaults exist for this taxonomy; seeding has not run")

	// ErrSystemProtected guards seeded records against mutation
	ErrSystemProtected = shared.NewDomainError("SYSTEM_RECORD_PROTECTED", "System records cannot be deleted or have their value changed")

	// ErrDuplicateValue reports a (scope, value) uniqueness violation
	ErrDuplicateValue = shared.NewDomainError("DUPLICATE_VALUE", "An item with this value already exists in the scope")
)
