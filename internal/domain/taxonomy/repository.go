package taxonomy

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence for taxonomy items. One
// implementation serves all three kinds; the kind argument selects the
// backing table.
type Repository interface {
	// FindByID finds an item by its ID
	FindByID(ctx context.Context, kind Kind, id uuid.UUID) (*Item, error)

	// FindForScope returns the items whose stored scope pointers
	// exactly match the given scope, unset tiers required to be null.
	// For the global scope only system records match. Statuses come
	// back ordered by column position, other kinds by creation time.
	FindForScope(ctx context.Context, kind Kind, scope Scope) ([]Item, error)

	// ExistsForScope reports whether at least one item matches the
	// scope filter of FindForScope
	ExistsForScope(ctx context.Context, kind Kind, scope Scope) (bool, error)

	// ExistsByValue reports whether the scope already holds an item
	// with the given value slug
	ExistsByValue(ctx context.Context, kind Kind, scope Scope, value string) (bool, error)

	// Create persists a new item. Returns ErrDuplicateValue when the
	// (scope, value) uniqueness constraint rejects the row.
	Create(ctx context.Context, kind Kind, item *Item) error

	// Delete removes an item by ID
	Delete(ctx context.Context, kind Kind, id uuid.UUID) error

	// UpdateSortOrder sets the column position of a single non-system
	// item. Returns false when no matching deletable record exists.
	UpdateSortOrder(ctx context.Context, kind Kind, id uuid.UUID, order int) (bool, error)
}
