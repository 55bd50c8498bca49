package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/worksuite/backend/internal/domain/shared"
	"github.com/worksuite/backend/internal/domain/taxonomy"
	"gorm.io/gorm"
)

// GormTaxonomyItemRepository implements taxonomy.Repository using GORM.
// A single implementation serves statuses, priorities and sizes; the
// kind argument picks the backing table.
type GormTaxonomyItemRepository struct {
	db *gorm.DB
}

// NewGormTaxonomyItemRepository creates a new GormTaxonomyItemRepository
func NewGormTaxonomyItemRepository(db *gorm.DB) *GormTaxonomyItemRepository {
	return &GormTaxonomyItemRepository{db: db}
}

// table returns a query builder bound to the kind's table
func (r *GormTaxonomyItemRepository) table(ctx context.Context, kind taxonomy.Kind) *gorm.DB {
	return r.db.WithContext(ctx).Table(kind.TableName())
}

// scoped applies the exact scope filter: set tiers match by equality,
// unset tiers must be null. The global scope matches system records only.
func scoped(tx *gorm.DB, scope taxonomy.Scope) *gorm.DB {
	tx = scopeColumn(tx, "tenant_id", scope.TenantID)
	tx = scopeColumn(tx, "organization_id", scope.OrganizationID)
	tx = scopeColumn(tx, "project_id", scope.ProjectID)
	tx = scopeColumn(tx, "organization_team_id", scope.TeamID)
	if scope.IsGlobal() {
		tx = tx.Where("is_system = ?", true)
	}
	return tx
}

func scopeColumn(tx *gorm.DB, column string, id *uuid.UUID) *gorm.DB {
	if id == nil {
		return tx.Where(column + " IS NULL")
	}
	return tx.Where(column+" = ?", *id)
}

// FindByID finds an item by its ID
func (r *GormTaxonomyItemRepository) FindByID(ctx context.Context, kind taxonomy.Kind, id uuid.UUID) (*taxonomy.Item, error) {
	var item taxonomy.Item
	if err := r.table(ctx, kind).Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindForScope returns the items stored exactly at the given scope.
// Statuses come back in column order, other kinds in creation order.
func (r *GormTaxonomyItemRepository) FindForScope(ctx context.Context, kind taxonomy.Kind, scope taxonomy.Scope) ([]taxonomy.Item, error) {
	var items []taxonomy.Item
	tx := scoped(r.table(ctx, kind), scope)
	if kind.HasOrdering() {
		tx = tx.Order("sort_order ASC, created_at ASC")
	} else {
		tx = tx.Order("created_at ASC")
	}
	if err := tx.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ExistsForScope reports whether at least one item is stored at the scope
func (r *GormTaxonomyItemRepository) ExistsForScope(ctx context.Context, kind taxonomy.Kind, scope taxonomy.Scope) (bool, error) {
	var count int64
	if err := scoped(r.table(ctx, kind), scope).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByValue reports whether the scope already holds an item with the value slug
func (r *GormTaxonomyItemRepository) ExistsByValue(ctx context.Context, kind taxonomy.Kind, scope taxonomy.Scope, value string) (bool, error) {
	var count int64
	if err := scoped(r.table(ctx, kind), scope).Where("value = ?", value).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create persists a new item into the kind's table
func (r *GormTaxonomyItemRepository) Create(ctx context.Context, kind taxonomy.Kind, item *taxonomy.Item) error {
	if err := r.table(ctx, kind).Create(item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return taxonomy.ErrDuplicateValue
		}
		return err
	}
	return nil
}

// Delete removes an item by ID
func (r *GormTaxonomyItemRepository) Delete(ctx context.Context, kind taxonomy.Kind, id uuid.UUID) error {
	result := r.table(ctx, kind).Where("id = ?", id).Delete(&taxonomy.Item{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// UpdateSortOrder sets the column position of a single non-system item.
// Returns false when no matching record exists or it is system-protected.
// The write bumps updated_at and version so optimistic locking sees it.
func (r *GormTaxonomyItemRepository) UpdateSortOrder(ctx context.Context, kind taxonomy.Kind, id uuid.UUID, order int) (bool, error) {
	result := r.table(ctx, kind).
		Where("id = ? AND is_system = ?", id, false).
		Updates(map[string]interface{}{
			"sort_order": order,
			"updated_at": time.Now().UTC(),
			"version":    gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Ensure GormTaxonomyItemRepository implements taxonomy.Repository
var _ taxonomy.Repository = (*GormTaxonomyItemRepository)(nil)
