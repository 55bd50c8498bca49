package taxonomy

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/worksuite/backend/internal/domain/shared"
	"github.com/worksuite/backend/internal/domain/taxonomy"
	"go.uber.org/zap"
)

// Service handles resolution, creation, deletion and reordering of
// classification items across all three kinds
type Service struct {
	repo   taxonomy.Repository
	cache  ResolutionCache
	events shared.EventPublisher
	logger *zap.Logger
}

// NewService creates a new taxonomy service
func NewService(
	repo taxonomy.Repository,
	cache ResolutionCache,
	events shared.EventPublisher,
	logger *zap.Logger,
) *Service {
	if cache == nil {
		cache = NoopResolutionCache{}
	}
	return &Service{
		repo:   repo,
		cache:  cache,
		events: events,
		logger: logger,
	}
}

// Resolve returns the item set applicable to a scope, widening tier
// by tier until a populated one is found. The global defaults are the
// floor; an empty global tier means seeding never ran and is surfaced
// as an error.
func (s *Service) Resolve(ctx context.Context, kind taxonomy.Kind, scope taxonomy.Scope) ([]ItemDTO, error) {
	key := scope.CacheKey(kind)
	if items, ok := s.cache.Get(ctx, key); ok {
		return toItemDTOs(items), nil
	}

	effective, err := resolveEffectiveScope(ctx, s.repo, kind, scope)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.FindForScope(ctx, kind, effective)
	if err != nil {
		s.logger.Error("Failed to load taxonomy items",
			zap.String("kind", kind.String()),
			zap.Error(err))
		return nil, err
	}
	if effective.IsGlobal() && len(items) == 0 {
		return nil, taxonomy.ErrNotSeeded
	}

	s.cache.Set(ctx, key, items)

	return toItemDTOs(items), nil
}

// Create creates a scoped, user-defined item
func (s *Service) Create(ctx context.Context, kind taxonomy.Kind, input CreateItemInput) (*ItemDTO, error) {
	scope := input.Scope()

	item, err := taxonomy.NewItem(kind, scope, input.Name, input.Description, input.Icon, input.Color)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByValue(ctx, kind, scope, item.Value)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, taxonomy.ErrDuplicateValue
	}

	if err := s.repo.Create(ctx, kind, item); err != nil {
		s.logger.Error("Failed to create taxonomy item",
			zap.String("kind", kind.String()),
			zap.String("value", item.Value),
			zap.Error(err))
		return nil, err
	}

	s.publish(ctx, item.GetDomainEvents()...)
	item.ClearDomainEvents()
	s.cache.InvalidateKind(ctx, kind)

	dto := toItemDTO(item)
	return &dto, nil
}

// Delete removes an item unless it is a protected system record. The
// result distinguishes deleted, not found and not eligible.
func (s *Service) Delete(ctx context.Context, kind taxonomy.Kind, id uuid.UUID) (DeleteResult, error) {
	item, err := s.repo.FindByID(ctx, kind, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return DeleteResult{Outcome: DeleteOutcomeNotFound}, nil
		}
		return DeleteResult{}, err
	}

	if !item.CanDelete() {
		s.logger.Warn("Refusing to delete system record",
			zap.String("kind", kind.String()),
			zap.String("value", item.Value))
		return DeleteResult{Outcome: DeleteOutcomeNotEligible}, nil
	}

	if err := s.repo.Delete(ctx, kind, id); err != nil {
		return DeleteResult{}, err
	}

	s.publish(ctx, taxonomy.NewItemDeletedEvent(kind, item))
	s.cache.InvalidateKind(ctx, kind)

	return DeleteResult{Outcome: DeleteOutcomeDeleted}, nil
}

// Reorder applies a batch of (id, order) updates to status items.
// Entries naming missing or system records are skipped; storage
// errors abort the batch.
func (s *Service) Reorder(ctx context.Context, kind taxonomy.Kind, entries []ReorderEntry) (ReorderResult, error) {
	if !kind.HasOrdering() {
		return ReorderResult{}, shared.NewDomainError("REORDER_NOT_SUPPORTED", "Only statuses carry a persisted order")
	}

	applied := 0
	skipped := 0
	var firstAppliedID uuid.UUID
	for _, entry := range entries {
		ok, err := s.repo.UpdateSortOrder(ctx, kind, entry.ID, entry.Order)
		if err != nil {
			return ReorderResult{AppliedCount: applied, SkippedCount: skipped}, err
		}
		if ok {
			if applied == 0 {
				firstAppliedID = entry.ID
			}
			applied++
		} else {
			skipped++
		}
	}

	if applied > 0 {
		s.publish(ctx, taxonomy.NewItemsReorderedEvent(kind, s.reorderScope(ctx, kind, firstAppliedID), applied))
		s.cache.InvalidateKind(ctx, kind)
	}

	return ReorderResult{Success: true, AppliedCount: applied, SkippedCount: skipped}, nil
}

// reorderScope looks up the scope of a reordered item so the event
// carries the tenant it happened in. A reorder batch targets a single
// scope, so the first applied entry is representative.
func (s *Service) reorderScope(ctx context.Context, kind taxonomy.Kind, id uuid.UUID) taxonomy.Scope {
	item, err := s.repo.FindByID(ctx, kind, id)
	if err != nil {
		return taxonomy.GlobalScope()
	}
	return item.Scope()
}

func (s *Service) publish(ctx context.Context, events ...shared.DomainEvent) {
	if s.events == nil || len(events) == 0 {
		return
	}
	if err := s.events.Publish(ctx, events...); err != nil {
		s.logger.Error("Failed to publish taxonomy events", zap.Error(err))
	}
}

// resolveEffectiveScope walks from the requested scope to the first
// tier that holds at least one item. The check is an ordinary
// existence predicate per tier, never an error branch; the walk
// bottoms out at the global scope.
func resolveEffectiveScope(ctx context.Context, repo taxonomy.Repository, kind taxonomy.Kind, scope taxonomy.Scope) (taxonomy.Scope, error) {
	current := scope
	for !current.IsGlobal() {
		exists, err := repo.ExistsForScope(ctx, kind, current)
		if err != nil {
			return taxonomy.Scope{}, err
		}
		if exists {
			return current, nil
		}
		current, _ = current.Broaden()
	}
	return current, nil
}
