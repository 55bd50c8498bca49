package taxonomy

import (
	"github.com/google/uuid"
	"github.com/worksuite/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeItem = "TaxonomyItem"

// Event type constants
const (
	EventTypeItemCreated      = "TaxonomyItemCreated"
	EventTypeItemDeleted      = "TaxonomyItemDeleted"
	EventTypeItemsReordered   = "TaxonomyItemsReordered"
	EventTypeScopeProvisioned = "TaxonomyScopeProvisioned"
)

func eventTenantID(s Scope) uuid.UUID {
	if s.TenantID != nil {
		return *s.TenantID
	}
	return uuid.Nil
}

// ItemCreatedEvent is published when a scoped item is created
type ItemCreatedEvent struct {
	shared.BaseDomainEvent
	Kind   Kind      `json:"kind"`
	ItemID uuid.UUID `json:"item_id"`
	Name   string    `json:"name"`
	Value  string    `json:"value"`
}

// NewItemCreatedEvent creates a new ItemCreatedEvent
func NewItemCreatedEvent(kind Kind, item *Item) *ItemCreatedEvent {
	return &ItemCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeItemCreated, AggregateTypeItem, item.ID, eventTenantID(item.Scope())),
		Kind:            kind,
		ItemID:          item.ID,
		Name:            item.Name,
		Value:           item.Value,
	}
}

// ItemDeletedEvent is published when a non-system item is deleted
type ItemDeletedEvent struct {
	shared.BaseDomainEvent
	Kind   Kind      `json:"kind"`
	ItemID uuid.UUID `json:"item_id"`
	Value  string    `json:"value"`
}

// NewItemDeletedEvent creates a new ItemDeletedEvent
func NewItemDeletedEvent(kind Kind, item *Item) *ItemDeletedEvent {
	return &ItemDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeItemDeleted, AggregateTypeItem, item.ID, eventTenantID(item.Scope())),
		Kind:            kind,
		ItemID:          item.ID,
		Value:           item.Value,
	}
}

// ItemsReorderedEvent is published after a status reorder batch
type ItemsReorderedEvent struct {
	shared.BaseDomainEvent
	Kind         Kind `json:"kind"`
	AppliedCount int  `json:"applied_count"`
}

// NewItemsReorderedEvent creates a new ItemsReorderedEvent
func NewItemsReorderedEvent(kind Kind, scope Scope, appliedCount int) *ItemsReorderedEvent {
	return &ItemsReorderedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeItemsReordered, AggregateTypeItem, uuid.Nil, eventTenantID(scope)),
		Kind:            kind,
		AppliedCount:    appliedCount,
	}
}

// ScopeProvisionedEvent is published after items are propagated into a
// freshly created scope
type ScopeProvisionedEvent struct {
	shared.BaseDomainEvent
	Kind    Kind `json:"kind"`
	Created int  `json:"created"`
	Skipped int  `json:"skipped"`
}

// NewScopeProvisionedEvent creates a new ScopeProvisionedEvent
func NewScopeProvisionedEvent(kind Kind, scope Scope, created, skipped int) *ScopeProvisionedEvent {
	return &ScopeProvisionedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeScopeProvisioned, AggregateTypeItem, uuid.Nil, eventTenantID(scope)),
		Kind:            kind,
		Created:         created,
		Skipped:         skipped,
	}
}
