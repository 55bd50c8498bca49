package event

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/worksuite/backend/internal/domain/shared"
)

// mockHandler records every event it receives.
type mockHandler struct {
	eventTypes []string
	handled    []shared.DomainEvent
}

func newMockHandler(eventTypes ...string) *mockHandler {
	return &mockHandler{eventTypes: eventTypes}
}

func (h *mockHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	h.handled = append(h.handled, event)
	return nil
}

func (h *mockHandler) EventTypes() []string {
	return h.eventTypes
}

func TestHandlerRegistry_Register_SpecificTypes(t *testing.T) {
	registry := NewHandlerRegistry()
	handler := newMockHandler("taxonomy.item.created", "taxonomy.item.updated")

	registry.Register(handler, "taxonomy.item.created", "taxonomy.item.updated")

	handlers := registry.GetHandlers("taxonomy.item.created")
	assert.Len(t, handlers, 1)
	assert.Equal(t, handler, handlers[0])

	handlers = registry.GetHandlers("taxonomy.item.updated")
	assert.Len(t, handlers, 1)

	assert.Empty(t, registry.GetHandlers("taxonomy.item.deleted"))
}

func TestHandlerRegistry_Register_Wildcard(t *testing.T) {
	registry := NewHandlerRegistry()
	handler := newMockHandler()

	registry.Register(handler)

	assert.Len(t, registry.GetHandlers("taxonomy.item.created"), 1)
	assert.Len(t, registry.GetHandlers("tenant.created"), 1)
}

func TestHandlerRegistry_TypedBeforeWildcard(t *testing.T) {
	registry := NewHandlerRegistry()
	typed := newMockHandler("taxonomy.item.created")
	wildcard := newMockHandler()

	registry.Register(wildcard)
	registry.Register(typed, "taxonomy.item.created")

	handlers := registry.GetHandlers("taxonomy.item.created")
	assert.Len(t, handlers, 2)
	assert.Equal(t, typed, handlers[0])
	assert.Equal(t, wildcard, handlers[1])

	handlers = registry.GetHandlers("organization.created")
	assert.Len(t, handlers, 1)
	assert.Equal(t, wildcard, handlers[0])
}

func TestHandlerRegistry_Unregister(t *testing.T) {
	registry := NewHandlerRegistry()
	handler1 := newMockHandler("taxonomy.item.created")
	handler2 := newMockHandler("taxonomy.item.created")

	registry.Register(handler1, "taxonomy.item.created")
	registry.Register(handler2, "taxonomy.item.created")
	assert.Len(t, registry.GetHandlers("taxonomy.item.created"), 2)

	registry.Unregister(handler1)

	handlers := registry.GetHandlers("taxonomy.item.created")
	assert.Len(t, handlers, 1)
	assert.Equal(t, handler2, handlers[0])
}

func TestHandlerRegistry_Unregister_Wildcard(t *testing.T) {
	registry := NewHandlerRegistry()
	handler := newMockHandler()

	registry.Register(handler)
	assert.Len(t, registry.GetHandlers("tenant.created"), 1)

	registry.Unregister(handler)
	assert.Empty(t, registry.GetHandlers("tenant.created"))
}

func TestHandlerRegistry_Unregister_DropsEmptyType(t *testing.T) {
	registry := NewHandlerRegistry()
	handler := newMockHandler("taxonomy.item.created")

	registry.Register(handler, "taxonomy.item.created")
	registry.Unregister(handler)

	assert.Empty(t, registry.GetHandlers("taxonomy.item.created"))
	assert.Empty(t, registry.byType)
}
