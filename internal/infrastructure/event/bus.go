package event

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/worksuite/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// InMemoryEventBus implements EventBus with in-memory pub/sub.
// Dispatch is synchronous by default; WithAsyncDispatch switches to a
// buffered queue drained by a worker pool, falling back to inline
// dispatch when the queue is full so events are never dropped.
type InMemoryEventBus struct {
	registry   *HandlerRegistry
	logger     *zap.Logger
	running    atomic.Bool
	wg         sync.WaitGroup
	mu         sync.RWMutex
	async      bool
	bufferSize int
	workers    int
	queue      chan shared.DomainEvent
}

// InMemoryEventBusOption is a functional option for configuring the bus
type InMemoryEventBusOption func(*InMemoryEventBus)

// WithAsyncDispatch enables queued dispatch with the given buffer size
// and worker count
func WithAsyncDispatch(bufferSize, workers int) InMemoryEventBusOption {
	return func(b *InMemoryEventBus) {
		if bufferSize <= 0 {
			bufferSize = 1000
		}
		if workers <= 0 {
			workers = 4
		}
		b.async = true
		b.bufferSize = bufferSize
		b.workers = workers
	}
}

// NewInMemoryEventBus creates a new in-memory event bus
func NewInMemoryEventBus(logger *zap.Logger, opts ...InMemoryEventBusOption) *InMemoryEventBus {
	bus := &InMemoryEventBus{
		registry: NewHandlerRegistry(),
		logger:   logger,
	}

	for _, opt := range opts {
		opt(bus)
	}

	return bus
}

// Publish publishes events to all registered handlers
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, event := range events {
		if b.enqueue(event) {
			continue
		}
		b.dispatch(ctx, event)
	}
	return nil
}

// enqueue tries to hand the event to the worker pool. Returns false
// when the bus runs synchronously, is stopped, or the queue is full.
func (b *InMemoryEventBus) enqueue(event shared.DomainEvent) bool {
	if !b.async {
		return false
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.running.Load() || b.queue == nil {
		return false
	}

	select {
	case b.queue <- event:
		return true
	default:
		b.logger.Warn("event queue full, dispatching inline",
			zap.String("event_type", event.EventType()),
		)
		return false
	}
}

// dispatch delivers one event to every matching handler
func (b *InMemoryEventBus) dispatch(ctx context.Context, event shared.DomainEvent) {
	handlers := b.registry.GetHandlers(event.EventType())

	for _, handler := range handlers {
		if err := b.dispatchToHandler(ctx, handler, event); err != nil {
			// Log error but continue with other handlers
			b.logger.Error("handler failed to process event",
				zap.String("event_type", event.EventType()),
				zap.String("event_id", event.EventID().String()),
				zap.Error(err),
			)
		}
	}
}

// Subscribe registers a handler for specific event types
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	// If handler specifies its own event types, use those
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	b.registry.Register(handler, eventTypes...)
	b.logger.Debug("handler subscribed",
		zap.Strings("event_types", eventTypes),
	)
}

// Unsubscribe removes a handler
func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.registry.Unregister(handler)
	b.logger.Debug("handler unsubscribed")
}

// Start starts the event bus and its worker pool
func (b *InMemoryEventBus) Start(ctx context.Context) error {
	if b.async {
		b.mu.Lock()
		b.queue = make(chan shared.DomainEvent, b.bufferSize)
		b.mu.Unlock()

		for i := 0; i < b.workers; i++ {
			b.wg.Add(1)
			go b.worker()
		}
	}

	b.running.Store(true)
	b.logger.Info("event bus started",
		zap.Bool("async", b.async),
	)
	return nil
}

// Stop stops the event bus gracefully, draining queued events
func (b *InMemoryEventBus) Stop(ctx context.Context) error {
	b.running.Store(false)

	if b.async {
		b.mu.Lock()
		if b.queue != nil {
			close(b.queue)
			b.queue = nil
		}
		b.mu.Unlock()
	}

	b.wg.Wait()
	b.logger.Info("event bus stopped")
	return nil
}

// worker drains the queue until it is closed
func (b *InMemoryEventBus) worker() {
	defer b.wg.Done()

	b.mu.RLock()
	queue := b.queue
	b.mu.RUnlock()
	if queue == nil {
		return
	}

	for event := range queue {
		b.dispatch(context.Background(), event)
	}
}

// dispatchToHandler safely dispatches an event to a handler
func (b *InMemoryEventBus) dispatchToHandler(ctx context.Context, handler shared.EventHandler, event shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("handler panicked",
				zap.String("event_type", event.EventType()),
				zap.Any("panic", r),
			)
		}
	}()

	return handler.Handle(ctx, event)
}

// Ensure InMemoryEventBus implements EventBus
var _ shared.EventBus = (*InMemoryEventBus)(nil)
