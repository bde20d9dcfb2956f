package event

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/prodstock/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// InMemoryEventBus delivers domain events synchronously inside the process.
// A failing or panicking subscriber is logged and skipped; the write that
// raised the event (a recalibration submit or review) must not roll back
// over a side effect.
type InMemoryEventBus struct {
	subs    *subscriptions
	logger  *zap.Logger
	running atomic.Bool
}

// NewInMemoryEventBus creates an in-memory event bus.
func NewInMemoryEventBus(logger *zap.Logger) *InMemoryEventBus {
	return &InMemoryEventBus{
		subs:   newSubscriptions(),
		logger: logger,
	}
}

// Publish delivers each event to every interested handler.
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, evt := range events {
		for _, handler := range b.subs.forType(evt.EventType()) {
			if err := b.deliver(ctx, handler, evt); err != nil {
				b.logger.Error("event handler failed",
					zap.String("event_type", evt.EventType()),
					zap.String("event_id", evt.EventID().String()),
					zap.Error(err),
				)
			}
		}
	}
	return nil
}

// Subscribe registers a handler. With no explicit event types the handler's
// own EventTypes() decide what it receives; a handler reporting none
// receives everything.
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	b.subs.add(handler, eventTypes)
	b.logger.Debug("event handler subscribed", zap.Strings("event_types", eventTypes))
}

// Unsubscribe removes a handler from every event type.
func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.subs.remove(handler)
	b.logger.Debug("event handler unsubscribed")
}

// Start marks the bus as running.
func (b *InMemoryEventBus) Start(ctx context.Context) error {
	b.running.Store(true)
	b.logger.Info("event bus started")
	return nil
}

// Stop marks the bus as stopped. Delivery is synchronous, so there is
// nothing in flight to drain.
func (b *InMemoryEventBus) Stop(ctx context.Context) error {
	b.running.Store(false)
	b.logger.Info("event bus stopped")
	return nil
}

// deliver invokes one handler, converting a panic into an error so one bad
// subscriber cannot break the others.
func (b *InMemoryEventBus) deliver(ctx context.Context, handler shared.EventHandler, evt shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return handler.Handle(ctx, evt)
}

var _ shared.EventBus = (*InMemoryEventBus)(nil)
