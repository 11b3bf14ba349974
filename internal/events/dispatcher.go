package events

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// EventHandler handles a published event.
type EventHandler func(context.Context, Event) error

// Dispatcher interface allows event publication/subscription.
type Dispatcher interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType EventType, handler EventHandler)
}

// AsyncDispatcher runs handlers on detached goroutines. Publish never waits for
// them; Drain waits for in-flight handlers during shutdown.
type AsyncDispatcher struct {
	mu        sync.RWMutex
	listeners map[EventType][]EventHandler
	inflight  sync.WaitGroup
	logger    *zap.Logger
}

var _ Dispatcher = (*AsyncDispatcher)(nil)

// NewAsyncDispatcher creates a dispatcher instance.
func NewAsyncDispatcher(logger *zap.Logger) *AsyncDispatcher {
	return &AsyncDispatcher{
		listeners: make(map[EventType][]EventHandler),
		logger:    logger,
	}
}

// Publish starts every handler subscribed to the event type. Handlers get a
// context that is not cancelled with the publishing request.
func (d *AsyncDispatcher) Publish(ctx context.Context, event Event) error {
	d.mu.RLock()
	handlers := append([]EventHandler{}, d.listeners[event.Type]...)
	d.mu.RUnlock()

	detached := context.WithoutCancel(ctx)
	for _, handler := range handlers {
		d.inflight.Add(1)
		go func(h EventHandler) {
			defer d.inflight.Done()
			defer func() {
				if r := recover(); r != nil {
					d.logger.Error("event handler panicked", zap.String("event_type", string(event.Type)), zap.Any("panic", r))
				}
			}()
			if err := h(detached, event); err != nil {
				d.logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.String("event_id", event.ID), zap.Error(err))
			}
		}(handler)
	}
	return nil
}

// Subscribe registers a handler for the given event type.
func (d *AsyncDispatcher) Subscribe(eventType EventType, handler EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners[eventType] = append(d.listeners[eventType], handler)
}

// Drain waits for running handlers until they finish or the timeout passes.
// It reports whether every handler finished.
func (d *AsyncDispatcher) Drain(timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		d.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}
