package bus

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"hookcord/pkg/logger"
)

// LocalBus is a local in-process event bus using Go channels.
type LocalBus struct {
	log      *logger.Logger
	handlers map[Kind][]Handler
	mu       sync.RWMutex

	events chan *Event

	// Lifecycle
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// Metrics
	published   uint64
	errors      uint64
	metricsLock sync.RWMutex
}

// NewLocalBus creates a new local event bus.
func NewLocalBus(log *logger.Logger, bufferSize int) *LocalBus {
	if bufferSize <= 0 {
		bufferSize = 100
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &LocalBus{
		log:      log,
		handlers: make(map[Kind][]Handler),
		events:   make(chan *Event, bufferSize),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start starts the event bus processing loop.
func (b *LocalBus) Start() error {
	b.log.Info("Starting event bus")

	b.wg.Add(1)
	go b.process()

	return nil
}

// Stop stops the event bus and waits for all processing to complete.
func (b *LocalBus) Stop() error {
	b.log.Info("Stopping event bus")

	b.cancel()
	close(b.events)
	b.wg.Wait()

	b.log.Info("Event bus stopped")
	return nil
}

// Subscribe registers a handler for a specific event kind.
// Multiple handlers can be registered for the same kind.
func (b *LocalBus) Subscribe(kind Kind, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[kind] = append(b.handlers[kind], handler)
	b.log.Info("Subscribed handler", zap.String("kind", string(kind)))
}

// Unsubscribe removes all handlers for an event kind.
func (b *LocalBus) Unsubscribe(kind Kind) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.handlers, kind)
	b.log.Info("Unsubscribed handlers", zap.String("kind", string(kind)))
}

// Publish sends an event to subscribers.
func (b *LocalBus) Publish(evt *Event) error {
	select {
	case b.events <- evt:
		b.incrementPublished()
		return nil
	case <-b.ctx.Done():
		return fmt.Errorf("bus is shutting down")
	case <-time.After(5 * time.Second):
		return fmt.Errorf("timeout publishing event")
	}
}

// process dispatches events to handlers.
func (b *LocalBus) process() {
	defer b.wg.Done()

	for {
		select {
		case evt, ok := <-b.events:
			if !ok {
				return
			}

			b.handleEvent(evt)

		case <-b.ctx.Done():
			return
		}
	}
}

// handleEvent dispatches an event to registered handlers.
func (b *LocalBus) handleEvent(evt *Event) {
	b.mu.RLock()
	handlers := b.handlers[evt.Kind]
	b.mu.RUnlock()

	if len(handlers) == 0 {
		b.log.Warn("No handlers subscribed for kind",
			zap.String("kind", string(evt.Kind)),
			zap.String("event_id", evt.ID))
		return
	}

	b.log.Debug("Processing event",
		zap.String("kind", string(evt.Kind)),
		zap.String("event_id", evt.ID))

	for _, handler := range handlers {
		if err := handler(b.ctx, evt); err != nil {
			b.incrementErrors()
			b.log.Error("Handler error",
				zap.String("kind", string(evt.Kind)),
				zap.String("event_id", evt.ID),
				zap.Error(err))
		}
	}
}

// GetMetrics returns current bus metrics.
func (b *LocalBus) GetMetrics() map[string]uint64 {
	b.metricsLock.RLock()
	defer b.metricsLock.RUnlock()

	return map[string]uint64{
		"events_published": b.published,
		"errors":           b.errors,
	}
}

func (b *LocalBus) incrementPublished() {
	b.metricsLock.Lock()
	b.published++
	b.metricsLock.Unlock()
}

func (b *LocalBus) incrementErrors() {
	b.metricsLock.Lock()
	b.errors++
	b.metricsLock.Unlock()
}
