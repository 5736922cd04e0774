package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"hookcord/pkg/logger"
)

// RedisBus is a Redis-based event bus using pub/sub. Events published
// to it are delivered to every process subscribed on the same prefix.
type RedisBus struct {
	log    *logger.Logger
	client *redis.Client
	prefix string

	handlers map[Kind][]Handler
	mu       sync.RWMutex

	// Lifecycle
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	pubsub *redis.PubSub

	// Metrics
	published   uint64
	errors      uint64
	metricsLock sync.RWMutex
}

// RedisBusConfig configures the Redis bus.
type RedisBusConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// NewRedisBus creates a new Redis-based event bus.
func NewRedisBus(log *logger.Logger, cfg *RedisBusConfig) (*RedisBus, error) {
	if cfg.Prefix == "" {
		cfg.Prefix = "hookcord:bus:"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to Redis: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	b := &RedisBus{
		log:      log,
		client:   client,
		prefix:   cfg.Prefix,
		handlers: make(map[Kind][]Handler),
		ctx:      ctx,
		cancel:   cancel,
	}

	log.Info("Redis bus initialized",
		zap.String("addr", cfg.Addr),
		zap.Int("db", cfg.DB),
		zap.String("prefix", cfg.Prefix))

	return b, nil
}

// Start starts the Redis bus.
func (b *RedisBus) Start() error {
	b.log.Info("Starting Redis event bus")

	b.pubsub = b.client.PSubscribe(b.ctx, b.prefix+"*")

	b.wg.Add(1)
	go b.processMessages()

	return nil
}

// Stop stops the Redis bus.
func (b *RedisBus) Stop() error {
	b.log.Info("Stopping Redis event bus")

	b.cancel()

	if b.pubsub != nil {
		b.pubsub.Close()
	}

	b.wg.Wait()
	b.client.Close()

	b.log.Info("Redis event bus stopped")
	return nil
}

// Subscribe registers a handler for a specific event kind.
func (b *RedisBus) Subscribe(kind Kind, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[kind] = append(b.handlers[kind], handler)
	b.log.Info("Subscribed handler", zap.String("kind", string(kind)))
}

// Unsubscribe removes all handlers for an event kind.
func (b *RedisBus) Unsubscribe(kind Kind) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.handlers, kind)
	b.log.Info("Unsubscribed handlers", zap.String("kind", string(kind)))
}

// Publish sends an event to subscribers. The live Interaction field is
// not serialized, so cross-process subscribers only see the payload.
func (b *RedisBus) Publish(evt *Event) error {
	channel := b.prefix + string(evt.Kind)

	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}

	if err := b.client.Publish(b.ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("publishing to Redis: %w", err)
	}

	b.incrementPublished()
	return nil
}

// GetMetrics returns current bus metrics.
func (b *RedisBus) GetMetrics() map[string]uint64 {
	b.metricsLock.RLock()
	defer b.metricsLock.RUnlock()

	return map[string]uint64{
		"events_published": b.published,
		"errors":           b.errors,
	}
}

// processMessages processes events from Redis pub/sub.
func (b *RedisBus) processMessages() {
	defer b.wg.Done()

	ch := b.pubsub.Channel()

	for {
		select {
		case redisMsg, ok := <-ch:
			if !ok {
				return
			}

			b.handleRedisMessage(redisMsg)

		case <-b.ctx.Done():
			return
		}
	}
}

// handleRedisMessage handles a Redis pub/sub message.
func (b *RedisBus) handleRedisMessage(redisMsg *redis.Message) {
	var evt Event
	if err := json.Unmarshal([]byte(redisMsg.Payload), &evt); err != nil {
		b.log.Error("Failed to unmarshal event", zap.Error(err))
		b.incrementErrors()
		return
	}

	if !strings.HasPrefix(redisMsg.Channel, b.prefix) {
		b.log.Warn("Unknown channel format", zap.String("channel", redisMsg.Channel))
		return
	}

	b.mu.RLock()
	handlers := b.handlers[evt.Kind]
	b.mu.RUnlock()

	if len(handlers) == 0 {
		b.log.Debug("No handlers subscribed for kind",
			zap.String("kind", string(evt.Kind)))
		return
	}

	b.log.Debug("Processing event",
		zap.String("kind", string(evt.Kind)),
		zap.String("event_id", evt.ID))

	for _, handler := range handlers {
		if err := handler(b.ctx, &evt); err != nil {
			b.incrementErrors()
			b.log.Error("Handler error",
				zap.String("kind", string(evt.Kind)),
				zap.String("event_id", evt.ID),
				zap.Error(err))
		}
	}
}

func (b *RedisBus) incrementPublished() {
	b.metricsLock.Lock()
	b.published++
	b.metricsLock.Unlock()
}

func (b *RedisBus) incrementErrors() {
	b.metricsLock.Lock()
	b.errors++
	b.metricsLock.Unlock()
}
