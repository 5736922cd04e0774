package bus

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	"hookcord/pkg/config"
	"hookcord/pkg/logger"
)

// Backend names accepted by the bus.type config field.
const (
	BackendLocal = "local"
	BackendRedis = "redis"
)

const defaultBufferSize = 100

// Module is the fx module for the event bus.
var Module = fx.Module("bus",
	fx.Provide(NewEventBus),
)

// NewEventBus creates the event bus backend chosen by configuration
// and ties it to the fx lifecycle.
func NewEventBus(
	lc fx.Lifecycle,
	log *logger.Logger,
	cfg *config.Config,
) (Bus, error) {
	bus, err := newBackend(log, cfg)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return bus.Start()
		},
		OnStop: func(ctx context.Context) error {
			return bus.Stop()
		},
	})

	return bus, nil
}

// newBackend selects local in-process delivery or redis pub/sub. Both
// route events by Kind; the redis backend namespaces its channels with
// the shared redis prefix plus "bus:".
func newBackend(log *logger.Logger, cfg *config.Config) (Bus, error) {
	size := cfg.Bus.BufferSize
	if size <= 0 {
		size = defaultBufferSize
	}

	switch cfg.Bus.Type {
	case BackendLocal, "":
		return NewLocalBus(log, size), nil

	case BackendRedis:
		if cfg.Redis.Addr == "" {
			return nil, fmt.Errorf("redis address is required for the redis bus")
		}
		return NewRedisBus(log, &RedisBusConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix + "bus:",
		})

	default:
		return nil, fmt.Errorf("unknown bus backend: %s", cfg.Bus.Type)
	}
}
