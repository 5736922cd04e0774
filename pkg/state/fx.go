package state

import (
	"context"
	"path/filepath"

	"go.uber.org/fx"

	"hookcord/pkg/config"
	"hookcord/pkg/logger"
)

// Module is the fx module for state management.
var Module = fx.Module("state",
	fx.Provide(NewKVStore),
)

// NewKVStore creates a new KV store for fx.
func NewKVStore(
	lc fx.Lifecycle,
	log *logger.Logger,
	cfg *config.Config,
) (KV, error) {
	stateConfig := &Config{
		Backend:  BackendType(cfg.State.Backend),
		FilePath: filepath.Join(cfg.StateDir(), "state.json"),
	}

	// Shared Redis settings with a state-specific prefix.
	if cfg.Redis.Addr != "" {
		stateConfig.RedisAddr = cfg.Redis.Addr
		stateConfig.RedisPassword = cfg.Redis.Password
		stateConfig.RedisDB = cfg.Redis.DB
		stateConfig.RedisPrefix = cfg.Redis.Prefix + "state:"
	}

	store, err := NewKV(log, stateConfig)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("State store initialized")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return store.Close()
		},
	})

	return store, nil
}
