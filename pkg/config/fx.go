package config

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"hookcord/pkg/logger"
)

// Module provides configuration for fx dependency injection.
var Module = fx.Module("config",
	fx.Provide(ProvideConfig),
	fx.Provide(ProvideLoader),
	fx.Invoke(registerWatcher),
)

// ProvideLoader provides a configuration loader.
func ProvideLoader() *Loader {
	return NewLoader()
}

// ProvideConfig provides loaded configuration.
func ProvideConfig(loader *Loader, lc fx.Lifecycle) (*Config, error) {
	cfg, err := loader.Load("")
	if err != nil {
		return nil, err
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return nil
		},
	})

	return cfg, nil
}

// ProvideConfigWithPath provides configuration from a specific path.
func ProvideConfigWithPath(path string) func(*Loader, fx.Lifecycle) (*Config, error) {
	return func(loader *Loader, lc fx.Lifecycle) (*Config, error) {
		cfg, err := loader.LoadFromFile(path)
		if err != nil {
			return nil, err
		}

		if err := ValidateConfig(cfg); err != nil {
			return nil, err
		}

		return cfg, nil
	}
}

// registerWatcher starts the hot-reload watcher alongside the app.
func registerWatcher(loader *Loader, cfg *Config, lc fx.Lifecycle, log *logger.Logger) {
	watcher := NewWatcher(loader, cfg)

	watcher.AddHandler(func(newCfg *Config) error {
		log.Info("Configuration reloaded",
			zap.String("gateway_host", newCfg.Gateway.Host),
			zap.Int("gateway_port", newCfg.Gateway.Port),
		)
		return nil
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting configuration watcher")
			return watcher.Start()
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Stopping configuration watcher")
			watcher.Stop()
			return nil
		},
	})
}
