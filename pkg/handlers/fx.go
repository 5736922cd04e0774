package handlers

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"hookcord/pkg/bus"
	"hookcord/pkg/config"
	"hookcord/pkg/discord"
	"hookcord/pkg/logger"
)

// Module provides the handler system.
var Module = fx.Module("handlers",
	fx.Provide(NewRegistry),
	fx.Provide(ProvideDispatcher),
	fx.Invoke(registerBuiltins),
	fx.Invoke(attachDispatcher),
)

// ProvideDispatcher creates the dispatcher with webhook options from config.
func ProvideDispatcher(registry *Registry, log *logger.Logger, cfg *config.Config) *Dispatcher {
	var opts []discord.WebhookOption
	if cfg.App.APIBase != "" {
		opts = append(opts, discord.WithAPIBase(cfg.App.APIBase))
	}
	return NewDispatcher(registry, log, opts...)
}

// registerBuiltins registers built-in handlers on startup.
func registerBuiltins(registry *Registry, log *logger.Logger) error {
	if err := RegisterBuiltinHandlers(registry); err != nil {
		log.Error("Failed to register builtin handlers", zap.Error(err))
		return err
	}

	log.Info("Registered builtin handlers",
		zap.Int("commands", len(registry.CommandNames())))
	return nil
}

// attachDispatcher subscribes the dispatcher to the event bus.
func attachDispatcher(dispatcher *Dispatcher, eventBus bus.Bus) {
	dispatcher.Attach(eventBus)
}
