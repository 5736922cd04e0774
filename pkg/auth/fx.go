package auth

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"hookcord/pkg/bus"
	"hookcord/pkg/config"
	"hookcord/pkg/logger"
	"hookcord/pkg/state"
)

// refreshSchedule re-fetches the credential well inside its validity
// window.
const refreshSchedule = "@every 12h"

// Module is the fx module for credential management.
var Module = fx.Module("auth",
	fx.Provide(ProvideManager),
)

// ProvideManager creates the credential manager for fx. When no
// application credentials are configured the manager is nil and
// outbound authorized calls are unavailable.
func ProvideManager(
	lc fx.Lifecycle,
	log *logger.Logger,
	cfg *config.Config,
	kv state.KV,
	eventBus bus.Bus,
) *Manager {
	if cfg.App.ClientID == "" {
		log.Info("No application credentials configured, credential manager disabled")
		return nil
	}

	manager := NewManager(log, &Config{
		ClientID:     cfg.App.ClientID,
		ClientSecret: cfg.App.ClientSecret,
		Scope:        cfg.App.Scope,
		APIBase:      cfg.App.APIBase,
	}, kv, eventBus)

	scheduler := cron.New()

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := manager.Start(ctx); err != nil {
				return err
			}

			_, err := scheduler.AddFunc(refreshSchedule, func() {
				if err := manager.Refresh(context.Background()); err != nil {
					log.Error("Scheduled credential refresh failed", zap.Error(err))
				}
			})
			if err != nil {
				return err
			}

			scheduler.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			stopCtx := scheduler.Stop()
			select {
			case <-stopCtx.Done():
			case <-ctx.Done():
			}
			return nil
		},
	})

	return manager
}
