package handlers

import (
	"context"
	"fmt"
	"time"

	"hookcord/pkg/discord"
	"hookcord/pkg/interaction"
	"hookcord/pkg/version"
)

var processStartTime = time.Now()

// RegisterBuiltinHandlers registers the built-in handlers.
func RegisterBuiltinHandlers(registry *Registry) error {
	if err := registry.RegisterCommand("ping", pingHandler); err != nil {
		return fmt.Errorf("failed to register ping: %w", err)
	}
	return nil
}

// pingHandler acknowledges immediately and follows up with status info.
func pingHandler(ctx context.Context, cmd *interaction.CommandInteraction) error {
	start := time.Now()
	if err := cmd.Defer(); err != nil {
		return err
	}

	uptime := time.Since(processStartTime).Round(time.Second)
	content := fmt.Sprintf("Pong! v%s, up %s, ack in %s",
		version.GetVersion(), uptime, time.Since(start).Round(time.Millisecond))

	_, err := cmd.Followup(ctx, &discord.WebhookPayload{Content: content})
	return err
}
