// Package handlers routes classified interaction events to
// application-level handlers.
package handlers

import (
	"context"

	"hookcord/pkg/interaction"
)

// CommandHandler handles a slash command interaction.
type CommandHandler func(ctx context.Context, cmd *interaction.CommandInteraction) error

// ContextMenuHandler handles a user or message context menu interaction.
type ContextMenuHandler func(ctx context.Context, menu *interaction.ContextMenuInteraction) error

// ButtonHandler handles a button component interaction.
type ButtonHandler func(ctx context.Context, btn *interaction.ButtonInteraction) error
