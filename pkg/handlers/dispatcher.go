package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"hookcord/pkg/bus"
	"hookcord/pkg/discord"
	"hookcord/pkg/interaction"
	"hookcord/pkg/logger"
)

// Dispatcher subscribes to the event bus and routes interaction events
// to registered handlers.
type Dispatcher struct {
	registry    *Registry
	log         *logger.Logger
	webhookOpts []discord.WebhookOption
}

// NewDispatcher creates a dispatcher bound to a registry.
func NewDispatcher(registry *Registry, log *logger.Logger, webhookOpts ...discord.WebhookOption) *Dispatcher {
	return &Dispatcher{
		registry:    registry,
		log:         log,
		webhookOpts: webhookOpts,
	}
}

// Attach subscribes the dispatcher to the interaction kinds on the bus.
func (d *Dispatcher) Attach(eventBus bus.Bus) {
	eventBus.Subscribe(bus.KindCommand, d.handleCommand)
	eventBus.Subscribe(bus.KindContextMenu, d.handleContextMenu)
	eventBus.Subscribe(bus.KindButton, d.handleButton)
}

func (d *Dispatcher) handleCommand(ctx context.Context, evt *bus.Event) error {
	cmd, ok := d.materialize(evt).(*interaction.CommandInteraction)
	if !ok {
		return fmt.Errorf("event %s carries no command interaction", evt.ID)
	}

	handler, exists := d.registry.GetCommand(cmd.CommandName)
	if !exists {
		d.log.Warn("No handler for command",
			zap.String("command", cmd.CommandName),
			zap.String("interaction_id", cmd.ID),
		)
		return nil
	}

	if err := handler(ctx, cmd); err != nil {
		d.log.Error("Command handler failed",
			zap.String("command", cmd.CommandName),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (d *Dispatcher) handleContextMenu(ctx context.Context, evt *bus.Event) error {
	menu, ok := d.materialize(evt).(*interaction.ContextMenuInteraction)
	if !ok {
		return fmt.Errorf("event %s carries no context menu interaction", evt.ID)
	}

	handler, exists := d.registry.GetContextMenu(menu.CommandName)
	if !exists {
		d.log.Warn("No handler for context menu",
			zap.String("command", menu.CommandName),
			zap.String("interaction_id", menu.ID),
		)
		return nil
	}

	if err := handler(ctx, menu); err != nil {
		d.log.Error("Context menu handler failed",
			zap.String("command", menu.CommandName),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (d *Dispatcher) handleButton(ctx context.Context, evt *bus.Event) error {
	btn, ok := d.materialize(evt).(*interaction.ButtonInteraction)
	if !ok {
		return fmt.Errorf("event %s carries no button interaction", evt.ID)
	}

	handler, exists := d.registry.GetButton(btn.CustomID)
	if !exists {
		d.log.Warn("No handler for button",
			zap.String("custom_id", btn.CustomID),
			zap.String("interaction_id", btn.ID),
		)
		return nil
	}

	if err := handler(ctx, btn); err != nil {
		d.log.Error("Button handler failed",
			zap.String("custom_id", btn.CustomID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// materialize returns the live interaction carried by the event, or
// rebuilds one from the raw payload. Rebuilt interactions come from
// redis-delivered events on other processes; they have no HTTP
// responder, so only webhook followups work for them.
func (d *Dispatcher) materialize(evt *bus.Event) interface{} {
	if evt.Interaction != nil {
		return evt.Interaction
	}

	if len(evt.Payload) == 0 {
		return nil
	}

	var payload discord.InteractionPayload
	if err := json.Unmarshal(evt.Payload, &payload); err != nil {
		d.log.Warn("Failed to decode event payload",
			zap.String("event_id", evt.ID),
			zap.Error(err),
		)
		return nil
	}

	instance, _, ok := interaction.Classify(&payload, nil, d.webhookOpts...)
	if !ok {
		return nil
	}
	return instance
}
