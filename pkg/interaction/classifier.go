package interaction

import (
	"hookcord/pkg/bus"
	"hookcord/pkg/discord"
)

// Classify inspects a verified, non-ping payload's discriminant fields
// and constructs the matching interaction variant along with the event
// kind it is published under. Unmapped discriminants (select menus,
// unknown command and component types) return ok=false and are dropped
// by the caller without error.
func Classify(payload *discord.InteractionPayload, responder Responder, webhookOpts ...discord.WebhookOption) (instance interface{}, kind bus.Kind, ok bool) {
	switch payload.Type {
	case discord.InteractionApplicationCommand:
		return classifyCommand(payload, responder, webhookOpts)

	case discord.InteractionMessageComponent:
		return classifyComponent(payload, responder, webhookOpts)

	default:
		return nil, "", false
	}
}

func classifyCommand(payload *discord.InteractionPayload, responder Responder, webhookOpts []discord.WebhookOption) (interface{}, bus.Kind, bool) {
	var commandType discord.CommandType
	if payload.Data != nil {
		commandType = payload.Data.Type
	}

	switch commandType {
	case discord.CommandChatInput:
		return NewCommandInteraction(payload, responder, webhookOpts...), bus.KindCommand, true

	case discord.CommandUser, discord.CommandMessage:
		return NewContextMenuInteraction(payload, responder, webhookOpts...), bus.KindContextMenu, true

	default:
		return nil, "", false
	}
}

func classifyComponent(payload *discord.InteractionPayload, responder Responder, webhookOpts []discord.WebhookOption) (interface{}, bus.Kind, bool) {
	var componentType discord.ComponentType
	if payload.Data != nil {
		componentType = payload.Data.ComponentType
	}

	switch componentType {
	case discord.ComponentButton:
		return NewButtonInteraction(payload, responder, webhookOpts...), bus.KindButton, true

	case discord.ComponentSelectMenu:
		// Select menus are not handled yet.
		return nil, "", false

	default:
		return nil, "", false
	}
}
