package interaction

import (
	"hookcord/pkg/discord"
)

// ContextMenuInteraction represents a user or message context-menu
// invocation. Its target is normalized into the option-resolution path
// as a synthesized USER option.
type ContextMenuInteraction struct {
	Interaction

	CommandID   string
	CommandName string
	TargetID    string
	TargetType  discord.CommandType
	Options     *OptionResolver
}

// NewContextMenuInteraction builds a ContextMenuInteraction from a
// verified USER or MESSAGE command payload.
func NewContextMenuInteraction(payload *discord.InteractionPayload, responder Responder, webhookOpts ...discord.WebhookOption) *ContextMenuInteraction {
	data := payload.Data
	if data == nil {
		data = &discord.InteractionData{}
	}

	return &ContextMenuInteraction{
		Interaction: newInteraction(payload, responder, webhookOpts),
		CommandID:   data.ID,
		CommandName: data.Name,
		TargetID:    data.TargetID,
		TargetType:  data.Type,
		Options:     NewOptionResolver(contextMenuOptions(data), data.Resolved, payload.GuildID),
	}
}

// contextMenuOptions synthesizes the options array for a context-menu
// target. User targets become a single USER option valued with the
// target id; message targets are not yet handled.
func contextMenuOptions(data *discord.InteractionData) []discord.RawOption {
	if data.Resolved == nil {
		return nil
	}

	if _, ok := data.Resolved.Users[data.TargetID]; ok {
		return []discord.RawOption{
			{
				Name:  "user",
				Type:  discord.OptionUser,
				Value: data.TargetID,
			},
		}
	}

	return nil
}
