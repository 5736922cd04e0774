package interaction

import (
	"hookcord/pkg/discord"
)

// CommandInteraction represents a slash-command invocation.
type CommandInteraction struct {
	Interaction

	CommandID   string
	CommandName string
	Options     *OptionResolver
}

// NewCommandInteraction builds a CommandInteraction from a verified
// CHAT_INPUT payload. Missing data fields stay at their zero values;
// the payload shape is trusted once verified.
func NewCommandInteraction(payload *discord.InteractionPayload, responder Responder, webhookOpts ...discord.WebhookOption) *CommandInteraction {
	data := payload.Data
	if data == nil {
		data = &discord.InteractionData{}
	}

	return &CommandInteraction{
		Interaction: newInteraction(payload, responder, webhookOpts),
		CommandID:   data.ID,
		CommandName: data.Name,
		Options:     NewOptionResolver(data.Options, data.Resolved, payload.GuildID),
	}
}
