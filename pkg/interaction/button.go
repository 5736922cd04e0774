package interaction

import (
	"context"

	"hookcord/pkg/discord"
)

// ButtonInteraction represents a button click on a message component.
type ButtonInteraction struct {
	Interaction

	ComponentType discord.ComponentType
	CustomID      string
	Message       *discord.Message
}

// NewButtonInteraction builds a ButtonInteraction from a verified
// BUTTON component payload.
func NewButtonInteraction(payload *discord.InteractionPayload, responder Responder, webhookOpts ...discord.WebhookOption) *ButtonInteraction {
	data := payload.Data
	if data == nil {
		data = &discord.InteractionData{}
	}

	return &ButtonInteraction{
		Interaction:   newInteraction(payload, responder, webhookOpts),
		ComponentType: data.ComponentType,
		CustomID:      data.CustomID,
		Message:       discord.NewMessage(payload.Message, payload.GuildID),
	}
}

// Followup sends a message over the webhook channel. Component
// interactions may follow up without an explicit defer step.
func (i *ButtonInteraction) Followup(ctx context.Context, payload *discord.WebhookPayload) (*discord.Message, error) {
	msg, err := i.webhook.Send(ctx, payload)
	if err != nil {
		return nil, err
	}

	i.replied = true
	return msg, nil
}
