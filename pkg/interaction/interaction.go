// Package interaction classifies verified callback payloads into typed
// interaction variants and guards the reply protocol of each one.
package interaction

import (
	"context"

	"hookcord/pkg/discord"
)

// Interaction carries the fields shared by every variant plus the
// per-interaction reply state. An Interaction is owned by the single
// request handler that constructed it and is never shared.
type Interaction struct {
	ApplicationID string
	ChannelID     string
	GuildID       string
	ID            string
	Member        *discord.Member
	User          *discord.User
	Token         string
	Type          discord.InteractionType
	Version       int

	deferred  bool
	ephemeral bool
	replied   bool

	responder Responder
	webhook   *discord.WebhookClient
}

// newInteraction builds the shared base from a raw payload. The user
// is derived from the member's user sub-object in guild context, from
// the top-level user otherwise.
func newInteraction(payload *discord.InteractionPayload, responder Responder, webhookOpts []discord.WebhookOption) Interaction {
	member := discord.NewMember(payload.Member, payload.GuildID)

	var user *discord.User
	if member != nil {
		user = member.User
	} else {
		user = discord.NewUser(payload.User)
	}

	return Interaction{
		ApplicationID: payload.ApplicationID,
		ChannelID:     payload.ChannelID,
		GuildID:       payload.GuildID,
		ID:            payload.ID,
		Member:        member,
		User:          user,
		Token:         payload.Token,
		Type:          payload.Type,
		Version:       payload.Version,
		responder:     responder,
		webhook:       discord.NewWebhookClient(payload.ApplicationID, payload.Token, webhookOpts...),
	}
}

// InGuild reports whether the interaction was sent from a guild.
func (i *Interaction) InGuild() bool {
	return i.GuildID != "" && i.Member != nil
}

// Deferred reports whether the reply has been deferred.
func (i *Interaction) Deferred() bool {
	return i.deferred
}

// Ephemeral reports whether the reply is ephemeral.
func (i *Interaction) Ephemeral() bool {
	return i.ephemeral
}

// Replied reports whether a follow-up message has been sent.
func (i *Interaction) Replied() bool {
	return i.replied
}

// Webhook returns the outbound webhook client for this interaction.
func (i *Interaction) Webhook() *discord.WebhookClient {
	return i.webhook
}

// Defer sends the deferred acknowledgement as the initial response.
// It is valid only while no initial response has been sent; calling it
// after any acknowledgement fails with ErrAlreadyReplied.
func (i *Interaction) Defer() error {
	if i.responder == nil || i.responder.Sent() {
		return ErrAlreadyReplied
	}

	if err := i.responder.Respond(200, map[string]interface{}{
		"type": discord.ResponseDeferredChannelMessageWithSource,
	}); err != nil {
		return err
	}

	i.deferred = true
	return nil
}

// DeferEphemeral sends a deferred acknowledgement whose eventual reply
// is visible only to the invoking user.
func (i *Interaction) DeferEphemeral() error {
	if i.responder == nil || i.responder.Sent() {
		return ErrAlreadyReplied
	}

	if err := i.responder.Respond(200, map[string]interface{}{
		"type": discord.ResponseDeferredChannelMessageWithSource,
		"data": map[string]interface{}{
			"flags": discord.FlagEphemeral,
		},
	}); err != nil {
		return err
	}

	i.deferred = true
	i.ephemeral = true
	return nil
}

// Followup sends a message over the interaction's webhook channel. It
// is valid only after the initial response has been sent; calling it
// earlier fails with ErrNotAcknowledged and leaves the reply state
// unchanged. An interaction rebuilt from a serialized event has no
// responder at all; the process that received the HTTP request already
// sent the initial reply, so such interactions may follow up directly.
func (i *Interaction) Followup(ctx context.Context, payload *discord.WebhookPayload) (*discord.Message, error) {
	if i.responder != nil && !i.responder.Sent() {
		return nil, ErrNotAcknowledged
	}

	msg, err := i.webhook.Send(ctx, payload)
	if err != nil {
		return nil, err
	}

	i.replied = true
	return msg, nil
}
