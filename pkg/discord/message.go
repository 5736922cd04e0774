package discord

import "time"

// Message is an immutable view over a raw message record.
type Message struct {
	ID              string
	ApplicationID   string
	ChannelID       string
	GuildID         string
	Author          *User
	Content         string
	Timestamp       time.Time
	EditedTimestamp *time.Time
	Type            int
	Pinned          bool
	TTS             bool
	WebhookID       string
	Flags           int
}

// NewMessage constructs a Message from a raw record.
func NewMessage(data *MessageData, guildID string) *Message {
	if data == nil {
		return nil
	}

	timestamp, _ := time.Parse(time.RFC3339, data.Timestamp)

	var edited *time.Time
	if data.EditedTimestamp != "" {
		if t, err := time.Parse(time.RFC3339, data.EditedTimestamp); err == nil {
			edited = &t
		}
	}

	return &Message{
		ID:              data.ID,
		ApplicationID:   data.ApplicationID,
		ChannelID:       data.ChannelID,
		GuildID:         guildID,
		Author:          NewUser(data.Author),
		Content:         data.Content,
		Timestamp:       timestamp,
		EditedTimestamp: edited,
		Type:            data.Type,
		Pinned:          data.Pinned,
		TTS:             data.TTS,
		WebhookID:       data.WebhookID,
		Flags:           data.Flags,
	}
}
