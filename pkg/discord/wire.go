package discord

// InteractionPayload is the untrusted wire payload of a callback
// request. Its Data shape depends on Type and, within application
// commands, on the nested command Type.
type InteractionPayload struct {
	ApplicationID string           `json:"application_id"`
	ChannelID     string           `json:"channel_id"`
	GuildID       string           `json:"guild_id"`
	ID            string           `json:"id"`
	Member        *MemberData      `json:"member"`
	User          *UserData        `json:"user"`
	Token         string           `json:"token"`
	Type          InteractionType  `json:"type"`
	Version       int              `json:"version"`
	Data          *InteractionData `json:"data"`
	Message       *MessageData     `json:"message"`
}

// InteractionData is the type-dependent data object of a payload.
type InteractionData struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Type          CommandType   `json:"type"`
	Options       []RawOption   `json:"options"`
	Resolved      *ResolvedData `json:"resolved"`
	CustomID      string        `json:"custom_id"`
	ComponentType ComponentType `json:"component_type"`
	TargetID      string        `json:"target_id"`
}

// RawOption is one node of the raw command option tree.
type RawOption struct {
	Name    string      `json:"name"`
	Type    OptionType  `json:"type"`
	Value   interface{} `json:"value,omitempty"`
	Options []RawOption `json:"options,omitempty"`
}

// ResolvedData maps entity ids to full records referenced by option
// values, avoiding duplicate embedding in the payload.
type ResolvedData struct {
	Members map[string]MemberData `json:"members"`
	Users   map[string]UserData   `json:"users"`
}

// UserData is a raw user record.
type UserData struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Discriminator string `json:"discriminator"`
	Avatar        string `json:"avatar"`
	Bot           bool   `json:"bot"`
	PublicFlags   int    `json:"public_flags"`
}

// MemberData is a raw guild member record. Within a resolved table the
// User field is absent and must be merged from the users table.
type MemberData struct {
	User         *UserData `json:"user"`
	Nick         string    `json:"nick"`
	Avatar       string    `json:"avatar"`
	Roles        []string  `json:"roles"`
	JoinedAt     string    `json:"joined_at"`
	PremiumSince string    `json:"premium_since"`
	Deaf         bool      `json:"deaf"`
	Mute         bool      `json:"mute"`
	IsPending    bool      `json:"is_pending"`
	Permissions  string    `json:"permissions"`
}

// MessageData is a raw message record, carried by component
// interactions and returned by webhook sends.
type MessageData struct {
	ID              string    `json:"id"`
	ApplicationID   string    `json:"application_id"`
	ChannelID       string    `json:"channel_id"`
	Author          *UserData `json:"author"`
	Content         string    `json:"content"`
	Timestamp       string    `json:"timestamp"`
	EditedTimestamp string    `json:"edited_timestamp"`
	Type            int       `json:"type"`
	Pinned          bool      `json:"pinned"`
	TTS             bool      `json:"tts"`
	WebhookID       string    `json:"webhook_id"`
	Flags           int       `json:"flags"`
}
