// Package discord models the interaction wire protocol: numeric
// discriminants, raw callback payloads, and the entity structures
// referenced by resolved option tables.
package discord

// InteractionType is the top-level discriminant of a callback payload.
type InteractionType int

const (
	InteractionPing               InteractionType = 1
	InteractionApplicationCommand InteractionType = 2
	InteractionMessageComponent   InteractionType = 3
)

// String returns the symbolic form, or "" for unknown codes.
func (t InteractionType) String() string {
	switch t {
	case InteractionPing:
		return "PING"
	case InteractionApplicationCommand:
		return "APPLICATION_COMMAND"
	case InteractionMessageComponent:
		return "MESSAGE_COMPONENT"
	default:
		return ""
	}
}

// CommandType discriminates application command payloads.
type CommandType int

const (
	CommandChatInput CommandType = 1
	CommandUser      CommandType = 2
	CommandMessage   CommandType = 3
)

func (t CommandType) String() string {
	switch t {
	case CommandChatInput:
		return "CHAT_INPUT"
	case CommandUser:
		return "USER"
	case CommandMessage:
		return "MESSAGE"
	default:
		return ""
	}
}

// ComponentType discriminates message component payloads.
type ComponentType int

const (
	ComponentActionRow  ComponentType = 1
	ComponentButton     ComponentType = 2
	ComponentSelectMenu ComponentType = 3
)

func (t ComponentType) String() string {
	switch t {
	case ComponentActionRow:
		return "ACTION_ROW"
	case ComponentButton:
		return "BUTTON"
	case ComponentSelectMenu:
		return "SELECT_MENU"
	default:
		return ""
	}
}

// OptionType is the declared type of a command option.
type OptionType int

const (
	OptionSubCommand      OptionType = 1
	OptionSubCommandGroup OptionType = 2
	OptionString          OptionType = 3
	OptionInteger         OptionType = 4
	OptionBoolean         OptionType = 5
	OptionUser            OptionType = 6
	OptionChannel         OptionType = 7
	OptionRole            OptionType = 8
	OptionMentionable     OptionType = 9
	OptionNumber          OptionType = 10
)

func (t OptionType) String() string {
	switch t {
	case OptionSubCommand:
		return "SUB_COMMAND"
	case OptionSubCommandGroup:
		return "SUB_COMMAND_GROUP"
	case OptionString:
		return "STRING"
	case OptionInteger:
		return "INTEGER"
	case OptionBoolean:
		return "BOOLEAN"
	case OptionUser:
		return "USER"
	case OptionChannel:
		return "CHANNEL"
	case OptionRole:
		return "ROLE"
	case OptionMentionable:
		return "MENTIONABLE"
	case OptionNumber:
		return "NUMBER"
	default:
		return ""
	}
}

// ResponseType is the type field of an interaction response body.
type ResponseType int

const (
	ResponsePong                             ResponseType = 1
	ResponseChannelMessageWithSource         ResponseType = 4
	ResponseDeferredChannelMessageWithSource ResponseType = 5
)

// MessageFlag is a bit in a message's flags field.
type MessageFlag int

const (
	FlagEphemeral MessageFlag = 1 << 6
)
