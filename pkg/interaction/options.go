package interaction

import (
	"hookcord/pkg/discord"
)

// ResolvedOption is one node of the resolved argument tree. Options is
// populated only on sub-command and sub-command-group nodes, Value
// only on leaves, and Member/User only on USER-typed options whose
// value matches an entry in the payload's resolved table.
type ResolvedOption struct {
	Name    string
	Type    discord.OptionType
	Value   interface{}
	Options []*ResolvedOption
	Member  *discord.Member
	User    *discord.User
}

// ResolvedEntities is the per-invocation projection of the payload's
// resolved table, with member records merged against their user
// records.
type ResolvedEntities struct {
	Members map[string]*discord.Member
	Users   map[string]*discord.User
}

// OptionResolver is a read-only view over a command's flattened
// options. If the raw array starts with a sub-command-group node the
// view descends into it, and again if a sub-command node follows, so
// the effective options are always the leaf arguments.
type OptionResolver struct {
	IsSubCommand        bool
	IsSubCommandGroup   bool
	SubCommandName      string
	SubCommandGroupName string
	Resolved            *ResolvedEntities

	options []*ResolvedOption
}

// NewOptionResolver transforms the raw option tree and resolved table
// of a command payload. Both inputs may be nil.
func NewOptionResolver(raw []discord.RawOption, resolved *discord.ResolvedData, guildID string) *OptionResolver {
	transformed := make([]*ResolvedOption, 0, len(raw))
	for idx := range raw {
		transformed = append(transformed, transformOption(&raw[idx], resolved, guildID))
	}

	r := &OptionResolver{
		Resolved: transformResolved(resolved, guildID),
		options:  transformed,
	}

	if len(transformed) > 0 {
		switch transformed[0].Type {
		case discord.OptionSubCommand:
			r.IsSubCommand = true
			r.SubCommandName = transformed[0].Name
			r.options = transformed[0].Options
		case discord.OptionSubCommandGroup:
			r.IsSubCommandGroup = true
			r.SubCommandGroupName = transformed[0].Name
			r.options = transformed[0].Options
		}
	}

	// A group wraps exactly one sub-command level below it.
	if r.IsSubCommandGroup && len(r.options) > 0 && r.options[0].Type == discord.OptionSubCommand {
		r.SubCommandName = r.options[0].Name
		r.options = r.options[0].Options
	}

	return r
}

// transformOption maps one raw node, recursing into nested options and
// cross-referencing USER-typed values against the resolved table.
func transformOption(raw *discord.RawOption, resolved *discord.ResolvedData, guildID string) *ResolvedOption {
	result := &ResolvedOption{
		Name:  raw.Name,
		Type:  raw.Type,
		Value: raw.Value,
	}

	if raw.Options != nil {
		result.Options = make([]*ResolvedOption, 0, len(raw.Options))
		for idx := range raw.Options {
			result.Options = append(result.Options, transformOption(&raw.Options[idx], resolved, guildID))
		}
	}

	if resolved != nil && raw.Type == discord.OptionUser {
		id, _ := raw.Value.(string)

		if memberData, ok := resolved.Members[id]; ok {
			merged := memberData
			if userData, ok := resolved.Users[id]; ok {
				merged.User = &userData
			}
			result.Member = discord.NewMember(&merged, guildID)
		}

		if userData, ok := resolved.Users[id]; ok {
			result.User = discord.NewUser(&userData)
		}
	}

	return result
}

// transformResolved builds the id-keyed entity projection once per
// invocation.
func transformResolved(resolved *discord.ResolvedData, guildID string) *ResolvedEntities {
	result := &ResolvedEntities{}

	if resolved == nil {
		return result
	}

	if resolved.Members != nil {
		result.Members = make(map[string]*discord.Member, len(resolved.Members))
		for id, memberData := range resolved.Members {
			merged := memberData
			if userData, ok := resolved.Users[id]; ok {
				merged.User = &userData
			}
			result.Members[id] = discord.NewMember(&merged, guildID)
		}
	}

	if resolved.Users != nil {
		result.Users = make(map[string]*discord.User, len(resolved.Users))
		for id, userData := range resolved.Users {
			userData := userData
			result.Users[id] = discord.NewUser(&userData)
		}
	}

	return result
}

// All returns the effective (flattened) options.
func (r *OptionResolver) All() []*ResolvedOption {
	return r.options
}

// Get returns the named option, or nil if absent.
func (r *OptionResolver) Get(name string) *ResolvedOption {
	for _, opt := range r.options {
		if opt.Name == name {
			return opt
		}
	}
	return nil
}

// GetString returns a STRING option's value, or "".
func (r *OptionResolver) GetString(name string) string {
	opt := r.Get(name)
	if opt == nil || opt.Type != discord.OptionString {
		return ""
	}
	s, _ := opt.Value.(string)
	return s
}

// GetInteger returns an INTEGER option's value, or 0.
func (r *OptionResolver) GetInteger(name string) int64 {
	opt := r.Get(name)
	if opt == nil || opt.Type != discord.OptionInteger {
		return 0
	}
	return int64(numericValue(opt.Value))
}

// GetNumber returns a NUMBER option's value, or 0.
func (r *OptionResolver) GetNumber(name string) float64 {
	opt := r.Get(name)
	if opt == nil || opt.Type != discord.OptionNumber {
		return 0
	}
	return numericValue(opt.Value)
}

// GetBoolean returns a BOOLEAN option's value, or false.
func (r *OptionResolver) GetBoolean(name string) bool {
	opt := r.Get(name)
	if opt == nil || opt.Type != discord.OptionBoolean {
		return false
	}
	b, _ := opt.Value.(bool)
	return b
}

// GetUser returns a USER option's resolved user, or nil.
func (r *OptionResolver) GetUser(name string) *discord.User {
	opt := r.Get(name)
	if opt == nil || opt.Type != discord.OptionUser {
		return nil
	}
	return opt.User
}

// GetMember returns a USER option's resolved member, or nil.
func (r *OptionResolver) GetMember(name string) *discord.Member {
	opt := r.Get(name)
	if opt == nil || opt.Type != discord.OptionUser {
		return nil
	}
	return opt.Member
}

// GetSubCommand returns the sub-command name, or "".
func (r *OptionResolver) GetSubCommand() string {
	return r.SubCommandName
}

// GetSubCommandGroup returns the sub-command-group name, or "".
func (r *OptionResolver) GetSubCommandGroup() string {
	return r.SubCommandGroupName
}

// numericValue normalizes JSON-decoded numbers.
func numericValue(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
