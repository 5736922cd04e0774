package discord

import (
	"fmt"
	"time"
)

// Member is an immutable view over a raw guild member record.
// Construct with NewMember; the record's User sub-object must already
// be populated (merged from the resolved users table when needed).
type Member struct {
	ID           string
	GuildID      string
	Nickname     string
	DisplayName  string
	Avatar       string
	AvatarURL    string
	Mention      string
	Roles        []string
	JoinedAt     time.Time
	PremiumSince *time.Time
	Deaf         bool
	Mute         bool
	IsPending    bool
	User         *User
}

// NewMember constructs a Member from a raw record.
func NewMember(data *MemberData, guildID string) *Member {
	if data == nil || data.User == nil {
		return nil
	}

	user := NewUser(data.User)

	displayName := data.Nick
	if displayName == "" {
		displayName = data.User.Username
	}

	mention := fmt.Sprintf("<@%s>", data.User.ID)
	if data.Nick != "" {
		mention = fmt.Sprintf("<@!%s>", data.User.ID)
	}

	joinedAt, _ := time.Parse(time.RFC3339, data.JoinedAt)

	var premiumSince *time.Time
	if data.PremiumSince != "" {
		if t, err := time.Parse(time.RFC3339, data.PremiumSince); err == nil {
			premiumSince = &t
		}
	}

	return &Member{
		ID:           data.User.ID,
		GuildID:      guildID,
		Nickname:     data.Nick,
		DisplayName:  displayName,
		Avatar:       data.Avatar,
		AvatarURL:    memberAvatarURL(data, guildID),
		Mention:      mention,
		Roles:        data.Roles,
		JoinedAt:     joinedAt,
		PremiumSince: premiumSince,
		Deaf:         data.Deaf,
		Mute:         data.Mute,
		IsPending:    data.IsPending,
		User:         user,
	}
}

// String returns the member's mention.
func (m *Member) String() string {
	return m.Mention
}

// memberAvatarURL prefers the guild avatar, then the user avatar, then
// a stock avatar.
func memberAvatarURL(data *MemberData, guildID string) string {
	if data.Avatar != "" && guildID != "" {
		return fmt.Sprintf("%s/guilds/%s/users/%s/avatars/%s", cdnBase, guildID, data.User.ID, data.Avatar)
	}
	return userAvatarURL(data.User)
}
