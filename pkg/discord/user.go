package discord

import (
	"fmt"
	"strconv"
)

const cdnBase = "https://cdn.discordapp.com"

// User is an immutable view over a raw user record with derived
// display fields. Construct with NewUser.
type User struct {
	ID            string
	Username      string
	Discriminator string
	Avatar        string
	Bot           bool
	AvatarURL     string
	Tag           string
	Mention       string
}

// NewUser constructs a User from a raw record.
func NewUser(data *UserData) *User {
	if data == nil {
		return nil
	}

	return &User{
		ID:            data.ID,
		Username:      data.Username,
		Discriminator: data.Discriminator,
		Avatar:        data.Avatar,
		Bot:           data.Bot,
		AvatarURL:     userAvatarURL(data),
		Tag:           fmt.Sprintf("%s#%s", data.Username, data.Discriminator),
		Mention:       fmt.Sprintf("<@%s>", data.ID),
	}
}

// String returns the user's mention.
func (u *User) String() string {
	return u.Mention
}

func userAvatarURL(data *UserData) string {
	if data.Avatar != "" {
		return fmt.Sprintf("%s/avatars/%s/%s", cdnBase, data.ID, data.Avatar)
	}
	return fmt.Sprintf("%s/embed/avatars/%d.png", cdnBase, defaultAvatarIndex(data.Discriminator))
}

// defaultAvatarIndex picks one of the five stock avatars.
func defaultAvatarIndex(discriminator string) int {
	n, err := strconv.Atoi(discriminator)
	if err != nil {
		return 0
	}
	return n % 5
}
