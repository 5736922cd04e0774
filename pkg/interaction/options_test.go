package interaction

import (
	"encoding/json"
	"testing"

	"hookcord/pkg/discord"
)

func rawOptions(t *testing.T, src string) []discord.RawOption {
	t.Helper()
	var opts []discord.RawOption
	if err := json.Unmarshal([]byte(src), &opts); err != nil {
		t.Fatalf("bad test fixture: %v", err)
	}
	return opts
}

func TestResolverSimpleOption(t *testing.T) {
	opts := rawOptions(t, `[{"name":"n","type":4,"value":7}]`)

	r := NewOptionResolver(opts, nil, "")

	if r.IsSubCommand {
		t.Error("IsSubCommand should be false")
	}
	if r.IsSubCommandGroup {
		t.Error("IsSubCommandGroup should be false")
	}

	opt := r.Get("n")
	if opt == nil {
		t.Fatal("Get(n) returned nil")
	}
	if v, ok := opt.Value.(float64); !ok || v != 7 {
		t.Errorf("Get(n).Value = %v", opt.Value)
	}
	if got := r.GetInteger("n"); got != 7 {
		t.Errorf("GetInteger(n) = %d", got)
	}
}

func TestResolverSubCommand(t *testing.T) {
	opts := rawOptions(t, `[{"name":"sub","type":1,"options":[{"name":"x","type":3,"value":"hi"}]}]`)

	r := NewOptionResolver(opts, nil, "")

	if !r.IsSubCommand {
		t.Error("IsSubCommand should be true")
	}
	if r.GetSubCommand() != "sub" {
		t.Errorf("GetSubCommand() = %q", r.GetSubCommand())
	}
	if got := r.GetString("x"); got != "hi" {
		t.Errorf("GetString(x) = %q", got)
	}
}

func TestResolverSubCommandGroup(t *testing.T) {
	opts := rawOptions(t, `[{"name":"grp","type":2,"options":[{"name":"sub","type":1,"options":[{"name":"x","type":3,"value":"hi"}]}]}]`)

	r := NewOptionResolver(opts, nil, "")

	if !r.IsSubCommandGroup {
		t.Error("IsSubCommandGroup should be true")
	}
	if r.GetSubCommandGroup() != "grp" {
		t.Errorf("GetSubCommandGroup() = %q", r.GetSubCommandGroup())
	}
	if r.GetSubCommand() != "sub" {
		t.Errorf("GetSubCommand() = %q", r.GetSubCommand())
	}

	opt := r.Get("x")
	if opt == nil {
		t.Fatal("effective options should flatten to the leaf arguments")
	}
	if opt.Value != "hi" {
		t.Errorf("Get(x).Value = %v", opt.Value)
	}
}

func TestResolverUserOption(t *testing.T) {
	opts := rawOptions(t, `[{"name":"target","type":6,"value":"53908232506183680"}]`)

	resolved := &discord.ResolvedData{
		Members: map[string]discord.MemberData{
			"53908232506183680": {Nick: "masonry", JoinedAt: "2021-03-04T05:06:07Z"},
		},
		Users: map[string]discord.UserData{
			"53908232506183680": {ID: "53908232506183680", Username: "Mason", Discriminator: "9876"},
		},
	}

	r := NewOptionResolver(opts, resolved, "guild-1")

	opt := r.Get("target")
	if opt == nil {
		t.Fatal("Get(target) returned nil")
	}
	if opt.Member == nil {
		t.Fatal("Member should be populated")
	}
	if opt.User == nil {
		t.Fatal("User should be populated")
	}
	if opt.Member.DisplayName != "masonry" {
		t.Errorf("Member.DisplayName = %q", opt.Member.DisplayName)
	}
	if opt.Member.User == nil || opt.Member.User.Username != "Mason" {
		t.Error("member record should be merged with the user record")
	}
	if opt.User.Username != "Mason" {
		t.Errorf("User.Username = %q", opt.User.Username)
	}

	if got := r.GetMember("target"); got == nil || got.ID != "53908232506183680" {
		t.Error("GetMember(target) should return the resolved member")
	}
	if got := r.GetUser("target"); got == nil || got.ID != "53908232506183680" {
		t.Error("GetUser(target) should return the resolved user")
	}
}

func TestResolverEntitiesProjection(t *testing.T) {
	resolved := &discord.ResolvedData{
		Members: map[string]discord.MemberData{
			"1": {Nick: "one"},
		},
		Users: map[string]discord.UserData{
			"1": {ID: "1", Username: "One", Discriminator: "0001"},
			"2": {ID: "2", Username: "Two", Discriminator: "0002"},
		},
	}

	r := NewOptionResolver(nil, resolved, "guild-1")

	if len(r.Resolved.Members) != 1 {
		t.Fatalf("Members projection size = %d", len(r.Resolved.Members))
	}
	if len(r.Resolved.Users) != 2 {
		t.Fatalf("Users projection size = %d", len(r.Resolved.Users))
	}
	if r.Resolved.Members["1"].User == nil || r.Resolved.Members["1"].User.Username != "One" {
		t.Error("projected member should merge its user record")
	}
	if r.Resolved.Users["2"].Username != "Two" {
		t.Errorf("projected user = %+v", r.Resolved.Users["2"])
	}
}

func TestResolverUnknownOptionType(t *testing.T) {
	opts := rawOptions(t, `[{"name":"odd","type":99,"value":"?"}]`)

	r := NewOptionResolver(opts, nil, "")

	opt := r.Get("odd")
	if opt == nil {
		t.Fatal("unknown-typed option should still be present")
	}
	if opt.Type.String() != "" {
		t.Errorf("unknown type symbol = %q, want empty", opt.Type.String())
	}
	if r.GetString("odd") != "" {
		t.Error("typed getter should return zero value for unknown type")
	}
	if r.GetUser("odd") != nil {
		t.Error("GetUser should return nil for unknown type")
	}
}

func TestResolverEmptyInputs(t *testing.T) {
	r := NewOptionResolver(nil, nil, "")

	if len(r.All()) != 0 {
		t.Error("expected no options")
	}
	if r.Get("missing") != nil {
		t.Error("Get on empty resolver should be nil")
	}
	if r.GetBoolean("missing") {
		t.Error("GetBoolean on empty resolver should be false")
	}
}

func TestResolverTypedGetters(t *testing.T) {
	opts := rawOptions(t, `[
		{"name":"s","type":3,"value":"str"},
		{"name":"i","type":4,"value":42},
		{"name":"b","type":5,"value":true},
		{"name":"f","type":10,"value":2.5}
	]`)

	r := NewOptionResolver(opts, nil, "")

	if got := r.GetString("s"); got != "str" {
		t.Errorf("GetString = %q", got)
	}
	if got := r.GetInteger("i"); got != 42 {
		t.Errorf("GetInteger = %d", got)
	}
	if !r.GetBoolean("b") {
		t.Error("GetBoolean = false")
	}
	if got := r.GetNumber("f"); got != 2.5 {
		t.Errorf("GetNumber = %v", got)
	}

	// Type-mismatched lookups return zero values.
	if got := r.GetString("i"); got != "" {
		t.Errorf("GetString on integer option = %q", got)
	}
	if got := r.GetInteger("s"); got != 0 {
		t.Errorf("GetInteger on string option = %d", got)
	}
}
