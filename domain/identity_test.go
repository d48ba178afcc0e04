package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnonymousName(t *testing.T) {
	req := require.New(t)

	req.Equal("Anonymous 1", AnonymousName(1))
	req.Equal("Anonymous 42", AnonymousName(42))
}

func TestIdentity_Anonymous_HidesRealIdentity(t *testing.T) {
	req := require.New(t)
	user := &User{ID: "u1", Name: "alice", AvatarURL: "https://example.test/alice.png"}

	// When an anonymous identity is computed
	name, avatar := Identity(user, true, 2)

	// Then nothing from the real identity leaks
	req.Equal("Anonymous 2", name)
	req.Empty(avatar)
}

func TestIdentity_Real(t *testing.T) {
	req := require.New(t)
	user := &User{ID: "u1", Name: "alice", AvatarURL: "https://example.test/alice.png"}

	name, avatar := Identity(user, false, 0)

	req.Equal("alice", name)
	req.Equal(user.AvatarURL, avatar)
}

func TestMention(t *testing.T) {
	require.Equal(t, "@alice", Mention("alice"))
}

func TestQuoteExcerpt_FirstLineOnly(t *testing.T) {
	req := require.New(t)

	quote := QuoteExcerpt("first line\nsecond line")

	req.Equal("> first line", quote)
}

func TestQuoteExcerpt_CapsLongLines(t *testing.T) {
	req := require.New(t)
	long := strings.Repeat("é", 120)

	quote := QuoteExcerpt(long)

	req.Equal("> "+strings.Repeat("é", 80)+"…", quote)
}

func TestTruncateContent_RuneSafe(t *testing.T) {
	req := require.New(t)
	content := strings.Repeat("é", 2001)

	out := TruncateContent(content, MaxRelayContentLength)

	req.Equal(strings.Repeat("é", 2000), out)
	req.Equal(content, TruncateContent(content, 3000))
}

func TestRenderRoster(t *testing.T) {
	req := require.New(t)

	// Given an empty room
	req.Equal("Bridged conversation — 0 member(s)", RenderRoster(nil))

	// Given two members in insertion order
	members := []*Participant{
		{DisplayName: "alice"},
		{DisplayName: "Anonymous 1"},
	}

	out := RenderRoster(members)

	req.Equal("Bridged conversation — 2 member(s)\n1. alice\n2. Anonymous 1", out)
}

func TestRoomType_Capacity(t *testing.T) {
	req := require.New(t)

	req.Equal(CapacityPolicy{MaxInstances: 2, MaxMembersPerInstance: 1}, OneOnOne.Capacity())
	req.Equal(CapacityPolicy{}, Party.Capacity())
}

func TestParseRoomType(t *testing.T) {
	req := require.New(t)

	party, err := ParseRoomType("party")
	req.NoError(err)
	req.Equal(Party, party)

	duo, err := ParseRoomType("one-on-one")
	req.NoError(err)
	req.Equal(OneOnOne, duo)

	_, err = ParseRoomType("stadium")
	req.Error(err)
}
