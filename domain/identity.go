package domain

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

const (
	// MaxRelayContentLength is the transport's hard message size limit.
	MaxRelayContentLength = 2000

	// quoteExcerptLimit caps the quoted part of a reply.
	quoteExcerptLimit = 80
)

// AnonymousName renders the synthesized display name for the nth
// anonymous participant of a room. Numbers are room-scoped, monotonic
// and never reused.
func AnonymousName(n int) string {
	return fmt.Sprintf("Anonymous %d", n)
}

// Identity computes the display name and avatar a participant shows on
// relayed messages. Anonymous participants get a synthesized name and no
// avatar, so the transport falls back to its default one.
func Identity(user *User, anonymous bool, anonNumber int) (name, avatar string) {
	if anonymous {
		return AnonymousName(anonNumber), ""
	}
	return user.Name, user.AvatarURL
}

// Mention renders an inline attribution of a display name.
func Mention(name string) string {
	return "@" + name
}

// QuoteExcerpt renders the quoted block prepended to relayed replies:
// first line only, capped, with an ellipsis when cut.
func QuoteExcerpt(content string) string {
	line, _, _ := strings.Cut(content, "\n")
	r := []rune(line)
	if len(r) > quoteExcerptLimit {
		line = string(r[:quoteExcerptLimit]) + "…"
	}
	return "> " + line
}

// TruncateContent cuts content to at most limit runes.
func TruncateContent(content string, limit int) string {
	r := []rune(content)
	if len(r) <= limit {
		return content
	}
	return string(r[:limit])
}

// RenderRoster renders the starter-message summary of a room: member
// count and an ordinal list in insertion order.
func RenderRoster(members []*Participant) string {
	lines := lo.Map(members, func(p *Participant, i int) string {
		return fmt.Sprintf("%d. %s", i+1, p.DisplayName)
	})
	header := fmt.Sprintf("Bridged conversation — %d member(s)", len(members))
	if len(lines) == 0 {
		return header
	}
	return header + "\n" + strings.Join(lines, "\n")
}
