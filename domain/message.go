// Package domain contains core concepts of the conversation bridge.
// This file defines message events and relay payloads. Inbound messages
// are immutable once delivered by the transport.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message is an inbound chat event as delivered by the transport.
type Message struct {
	ID          uuid.UUID
	ChannelID   string
	Author      *User
	Content     string
	Attachments []string
	ReplyTo     *ReplyRef
	FromRelay   bool
	System      bool
	CreatedAt   time.Time
}

// Empty reports whether the message carries nothing worth relaying.
func (m *Message) Empty() bool {
	return m.Content == "" && len(m.Attachments) == 0
}

// ReplyRef points at the message a reply quotes.
type ReplyRef struct {
	AuthorID   string
	AuthorName string
	Excerpt    string
}

// Outbound is the payload handed to a relay endpoint. An empty
// DisplayName means the transport should post under the system identity.
type Outbound struct {
	Content     string
	DisplayName string
	AvatarURL   string
	ThreadID    string
	Embeds      []Embed
}

// Embed is a minimal rich block used for join/leave notifications.
type Embed struct {
	Title       string
	Description string
}
