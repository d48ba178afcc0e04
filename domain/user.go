// Package domain contains core concepts of the conversation bridge.
// This file defines user identities. Identities are always referenced
// through pointers, never duplicated.
package domain

// User is the underlying chat-platform identity behind a participant.
type User struct {
	ID        string
	Name      string
	AvatarURL string
}

// System is the identity used for bridge-originated messages such as
// join/leave notifications and relay payloads without an explicit sender.
var System = &User{ID: "system", Name: "Threadlink"}
