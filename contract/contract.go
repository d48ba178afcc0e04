//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"time"

	"threadlink/domain"
)

// ChannelKind discriminates what a raw channel handle points at.
// Bridge threads can only be started from top-level text channels.
type ChannelKind int

const (
	KindText ChannelKind = iota
	KindThread
	KindVoice
)

// ChannelRef is an opaque handle to a raw platform channel.
type ChannelRef struct {
	ID   string
	Kind ChannelKind
}

// ThreadRef is an opaque handle to a bridged sub-channel.
type ThreadRef struct {
	ID       string
	ParentID string
	Name     string
}

// EndpointRef is an opaque handle to a relay endpoint (webhook
// equivalent) able to post under an arbitrary display identity.
type EndpointRef struct {
	ID        string
	ChannelID string
}

// MessageFilter decides whether an inbound event reaches the handler.
type MessageFilter func(*domain.Message) bool

// MessageHandler consumes one inbound event to completion.
type MessageHandler func(context.Context, *domain.Message)

// Subscription is a live message-event stream. Cancel must silence the
// handler synchronously; it is invoked exactly once during teardown.
type Subscription interface {
	Cancel()
}

// Choice is one interactive affordance offered on a prompt.
type Choice struct {
	ID    string
	Label string
}

// ChoiceResult is the tagged outcome of an interactive prompt.
type ChoiceResult struct {
	Choice   string
	TimedOut bool
}

// PromptCleanupDelay is how long a resolved prompt lingers before the
// transport deletes it, whatever the outcome was.
const PromptCleanupDelay = 5 * time.Second

// Transport is everything the bridge core requires from the chat
// platform. Implementations own prompt cleanup: prompts are deleted
// shortly after they resolve, regardless of outcome.
type Transport interface {
	// StartThread opens a sub-channel under the anchor channel.
	// Fails with errors.ErrChannelCreation.
	StartThread(ctx context.Context, anchor ChannelRef, name string) (ThreadRef, error)

	// EnsureRelayEndpoint returns the channel's relay endpoint, reusing
	// an existing one. Idempotent.
	EnsureRelayEndpoint(ctx context.Context, channel ChannelRef) (EndpointRef, error)

	// SubscribeMessages delivers inbound events for one thread, in the
	// order the platform produced them, to handler when filter passes.
	SubscribeMessages(thread ThreadRef, filter MessageFilter, handler MessageHandler) (Subscription, error)

	// SendViaRelay posts a payload through an endpoint. Returns
	// errors.ErrChannelGone when the destination no longer exists
	// (terminal for the instance) or errors.ErrTransientSend otherwise.
	SendViaRelay(ctx context.Context, endpoint EndpointRef, out domain.Outbound) error

	// PromptChoice shows an interactive prompt in reply to a message and
	// waits up to timeout for the given responder to pick a choice.
	PromptChoice(ctx context.Context, re *domain.Message, prompt string, choices []Choice, responderID string, timeout time.Duration) (ChoiceResult, error)

	// Notify sends a private, self-deleting notice to one user in a
	// channel. Best effort.
	Notify(ctx context.Context, channelID, responderID, text string)

	// UpdateStarter re-renders the pinned summary message of a thread.
	UpdateStarter(ctx context.Context, thread ThreadRef, content string) error
}
