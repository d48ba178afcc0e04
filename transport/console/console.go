// Package console decorates a Transport for the demo binary: every
// relayed payload and prompt is echoed to the terminal so a bridge
// session can be followed without a chat platform behind it.
package console

import (
	"context"
	"strings"
	"time"

	"github.com/gookit/color"

	"threadlink/contract"
	"threadlink/domain"
)

type Transport struct {
	inner contract.Transport
}

var _ contract.Transport = (*Transport)(nil)

func Wrap(inner contract.Transport) *Transport {
	return &Transport{inner: inner}
}

func (t *Transport) StartThread(ctx context.Context, anchor contract.ChannelRef, name string) (contract.ThreadRef, error) {
	ref, err := t.inner.StartThread(ctx, anchor, name)
	if err == nil {
		color.Green.Printf("+ thread %s started under channel %s\n", name, shortID(anchor.ID))
	}
	return ref, err
}

func (t *Transport) EnsureRelayEndpoint(ctx context.Context, channel contract.ChannelRef) (contract.EndpointRef, error) {
	return t.inner.EnsureRelayEndpoint(ctx, channel)
}

func (t *Transport) SubscribeMessages(thread contract.ThreadRef, filter contract.MessageFilter, handler contract.MessageHandler) (contract.Subscription, error) {
	return t.inner.SubscribeMessages(thread, filter, handler)
}

func (t *Transport) SendViaRelay(ctx context.Context, endpoint contract.EndpointRef, out domain.Outbound) error {
	err := t.inner.SendViaRelay(ctx, endpoint, out)
	if err != nil {
		color.Red.Printf("! send to %s failed: %v\n", shortID(out.ThreadID), err)
		return err
	}
	sender := color.Cyan.Sprintf("%s", out.DisplayName)
	if out.Content != "" {
		color.Println("[" + shortID(out.ThreadID) + "] " + sender + ": " + strings.ReplaceAll(out.Content, "\n", " ⏎ "))
	}
	for _, e := range out.Embeds {
		color.Yellow.Printf("[%s] * %s — %s\n", shortID(out.ThreadID), e.Title, e.Description)
	}
	return nil
}

func (t *Transport) PromptChoice(ctx context.Context, re *domain.Message, prompt string, choices []contract.Choice, responderID string, timeout time.Duration) (contract.ChoiceResult, error) {
	color.Magenta.Printf("? %s (%s)\n", prompt, labels(choices))
	res, err := t.inner.PromptChoice(ctx, re, prompt, choices, responderID, timeout)
	if err == nil && res.TimedOut {
		color.Gray.Println("  … no response, prompt expired")
	}
	return res, err
}

func (t *Transport) Notify(ctx context.Context, channelID, responderID, text string) {
	color.Gray.Printf("(to %s) %s\n", shortID(responderID), text)
	t.inner.Notify(ctx, channelID, responderID, text)
}

func (t *Transport) UpdateStarter(ctx context.Context, thread contract.ThreadRef, content string) error {
	return t.inner.UpdateStarter(ctx, thread, content)
}

func labels(choices []contract.Choice) string {
	parts := make([]string, len(choices))
	for i, c := range choices {
		parts[i] = c.Label
	}
	return strings.Join(parts, " / ")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
