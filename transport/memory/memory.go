// Package memory provides an in-process contract.Transport used by the
// tests and the demo binary. Delivery order is FIFO per thread: raw
// events go through one queue consumed by a single dispatcher.
package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"threadlink/contract"
	"threadlink/domain"
	tlerrors "threadlink/errors"
)

// Notice is a recorded private notification.
type Notice struct {
	ChannelID   string
	ResponderID string
	Text        string
}

// PromptRecord is a recorded interactive prompt and its outcome.
type PromptRecord struct {
	ChannelID   string
	ResponderID string
	Prompt      string
	Choices     []contract.Choice
	Result      contract.ChoiceResult

	// Disposed marks the prompt message as deleted. In-process there is
	// no platform UI to linger in, so disposal happens at resolution
	// instead of after contract.PromptCleanupDelay.
	Disposed bool
}

type subEntry struct {
	filter  contract.MessageFilter
	handler contract.MessageHandler
}

type subscription struct {
	t      *Transport
	thread string
}

func (s *subscription) Cancel() {
	s.t.mu.Lock()
	defer s.t.mu.Unlock()
	delete(s.t.subs, s.thread)
}

type Transport struct {
	log *slog.Logger

	mu         sync.Mutex
	threads    map[string]contract.ThreadRef
	endpoints  map[string]contract.EndpointRef
	subs       map[string]*subEntry
	gone       map[string]struct{}
	failSend   map[string]error
	failThread error
	sent       map[string][]domain.Outbound
	starters   map[string]string
	choices    map[string][]contract.ChoiceResult
	notices    []Notice
	prompts    []PromptRecord

	queue chan *domain.Message
}

var _ contract.Transport = (*Transport)(nil)
var _ contract.Worker = (*Transport)(nil)

func NewTransport(log *slog.Logger, bufferSize int) *Transport {
	return &Transport{
		log:       log,
		threads:   make(map[string]contract.ThreadRef),
		endpoints: make(map[string]contract.EndpointRef),
		subs:      make(map[string]*subEntry),
		gone:      make(map[string]struct{}),
		failSend:  make(map[string]error),
		sent:      make(map[string][]domain.Outbound),
		starters:  make(map[string]string),
		choices:   make(map[string][]contract.ChoiceResult),
		queue:     make(chan *domain.Message, bufferSize),
	}
}

// NewTextChannel allocates a raw top-level text channel handle.
func (t *Transport) NewTextChannel() contract.ChannelRef {
	return contract.ChannelRef{ID: uuid.NewString(), Kind: contract.KindText}
}

// NewChannel allocates a raw channel handle of the given kind.
func (t *Transport) NewChannel(kind contract.ChannelKind) contract.ChannelRef {
	return contract.ChannelRef{ID: uuid.NewString(), Kind: kind}
}

func (t *Transport) StartThread(ctx context.Context, anchor contract.ChannelRef, name string) (contract.ThreadRef, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.failThread != nil {
		err := t.failThread
		t.failThread = nil
		return contract.ThreadRef{}, err
	}
	ref := contract.ThreadRef{ID: uuid.NewString(), ParentID: anchor.ID, Name: name}
	t.threads[ref.ID] = ref
	return ref, nil
}

func (t *Transport) EnsureRelayEndpoint(ctx context.Context, channel contract.ChannelRef) (contract.EndpointRef, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if ep, ok := t.endpoints[channel.ID]; ok {
		return ep, nil
	}
	ep := contract.EndpointRef{ID: uuid.NewString(), ChannelID: channel.ID}
	t.endpoints[channel.ID] = ep
	return ep, nil
}

func (t *Transport) SubscribeMessages(thread contract.ThreadRef, filter contract.MessageFilter, handler contract.MessageHandler) (contract.Subscription, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.subs[thread.ID] = &subEntry{filter: filter, handler: handler}
	return &subscription{t: t, thread: thread.ID}, nil
}

func (t *Transport) SendViaRelay(ctx context.Context, endpoint contract.EndpointRef, out domain.Outbound) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err, ok := t.failSend[out.ThreadID]; ok {
		delete(t.failSend, out.ThreadID)
		return err
	}
	if _, gone := t.gone[out.ThreadID]; gone {
		return fmt.Errorf("thread %s: %w", out.ThreadID, tlerrors.ErrChannelGone)
	}
	t.sent[out.ThreadID] = append(t.sent[out.ThreadID], out)
	return nil
}

func (t *Transport) PromptChoice(ctx context.Context, re *domain.Message, prompt string, choices []contract.Choice, responderID string, timeout time.Duration) (contract.ChoiceResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	res := contract.ChoiceResult{TimedOut: true}
	if q := t.choices[responderID]; len(q) > 0 {
		res = q[0]
		t.choices[responderID] = q[1:]
	}
	t.prompts = append(t.prompts, PromptRecord{
		ChannelID:   re.ChannelID,
		ResponderID: responderID,
		Prompt:      prompt,
		Choices:     choices,
		Result:      res,
		Disposed:    true,
	})
	return res, nil
}

func (t *Transport) Notify(ctx context.Context, channelID, responderID, text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.notices = append(t.notices, Notice{ChannelID: channelID, ResponderID: responderID, Text: text})
}

func (t *Transport) UpdateStarter(ctx context.Context, thread contract.ThreadRef, content string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, gone := t.gone[thread.ID]; gone {
		return fmt.Errorf("thread %s: %w", thread.ID, tlerrors.ErrChannelGone)
	}
	t.starters[thread.ID] = content
	return nil
}

// Deliver dispatches one raw message to the thread's subscriber in the
// caller's goroutine. The subscriber lookup happens under the lock, the
// handler runs outside it so it may call back into the transport.
func (t *Transport) Deliver(ctx context.Context, msg *domain.Message) {
	t.mu.Lock()
	entry, ok := t.subs[msg.ChannelID]
	t.mu.Unlock()
	if !ok {
		return
	}
	if entry.filter != nil && !entry.filter(msg) {
		return
	}
	entry.handler(ctx, msg)
}

// Post enqueues a raw message for the dispatcher goroutine.
func (t *Transport) Post(msg *domain.Message) {
	select {
	case t.queue <- msg:
	default:
		t.log.Warn("event queue full, dropping message", "channel", msg.ChannelID)
	}
}

// Run consumes the event queue until the context ends, preserving the
// order messages were posted.
func (t *Transport) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-t.queue:
			if !ok {
				return nil
			}
			t.Deliver(ctx, msg)
		}
	}
}

// ThreadsUnder lists the threads started under a raw channel.
func (t *Transport) ThreadsUnder(channelID string) []contract.ThreadRef {
	t.mu.Lock()
	defer t.mu.Unlock()
	var refs []contract.ThreadRef
	for _, ref := range t.threads {
		if ref.ParentID == channelID {
			refs = append(refs, ref)
		}
	}
	return refs
}

// MarkGone makes subsequent sends and starter updates to the thread
// fail with ErrChannelGone.
func (t *Transport) MarkGone(threadID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.gone[threadID] = struct{}{}
}

// ScriptChoice queues a prompt outcome for a responder.
func (t *Transport) ScriptChoice(responderID string, res contract.ChoiceResult) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.choices[responderID] = append(t.choices[responderID], res)
}

// ScriptSendError makes the next send to a thread fail with err.
func (t *Transport) ScriptSendError(threadID string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failSend[threadID] = err
}

// FailNextThreadStart makes the next StartThread call fail with err.
func (t *Transport) FailNextThreadStart(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failThread = err
}

// Sent returns the payloads relayed into a thread so far.
func (t *Transport) Sent(threadID string) []domain.Outbound {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]domain.Outbound, len(t.sent[threadID]))
	copy(out, t.sent[threadID])
	return out
}

// Starter returns the current starter-message content of a thread.
func (t *Transport) Starter(threadID string) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.starters[threadID]
}

func (t *Transport) Notices() []Notice {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Notice, len(t.notices))
	copy(out, t.notices)
	return out
}

func (t *Transport) Prompts() []PromptRecord {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]PromptRecord, len(t.prompts))
	copy(out, t.prompts)
	return out
}

// Subscribed reports whether a live subscription exists for the thread.
func (t *Transport) Subscribed(threadID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.subs[threadID]
	return ok
}
