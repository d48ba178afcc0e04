package bridge

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/samber/lo"

	"threadlink/contract"
	"threadlink/domain"
	tlerrors "threadlink/errors"
)

// JoinPromptTimeout is how long the interactive join confirmation waits
// for the original sender before resolving to "no response".
const JoinPromptTimeout = 30 * time.Second

const joinPrompt = "You're not part of this bridge yet. Join to have your messages relayed?"

const (
	choiceJoin     = "join"
	choiceJoinAnon = "join-anon"
)

var joinChoices = []contract.Choice{
	{ID: choiceJoin, Label: "Join and relay this message"},
	{ID: choiceJoinAnon, Label: "Join anonymously and relay this message"},
}

// Room is the aggregate root of one bridged conversation. All room
// state is guarded by a single mutex: one inbound event is processed to
// completion before the next, except the interactive join wait, which
// releases the lock for its duration.
type Room struct {
	ID   string
	Type domain.RoomType

	mu        sync.Mutex
	deps      Deps
	policy    domain.CapacityPolicy
	instances *InstanceRegistry
	members   *MembershipRegistry
	log       *slog.Logger
}

func newRoom(id string, roomType domain.RoomType, deps Deps) *Room {
	r := &Room{
		ID:     id,
		Type:   roomType,
		deps:   deps,
		policy: roomType.Capacity(),
		log:    deps.Log.With("room", id),
	}
	r.members = newMembershipRegistry(r)
	r.instances = newInstanceRegistry(r)
	return r
}

// CreateThread bridges a new channel into the room: relay endpoint,
// sub-channel, instance registration, subscription and the initiator's
// membership. Returns false without side effects when the room is at
// its instance cap.
func (r *Room) CreateThread(ctx context.Context, anchor contract.ChannelRef, initiator *domain.User, anonymous bool) (bool, error) {
	if anchor.Kind != contract.KindText {
		return false, tlerrors.ErrInvalidChannelKind
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.instances.hasCapacity() {
		return false, nil
	}
	endpoint, err := r.deps.Transport.EnsureRelayEndpoint(ctx, anchor)
	if err != nil {
		return false, fmt.Errorf("relay endpoint for channel %s: %w", anchor.ID, err)
	}
	thread, err := r.deps.Transport.StartThread(ctx, anchor, "bridge-"+r.ID)
	if err != nil {
		return false, fmt.Errorf("bridge thread under channel %s: %w", anchor.ID, err)
	}
	inst, err := r.instances.create(thread, endpoint)
	if err != nil {
		return false, err
	}
	r.members.create(ctx, inst, initiator, anonymous)
	return true, nil
}

// handleMessage is the entry point for every qualifying inbound event.
func (r *Room) handleMessage(ctx context.Context, msg *domain.Message) {
	if msg.Author == nil || msg.Empty() {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	src := r.instances.byChannel(msg.ChannelID)
	if src == nil {
		// arrived after instance teardown
		return
	}
	p := src.member(msg.Author.ID)
	if p == nil {
		if !r.members.canAdmit(src) {
			// The triggering message is never retroactively relayed; the
			// prompt flow handles user feedback on its own.
			r.requestJoin(ctx, src, msg)
			return
		}
		var ok bool
		if p, ok = r.members.create(ctx, src, msg.Author, false); !ok {
			return
		}
	}
	r.instances.fanOut(ctx, src, msg, p)
}

// requestJoin runs the interactive join confirmation for a non-member
// whose instance is full. Caller holds the room lock; the wait itself
// runs unlocked so other events keep flowing.
func (r *Room) requestJoin(ctx context.Context, inst *Instance, msg *domain.Message) *domain.Participant {
	key := msg.Author.ID + "/" + inst.Thread.ID
	if _, dup := r.members.pending[key]; dup {
		return nil
	}
	r.members.pending[key] = struct{}{}
	r.deps.Metrics.IncrJoinsPrompted()

	r.mu.Unlock()
	res, err := r.deps.Transport.PromptChoice(ctx, msg, joinPrompt, joinChoices, msg.Author.ID, JoinPromptTimeout)
	r.mu.Lock()

	delete(r.members.pending, key)
	if err != nil || res.TimedOut {
		r.deps.Metrics.IncrJoinTimeouts()
		r.log.Debug("join prompt expired", "user", msg.Author.ID, "thread", inst.Thread.ID)
		return nil
	}
	if !r.instances.contains(inst) {
		// instance torn down while the prompt was open
		return nil
	}
	p, ok := r.members.create(ctx, inst, msg.Author, res.Choice == choiceJoinAnon)
	if !ok {
		// capacity filled again while the prompt was open
		r.deps.Transport.Notify(ctx, msg.ChannelID, msg.Author.ID, "The bridge filled up before you could join.")
		return nil
	}
	r.deps.Metrics.IncrJoinsAccepted()
	r.deps.Transport.Notify(ctx, msg.ChannelID, msg.Author.ID,
		fmt.Sprintf("You joined as %s. Your next messages will be relayed.", p.DisplayName))
	return p
}

func (r *Room) broadcastJoin(ctx context.Context, inst *Instance, p *domain.Participant) {
	r.instances.sendTo(ctx, r.instances.allExcept(inst), domain.Outbound{
		Embeds: []domain.Embed{{Title: "Member joined", Description: p.DisplayName + " joined the bridge"}},
	})
}

func (r *Room) broadcastLeave(ctx context.Context, inst *Instance, p *domain.Participant) {
	r.instances.sendTo(ctx, r.instances.allExcept(inst), domain.Outbound{
		Embeds: []domain.Embed{{Title: "Member left", Description: p.DisplayName + " left the bridge"}},
	})
}

// refreshRosters re-renders every instance's starter message to the
// current room-wide roster. Invoked after every join and leave.
func (r *Room) refreshRosters(ctx context.Context) {
	summary := domain.RenderRoster(r.members.all)
	for _, inst := range r.instances.list {
		if err := r.deps.Transport.UpdateStarter(ctx, inst.Thread, summary); err != nil {
			r.log.Debug("starter refresh failed", "thread", inst.Thread.ID, "err", err)
		}
	}
}

// visibleReplyName resolves a reply author's identity as the target
// instance may see it. Anonymous authors keep their synthesized name
// everywhere, even after leaving; a live mention or the raw platform
// name would deanonymize them.
func (r *Room) visibleReplyName(ref *domain.ReplyRef, target *Instance) string {
	p := r.members.byUserID(ref.AuthorID)
	if p == nil {
		if name, ok := r.members.departed[ref.AuthorID]; ok {
			return name
		}
		return ref.AuthorName
	}
	if p.Anonymous {
		return p.DisplayName
	}
	if target.member(ref.AuthorID) != nil {
		return domain.Mention(p.DisplayName)
	}
	return p.DisplayName
}

// Leave removes the user's participant record from whichever instance
// holds it.
func (r *Room) Leave(ctx context.Context, userID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inst := range r.instances.list {
		if p := inst.member(userID); p != nil {
			r.members.remove(ctx, inst, p)
			return true
		}
	}
	return false
}

// Teardown cancels every instance subscription and clears membership.
// RoomRegistry.Delete does not cascade; run this first.
func (r *Room) Teardown(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for len(r.instances.list) > 0 {
		r.instances.remove(ctx, r.instances.list[len(r.instances.list)-1])
	}
}

// RoomInfo is a display snapshot of one room.
type RoomInfo struct {
	ID        string
	Type      string
	Instances int
	Members   []string
}

func (r *Room) Snapshot() RoomInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return RoomInfo{
		ID:        r.ID,
		Type:      r.Type.String(),
		Instances: len(r.instances.list),
		Members: lo.Map(r.members.all, func(p *domain.Participant, _ int) string {
			return p.DisplayName
		}),
	}
}
