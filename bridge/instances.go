package bridge

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"

	"threadlink/contract"
	"threadlink/domain"
	tlerrors "threadlink/errors"
)

// Instance wraps one bridged channel: its thread, its relay endpoint
// and its local roster. An instance belongs to exactly one room.
type Instance struct {
	Thread   contract.ThreadRef
	Endpoint contract.EndpointRef
	Members  []*domain.Participant

	sub contract.Subscription
}

// member returns the instance-local participant for a user id.
func (i *Instance) member(userID string) *domain.Participant {
	p, _ := lo.Find(i.Members, func(p *domain.Participant) bool {
		return p.User.ID == userID
	})
	return p
}

// relayEventFilter excludes relay-originated and system messages so the
// bridge never echoes its own output back into the fan-out.
func relayEventFilter(m *domain.Message) bool {
	return !m.FromRelay && !m.System
}

// InstanceRegistry owns a room's instance set: creation, fan-out send
// and removal of instances whose relay target disappeared.
type InstanceRegistry struct {
	room *Room
	list []*Instance
}

func newInstanceRegistry(room *Room) *InstanceRegistry {
	return &InstanceRegistry{room: room}
}

func (ir *InstanceRegistry) hasCapacity() bool {
	max := ir.room.policy.MaxInstances
	return max == 0 || len(ir.list) < max
}

func (ir *InstanceRegistry) create(thread contract.ThreadRef, endpoint contract.EndpointRef) (*Instance, error) {
	inst := &Instance{Thread: thread, Endpoint: endpoint}
	sub, err := ir.room.deps.Transport.SubscribeMessages(thread, relayEventFilter, ir.room.handleMessage)
	if err != nil {
		return nil, fmt.Errorf("subscribing to thread %s: %w", thread.ID, err)
	}
	inst.sub = sub
	ir.list = append(ir.list, inst)
	ir.room.deps.Metrics.IncrInstancesCreated()
	ir.room.log.Info("instance registered", "thread", thread.ID, "channel", thread.ParentID)
	return inst, nil
}

func (ir *InstanceRegistry) byChannel(channelID string) *Instance {
	inst, _ := lo.Find(ir.list, func(i *Instance) bool {
		return i.Thread.ID == channelID
	})
	return inst
}

func (ir *InstanceRegistry) contains(inst *Instance) bool {
	return lo.Contains(ir.list, inst)
}

// allExcept returns every instance other than the given one; used for
// message fan-out and join/leave broadcasts.
func (ir *InstanceRegistry) allExcept(inst *Instance) []*Instance {
	return lo.Filter(ir.list, func(i *Instance, _ int) bool {
		return i != inst
	})
}

// fanOut composes and relays one inbound message to every instance but
// the source, under the sending participant's display identity. The
// reply attribution is resolved per target.
func (ir *InstanceRegistry) fanOut(ctx context.Context, src *Instance, msg *domain.Message, p *domain.Participant) {
	base := composeBase(msg)
	var gone []*Instance
	for _, target := range ir.allExcept(src) {
		out := domain.Outbound{
			Content:     ir.room.composeFor(target, msg, base),
			DisplayName: p.DisplayName,
			AvatarURL:   p.AvatarURL,
		}
		if ir.deliver(ctx, target, out) {
			gone = append(gone, target)
		}
	}
	for _, inst := range gone {
		ir.remove(ctx, inst)
	}
}

// sendTo relays one payload to each target. Payloads without an
// explicit sender go out under the system identity.
func (ir *InstanceRegistry) sendTo(ctx context.Context, targets []*Instance, out domain.Outbound) {
	var gone []*Instance
	for _, target := range targets {
		if ir.deliver(ctx, target, out) {
			gone = append(gone, target)
		}
	}
	for _, inst := range gone {
		ir.remove(ctx, inst)
	}
}

// deliver sends one payload and reports true when the target's channel
// is gone and the instance must be removed.
func (ir *InstanceRegistry) deliver(ctx context.Context, target *Instance, out domain.Outbound) bool {
	out.ThreadID = target.Thread.ID
	if out.DisplayName == "" {
		out.DisplayName = domain.System.Name
		out.AvatarURL = domain.System.AvatarURL
	}
	err := ir.room.deps.Transport.SendViaRelay(ctx, target.Endpoint, out)
	switch {
	case err == nil:
		ir.room.deps.Metrics.IncrMessagesRelayed()
		return false
	case errors.Is(err, tlerrors.ErrChannelGone):
		ir.room.deps.Metrics.IncrSendFailures()
		ir.room.log.Warn("relay target gone", "thread", target.Thread.ID)
		return true
	default:
		// at-most-once delivery: transient failures are logged, never retried
		ir.room.deps.Metrics.IncrSendFailures()
		ir.room.log.Warn("relay send failed", "thread", target.Thread.ID, "err", err)
		return false
	}
}

// remove tears an instance down: subscription first, so no further
// events reference it, then its participants, then the registry slot.
func (ir *InstanceRegistry) remove(ctx context.Context, inst *Instance) {
	if !ir.contains(inst) {
		return
	}
	if inst.sub != nil {
		inst.sub.Cancel()
	}
	for len(inst.Members) > 0 {
		ir.room.members.remove(ctx, inst, inst.Members[len(inst.Members)-1])
	}
	ir.list = lo.Without(ir.list, inst)
	ir.room.deps.Metrics.IncrInstancesRemoved()
	ir.room.log.Info("instance removed", "thread", inst.Thread.ID)
}
