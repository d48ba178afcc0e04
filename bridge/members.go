package bridge

import (
	"context"

	"github.com/samber/lo"

	"threadlink/domain"
)

// MembershipRegistry tracks participants room-wide and per instance.
// The two references are always added and removed together.
type MembershipRegistry struct {
	room      *Room
	all       []*domain.Participant
	memberSeq int
	anonSeq   int

	// pending dedupes interactive join prompts, keyed by user id +
	// thread id while a prompt is open.
	pending map[string]struct{}

	// departed keeps the last display name per user id after removal,
	// so reply attribution never falls back to a real name an instance
	// only ever saw anonymized.
	departed map[string]string
}

func newMembershipRegistry(room *Room) *MembershipRegistry {
	return &MembershipRegistry{
		room:     room,
		pending:  make(map[string]struct{}),
		departed: make(map[string]string),
	}
}

// canAdmit reports whether the instance has roster capacity left.
func (m *MembershipRegistry) canAdmit(inst *Instance) bool {
	max := m.room.policy.MaxMembersPerInstance
	return max == 0 || len(inst.Members) < max
}

func (m *MembershipRegistry) byUserID(userID string) *domain.Participant {
	p, _ := lo.Find(m.all, func(p *domain.Participant) bool {
		return p.User.ID == userID
	})
	return p
}

// create admits a user into an instance. Display identity is computed
// once here; anonymous numbers are monotonic and never reused, even
// after the participant leaves.
func (m *MembershipRegistry) create(ctx context.Context, inst *Instance, user *domain.User, anonymous bool) (*domain.Participant, bool) {
	if !m.canAdmit(inst) {
		return nil, false
	}
	anonNumber := 0
	if anonymous {
		m.anonSeq++
		anonNumber = m.anonSeq
	}
	name, avatar := domain.Identity(user, anonymous, anonNumber)
	p := &domain.Participant{
		User:        user,
		Anonymous:   anonymous,
		DisplayName: name,
		AvatarURL:   avatar,
		Index:       m.memberSeq,
	}
	m.memberSeq++
	m.all = append(m.all, p)
	inst.Members = append(inst.Members, p)
	delete(m.departed, user.ID)
	m.room.log.Info("member joined", "user", user.ID, "as", p.DisplayName, "thread", inst.Thread.ID)
	m.room.broadcastJoin(ctx, inst, p)
	m.room.refreshRosters(ctx)
	return p, true
}

// remove deletes the participant from both lists and fires the leave
// side effects.
func (m *MembershipRegistry) remove(ctx context.Context, inst *Instance, p *domain.Participant) {
	m.all = lo.Without(m.all, p)
	inst.Members = lo.Without(inst.Members, p)
	m.departed[p.User.ID] = p.DisplayName
	m.room.log.Info("member left", "user", p.User.ID, "as", p.DisplayName)
	m.room.broadcastLeave(ctx, inst, p)
	m.room.refreshRosters(ctx)
}
