// Package observability aggregates bridge counters for heartbeat
// reporting and the demo summary. Counters are atomic; a nil *Metrics
// is a no-op so core code never has to guard its increments.
package observability

import "sync/atomic"

type Metrics struct {
	RoomsCreated     atomic.Uint64
	RoomsDeleted     atomic.Uint64
	InstancesCreated atomic.Uint64
	InstancesRemoved atomic.Uint64
	MessagesRelayed  atomic.Uint64
	SendFailures     atomic.Uint64
	JoinsPrompted    atomic.Uint64
	JoinsAccepted    atomic.Uint64
	JoinTimeouts     atomic.Uint64
}

func NewMetrics() *Metrics { return &Metrics{} }

func (m *Metrics) IncrRoomsCreated() {
	if m != nil {
		m.RoomsCreated.Add(1)
	}
}

func (m *Metrics) IncrRoomsDeleted() {
	if m != nil {
		m.RoomsDeleted.Add(1)
	}
}

func (m *Metrics) IncrInstancesCreated() {
	if m != nil {
		m.InstancesCreated.Add(1)
	}
}

func (m *Metrics) IncrInstancesRemoved() {
	if m != nil {
		m.InstancesRemoved.Add(1)
	}
}

func (m *Metrics) IncrMessagesRelayed() {
	if m != nil {
		m.MessagesRelayed.Add(1)
	}
}

func (m *Metrics) IncrSendFailures() {
	if m != nil {
		m.SendFailures.Add(1)
	}
}

func (m *Metrics) IncrJoinsPrompted() {
	if m != nil {
		m.JoinsPrompted.Add(1)
	}
}

func (m *Metrics) IncrJoinsAccepted() {
	if m != nil {
		m.JoinsAccepted.Add(1)
	}
}

func (m *Metrics) IncrJoinTimeouts() {
	if m != nil {
		m.JoinTimeouts.Add(1)
	}
}

// Snapshot returns the counters as ordered key/value pairs suitable for
// slog and table rendering.
func (m *Metrics) Snapshot() []Stat {
	if m == nil {
		return nil
	}
	return []Stat{
		{"rooms_created", m.RoomsCreated.Load()},
		{"rooms_deleted", m.RoomsDeleted.Load()},
		{"instances_created", m.InstancesCreated.Load()},
		{"instances_removed", m.InstancesRemoved.Load()},
		{"messages_relayed", m.MessagesRelayed.Load()},
		{"send_failures", m.SendFailures.Load()},
		{"joins_prompted", m.JoinsPrompted.Load()},
		{"joins_accepted", m.JoinsAccepted.Load()},
		{"join_timeouts", m.JoinTimeouts.Load()},
	}
}

type Stat struct {
	Name  string
	Value uint64
}
