// Package bridge implements the room/instance/membership engine: room
// lifecycle and capacity policy, channel-instance management, message
// fan-out with failure recovery, and the participant join/anonymity
// model. The chat platform itself is reached only through the
// contract.Transport collaborator.
package bridge

import (
	"log/slog"
	"math/rand/v2"
	"sync"

	"threadlink/contract"
	"threadlink/domain"
	tlerrors "threadlink/errors"
	"threadlink/observability"
)

// Deps bundles the collaborators injected into every room.
type Deps struct {
	Transport contract.Transport
	Log       *slog.Logger
	Metrics   *observability.Metrics
}

const (
	idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 4

	// maxIDDraws bounds collision retries. The id space (36^4) vastly
	// exceeds any realistic number of live rooms, so hitting the bound
	// means the table is effectively full.
	maxIDDraws = 128
)

// RoomRegistry is the process-wide room table, created at startup and
// injected into everything that needs lookup.
type RoomRegistry struct {
	mu    sync.RWMutex
	deps  Deps
	rooms map[string]*Room
	newID func() string
}

func NewRoomRegistry(deps Deps) *RoomRegistry {
	if deps.Log == nil {
		deps.Log = slog.Default()
	}
	return &RoomRegistry{
		deps:  deps,
		rooms: make(map[string]*Room),
		newID: randomID,
	}
}

func randomID() string {
	b := make([]byte, idLength)
	for i := range b {
		b[i] = idAlphabet[rand.IntN(len(idAlphabet))]
	}
	return string(b)
}

// Create allocates a room under a freshly drawn id and registers it.
func (r *RoomRegistry) Create(roomType domain.RoomType) (*Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for range maxIDDraws {
		id := r.newID()
		if _, taken := r.rooms[id]; taken {
			continue
		}
		room := newRoom(id, roomType, r.deps)
		r.rooms[id] = room
		r.deps.Metrics.IncrRoomsCreated()
		r.deps.Log.Info("room created", "room", id, "type", roomType.String())
		return room, nil
	}
	return nil, tlerrors.ErrCapacityExhausted
}

func (r *RoomRegistry) Get(id string) (*Room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[id]
	return room, ok
}

// Delete removes the registry entry only. Live instances and their
// subscriptions are not cascaded; callers run Room.Teardown first.
func (r *RoomRegistry) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rooms[id]; !ok {
		return false
	}
	delete(r.rooms, id)
	r.deps.Metrics.IncrRoomsDeleted()
	r.deps.Log.Info("room deleted", "room", id)
	return true
}

func (r *RoomRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

// Snapshots returns the current rooms' info for display tooling.
func (r *RoomRegistry) Snapshots() []RoomInfo {
	r.mu.RLock()
	rooms := make([]*Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		rooms = append(rooms, room)
	}
	r.mu.RUnlock()

	infos := make([]RoomInfo, 0, len(rooms))
	for _, room := range rooms {
		infos = append(infos, room.Snapshot())
	}
	return infos
}
