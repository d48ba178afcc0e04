package bridge

import (
	"log/slog"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"threadlink/domain"
	tlerrors "threadlink/errors"
	"threadlink/observability"
	"threadlink/transport/memory"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newTestRegistry() *RoomRegistry {
	tr := memory.NewTransport(testLogger(), 16)
	return NewRoomRegistry(Deps{
		Transport: tr,
		Log:       testLogger(),
		Metrics:   observability.NewMetrics(),
	})
}

func TestRoomRegistry_Create_AssignsShortID(t *testing.T) {
	req := require.New(t)
	registry := newTestRegistry()

	room, err := registry.Create(domain.Party)

	req.NoError(err)
	req.Regexp(regexp.MustCompile(`^[a-z0-9]{4}$`), room.ID)

	got, ok := registry.Get(room.ID)
	req.True(ok)
	req.Same(room, got)
}

func TestRoomRegistry_Create_IDsAreUnique(t *testing.T) {
	req := require.New(t)
	registry := newTestRegistry()
	seen := make(map[string]struct{})

	// When many rooms are created
	for range 200 {
		room, err := registry.Create(domain.Party)
		req.NoError(err)

		// Then no id is ever issued twice while registered
		_, dup := seen[room.ID]
		req.False(dup, "id %s issued twice", room.ID)
		seen[room.ID] = struct{}{}
	}
	req.Equal(200, registry.Len())
}

func TestRoomRegistry_Create_FailsWhenIDSpaceExhausted(t *testing.T) {
	req := require.New(t)
	registry := newTestRegistry()
	// Given every draw collides
	registry.newID = func() string { return "aaaa" }

	_, err := registry.Create(domain.Party)
	req.NoError(err)

	_, err = registry.Create(domain.Party)
	req.ErrorIs(err, tlerrors.ErrCapacityExhausted)
}

func TestRoomRegistry_Delete(t *testing.T) {
	req := require.New(t)
	registry := newTestRegistry()
	room, err := registry.Create(domain.OneOnOne)
	req.NoError(err)

	req.True(registry.Delete(room.ID))

	_, ok := registry.Get(room.ID)
	req.False(ok)
	req.False(registry.Delete(room.ID))
}

func TestRoomRegistry_EmptyRoomStaysRegistered(t *testing.T) {
	req := require.New(t)
	registry := newTestRegistry()
	room, err := registry.Create(domain.Party)
	req.NoError(err)

	// When the room is emptied out
	room.Teardown(t.Context())

	// Then it stays registered until explicitly deleted
	_, ok := registry.Get(room.ID)
	req.True(ok)
}
