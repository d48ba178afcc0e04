package domain

import "fmt"

// RoomType selects the capacity policy of a room.
type RoomType int

const (
	// OneOnOne bridges exactly two channels with one participant each.
	OneOnOne RoomType = iota
	// Party imposes no caps on instances or members.
	Party
)

func (t RoomType) String() string {
	switch t {
	case OneOnOne:
		return "one-on-one"
	case Party:
		return "party"
	default:
		return fmt.Sprintf("room-type(%d)", int(t))
	}
}

// ParseRoomType converts the command-layer spelling of a room type.
func ParseRoomType(s string) (RoomType, error) {
	switch s {
	case "one-on-one", "1on1":
		return OneOnOne, nil
	case "party":
		return Party, nil
	default:
		return 0, fmt.Errorf("unknown room type %q", s)
	}
}

// CapacityPolicy holds the caps derived from a room type.
// A zero value means unlimited.
type CapacityPolicy struct {
	MaxInstances          int
	MaxMembersPerInstance int
}

// Capacity returns the policy for the room type.
func (t RoomType) Capacity() CapacityPolicy {
	if t == OneOnOne {
		return CapacityPolicy{MaxInstances: 2, MaxMembersPerInstance: 1}
	}
	return CapacityPolicy{}
}
