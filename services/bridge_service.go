package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"threadlink/bridge"
	"threadlink/contract"
	"threadlink/domain"
	tlerrors "threadlink/errors"
)

var validate = validator.New()

// JoinRequest is the command-layer payload for bridging a channel into
// an existing room.
type JoinRequest struct {
	// RoomID is matched case-insensitively; Join normalizes it.
	RoomID    string `validate:"required,len=4,alphanum"`
	Anchor    contract.ChannelRef
	User      *domain.User `validate:"required"`
	Anonymous bool
}

type IBridgeService interface {
	CreateRoom(roomType string) (*bridge.Room, error)
	Join(ctx context.Context, req JoinRequest) (bool, error)
	DeleteRoom(ctx context.Context, id string) error
	RoomInfo(id string) (bridge.RoomInfo, error)
}

// BridgeService is the surface the command layer talks to: room
// creation, join-by-id, deletion and display snapshots.
type BridgeService struct {
	log   *slog.Logger
	rooms *bridge.RoomRegistry
}

func NewBridgeService(log *slog.Logger, rooms *bridge.RoomRegistry) *BridgeService {
	return &BridgeService{log: log, rooms: rooms}
}

func (s *BridgeService) CreateRoom(roomType string) (*bridge.Room, error) {
	t, err := domain.ParseRoomType(roomType)
	if err != nil {
		return nil, err
	}
	return s.rooms.Create(t)
}

// Join bridges the anchor channel into the requested room and admits
// the requesting user as its first local participant.
func (s *BridgeService) Join(ctx context.Context, req JoinRequest) (bool, error) {
	if err := validate.Struct(req); err != nil {
		return false, fmt.Errorf("join request: %w", err)
	}
	room, ok := s.rooms.Get(strings.ToLower(req.RoomID))
	if !ok {
		return false, tlerrors.ErrRoomNotFound
	}
	return room.CreateThread(ctx, req.Anchor, req.User, req.Anonymous)
}

// DeleteRoom tears the room's instances down, then drops the registry
// entry. Registry deletion alone never cascades.
func (s *BridgeService) DeleteRoom(ctx context.Context, id string) error {
	room, ok := s.rooms.Get(id)
	if !ok {
		return tlerrors.ErrRoomNotFound
	}
	room.Teardown(ctx)
	s.rooms.Delete(id)
	return nil
}

func (s *BridgeService) RoomInfo(id string) (bridge.RoomInfo, error) {
	room, ok := s.rooms.Get(id)
	if !ok {
		return bridge.RoomInfo{}, tlerrors.ErrRoomNotFound
	}
	return room.Snapshot(), nil
}
