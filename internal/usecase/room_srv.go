package usecase

import (
	"context"
	"fmt"

	"room-booking/internal/data/entity"
	"room-booking/internal/data/repository"
	"room-booking/internal/dto/response"

	"go.uber.org/zap"
)

type RoomService interface {
	GetRooms(ctx context.Context) ([]response.RoomResponse, error)
	GetRoomByID(ctx context.Context, roomID string) (*response.RoomResponse, error)
}

type roomService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewRoomService(repo *repository.Repository, log *zap.Logger) RoomService {
	return &roomService{
		repo: repo,
		log:  log.With(zap.String("service", "room")),
	}
}

// GetRooms lists the catalog, seeding the default set when it is empty. The
// seed is idempotent: fixed IDs mean a concurrent first-load rewrites the
// same rows.
func (s *roomService) GetRooms(ctx context.Context) ([]response.RoomResponse, error) {
	rooms, err := s.repo.Room.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get rooms", zap.Error(err))
		return nil, fmt.Errorf("get rooms: %w", err)
	}

	if len(rooms) == 0 {
		rooms = entity.DefaultRooms()
		if err := s.repo.Room.SaveAll(ctx, rooms); err != nil {
			s.log.Error("Failed to seed default rooms", zap.Error(err))
			return nil, fmt.Errorf("seed default rooms: %w", err)
		}
		s.log.Info("Room catalog seeded with defaults", zap.Int("count", len(rooms)))
	}

	roomResponses := make([]response.RoomResponse, len(rooms))
	for i, room := range rooms {
		roomResponses[i] = response.RoomToResponse(room)
	}

	return roomResponses, nil
}

func (s *roomService) GetRoomByID(ctx context.Context, roomID string) (*response.RoomResponse, error) {
	if roomID == "" {
		return nil, fmt.Errorf("invalid room ID")
	}

	room, err := s.repo.Room.FindByID(ctx, roomID)
	if err != nil {
		s.log.Error("Failed to get room", zap.Error(err), zap.String("room_id", roomID))
		return nil, fmt.Errorf("get room %s: %w", roomID, err)
	}
	if room == nil {
		return nil, fmt.Errorf("room %s not found", roomID)
	}

	resp := response.RoomToResponse(room)
	return &resp, nil
}
