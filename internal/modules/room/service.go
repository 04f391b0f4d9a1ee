package room

import (
	"context"
	"errors"
	"time"

	"congrego/internal/domain"
	"congrego/internal/repository"
)

type Service struct {
	rooms        RoomRepositoryInterface
	storeTimeout time.Duration
}

func NewService(rooms RoomRepositoryInterface, storeTimeout time.Duration) *Service {
	return &Service{rooms: rooms, storeTimeout: storeTimeout}
}

func (s *Service) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.storeTimeout)
}

func (s *Service) Create(ctx context.Context, req CreateRoomRequest) (*domain.Room, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	room := &domain.Room{
		Name:        req.Name,
		Size:        req.Size,
		Description: req.Description,
		Exclusive:   req.Exclusive,
		Status:      domain.RoomStatus(req.Status),
	}
	if room.Status == "" {
		room.Status = domain.RoomAvailable
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return room, nil
}

func (s *Service) ListAll(ctx context.Context) ([]domain.Room, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	return s.rooms.ListAll(ctx)
}

func (s *Service) Search(ctx context.Context, name string) ([]domain.Room, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	return s.rooms.SearchByName(ctx, name)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateRoomRequest) (*domain.Room, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	fields := req.fields()
	if len(fields) == 0 {
		return s.GetByID(ctx, id)
	}

	room, err := s.rooms.UpdateFields(ctx, id, fields)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return room, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	if err := s.rooms.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRoomNotFound
		}
		return err
	}
	return nil
}
