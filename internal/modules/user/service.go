package user

import (
	"context"
	"errors"
	"time"

	"congrego/internal/domain"
	"congrego/internal/repository"
)

type Service struct {
	users        UserRepositoryInterface
	storeTimeout time.Duration
}

func NewService(users UserRepositoryInterface, storeTimeout time.Duration) *Service {
	return &Service{users: users, storeTimeout: storeTimeout}
}

func (s *Service) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.storeTimeout)
}

func (s *Service) ListAll(ctx context.Context) ([]domain.User, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	return s.users.ListAll(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateUserRequest) (*domain.User, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	fields := req.fields()
	if len(fields) == 0 {
		return s.GetByID(ctx, id)
	}

	u, err := s.users.UpdateFields(ctx, id, fields)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
