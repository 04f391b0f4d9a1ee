package room

import (
	"context"

	"congrego/internal/domain"
)

// RoomRepositoryInterface — only the methods the room service uses.
type RoomRepositoryInterface interface {
	Create(ctx context.Context, r *domain.Room) error
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	ListAll(ctx context.Context) ([]domain.Room, error)
	SearchByName(ctx context.Context, name string) ([]domain.Room, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]any) (*domain.Room, error)
	Delete(ctx context.Context, id int64) error
}
