package user

import (
	"context"

	"congrego/internal/domain"
)

// UserRepositoryInterface — only the methods the user admin service uses.
type UserRepositoryInterface interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ListAll(ctx context.Context) ([]domain.User, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]any) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}
