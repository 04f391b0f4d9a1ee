package member

import (
	"context"

	"congrego/internal/domain"
)

// MemberRepositoryInterface — only the methods the member service uses.
type MemberRepositoryInterface interface {
	Create(ctx context.Context, m *domain.Member) error
	GetByID(ctx context.Context, id int64) (*domain.Member, error)
	ListPage(ctx context.Context, page, pageSize int) ([]domain.Member, int64, error)
	ListAll(ctx context.Context) ([]domain.Member, error)
	SearchByName(ctx context.Context, name string) ([]domain.Member, error)
	FilterBy(ctx context.Context, field, operator string, value any) ([]domain.Member, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]any) (*domain.Member, error)
	Delete(ctx context.Context, id int64) error
}
