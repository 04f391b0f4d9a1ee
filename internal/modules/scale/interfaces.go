package scale

import (
	"context"

	"congrego/internal/domain"
)

// ScaleRepositoryInterface — only the methods the scale service uses.
type ScaleRepositoryInterface interface {
	Create(ctx context.Context, s *domain.Scale) error
	GetByID(ctx context.Context, id int64) (*domain.Scale, error)
	ListPage(ctx context.Context, page, pageSize int) ([]domain.Scale, int64, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Scale, error)
	SearchByName(ctx context.Context, name string) ([]domain.Scale, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]any) (*domain.Scale, error)
	Delete(ctx context.Context, id int64) error
	UpsertConfirmation(ctx context.Context, scaleID, userID int64, confirmed bool) (*domain.ScaleConfirmation, error)
	ConfirmationsByScale(ctx context.Context, scaleID int64) (map[int64]bool, error)
	ConfirmationsByScales(ctx context.Context, scaleIDs []int64) (map[int64]map[int64]bool, error)
}
