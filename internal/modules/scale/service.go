package scale

import (
	"context"
	"errors"
	"time"

	"congrego/internal/domain"
	"congrego/internal/repository"
)

type Service struct {
	scales       ScaleRepositoryInterface
	storeTimeout time.Duration
}

func NewService(scales ScaleRepositoryInterface, storeTimeout time.Duration) *Service {
	return &Service{scales: scales, storeTimeout: storeTimeout}
}

func (s *Service) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.storeTimeout)
}

func (s *Service) Create(ctx context.Context, req CreateScaleRequest) (*domain.Scale, error) {
	scale, err := req.toDomain()
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	if err := s.scales.Create(ctx, scale); err != nil {
		return nil, err
	}
	return scale, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (ScaleResponse, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	scale, err := s.scales.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ScaleResponse{}, ErrScaleNotFound
		}
		return ScaleResponse{}, err
	}

	confirmations, err := s.scales.ConfirmationsByScale(ctx, id)
	if err != nil {
		return ScaleResponse{}, err
	}
	return toScaleResponse(scale, confirmations), nil
}

// ListPage returns one page of scales, each with its confirmation
// summary.
func (s *Service) ListPage(ctx context.Context, page, pageSize int) ([]ScaleResponse, Pagination, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	scales, total, err := s.scales.ListPage(ctx, page, pageSize)
	if err != nil {
		return nil, Pagination{}, err
	}

	ids := make([]int64, 0, len(scales))
	for i := range scales {
		ids = append(ids, scales[i].ID)
	}
	confirmations, err := s.scales.ConfirmationsByScales(ctx, ids)
	if err != nil {
		return nil, Pagination{}, err
	}

	out := make([]ScaleResponse, 0, len(scales))
	for i := range scales {
		byUser := confirmations[scales[i].ID]
		if byUser == nil {
			byUser = map[int64]bool{}
		}
		out = append(out, toScaleResponse(&scales[i], byUser))
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return out, Pagination{Page: page, PageSize: pageSize, Total: total, TotalPages: totalPages}, nil
}

func (s *Service) ListMine(ctx context.Context, userID int64) ([]ScaleResponse, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	scales, err := s.scales.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]ScaleResponse, 0, len(scales))
	for i := range scales {
		out = append(out, toScaleResponse(&scales[i], nil))
	}
	return out, nil
}

func (s *Service) Search(ctx context.Context, name string) ([]ScaleResponse, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	scales, err := s.scales.SearchByName(ctx, name)
	if err != nil {
		return nil, err
	}

	out := make([]ScaleResponse, 0, len(scales))
	for i := range scales {
		out = append(out, toScaleResponse(&scales[i], nil))
	}
	return out, nil
}

// Confirm upserts the caller's attendance answer. Users holding no
// position on the scale are rejected.
func (s *Service) Confirm(ctx context.Context, userID int64, req ConfirmRequest) (*domain.ScaleConfirmation, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	scale, err := s.scales.GetByID(ctx, req.ScaleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrScaleNotFound
		}
		return nil, err
	}
	if !scale.Includes(userID) {
		return nil, ErrNotOnScale
	}

	return s.scales.UpsertConfirmation(ctx, req.ScaleID, userID, *req.Confirmed)
}

// Duplicate copies a scale under a suffixed name. Confirmations are not
// copied: the new date needs fresh answers.
func (s *Service) Duplicate(ctx context.Context, id int64) (*domain.Scale, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	src, err := s.scales.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrScaleNotFound
		}
		return nil, err
	}

	copy := *src
	copy.ID = 0
	copy.Name = src.Name + " (duplicado)"
	copy.CreatedAt = time.Time{}
	copy.UpdatedAt = time.Time{}

	if err := s.scales.Create(ctx, &copy); err != nil {
		return nil, err
	}
	return &copy, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateScaleRequest) (*domain.Scale, error) {
	fields, err := req.fields()
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	if len(fields) == 0 {
		scale, err := s.scales.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrScaleNotFound
			}
			return nil, err
		}
		return scale, nil
	}

	scale, err := s.scales.UpdateFields(ctx, id, fields)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrScaleNotFound
		}
		return nil, err
	}
	return scale, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	if err := s.scales.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrScaleNotFound
		}
		return err
	}
	return nil
}
