package repository

import (
	"context"
	"time"

	"congrego/internal/domain"
	"congrego/internal/schedule"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ScaleRepository struct {
	db *gorm.DB
}

func NewScaleRepository(db *gorm.DB) *ScaleRepository {
	return &ScaleRepository{db: db}
}

type scaleModel struct {
	ID          int64   `gorm:"column:id;primaryKey"`
	Name        string  `gorm:"column:name"`
	Description *string `gorm:"column:description"`
	Date        string  `gorm:"column:date"` // ISO YYYY-MM-DD

	Band          *int64 `gorm:"column:band"`
	Projection    *int64 `gorm:"column:projection"`
	Light         *int64 `gorm:"column:light"`
	Transmission  *int64 `gorm:"column:transmission"`
	Camera        *int64 `gorm:"column:camera"`
	Live          *int64 `gorm:"column:live"`
	Sound         *int64 `gorm:"column:sound"`
	TrainingSound *int64 `gorm:"column:training_sound"`
	Photography   *int64 `gorm:"column:photography"`
	Stories       *int64 `gorm:"column:stories"`
	Dynamic       *int64 `gorm:"column:dynamic"`
	Direction     *int64 `gorm:"column:direction"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (scaleModel) TableName() string { return "scales" }

type scaleConfirmationModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	ScaleID   int64     `gorm:"column:scale_id"`
	UserID    int64     `gorm:"column:user_id"`
	Confirmed bool      `gorm:"column:confirmed"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (scaleConfirmationModel) TableName() string { return "scale_confirmations" }

func toDomainScale(m scaleModel) (*domain.Scale, error) {
	date, err := schedule.ParseISODate(m.Date)
	if err != nil {
		return nil, err
	}
	return &domain.Scale{
		ID:            m.ID,
		Name:          m.Name,
		Description:   deref(m.Description),
		Date:          date,
		Band:          m.Band,
		Projection:    m.Projection,
		Light:         m.Light,
		Transmission:  m.Transmission,
		Camera:        m.Camera,
		Live:          m.Live,
		Sound:         m.Sound,
		TrainingSound: m.TrainingSound,
		Photography:   m.Photography,
		Stories:       m.Stories,
		Dynamic:       m.Dynamic,
		Direction:     m.Direction,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}, nil
}

func toScaleModel(s *domain.Scale) scaleModel {
	return scaleModel{
		ID:            s.ID,
		Name:          s.Name,
		Description:   optional(s.Description),
		Date:          s.Date.ISO(),
		Band:          s.Band,
		Projection:    s.Projection,
		Light:         s.Light,
		Transmission:  s.Transmission,
		Camera:        s.Camera,
		Live:          s.Live,
		Sound:         s.Sound,
		TrainingSound: s.TrainingSound,
		Photography:   s.Photography,
		Stories:       s.Stories,
		Dynamic:       s.Dynamic,
		Direction:     s.Direction,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func (r *ScaleRepository) Create(ctx context.Context, s *domain.Scale) error {
	m := toScaleModel(s)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return mapError(tx.Error)
	}
	out, err := toDomainScale(m)
	if err != nil {
		return err
	}
	*s = *out
	return nil
}

func (r *ScaleRepository) GetByID(ctx context.Context, id int64) (*domain.Scale, error) {
	var m scaleModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, mapError(tx.Error)
	}
	return toDomainScale(m)
}

func (r *ScaleRepository) ListPage(ctx context.Context, page, pageSize int) ([]domain.Scale, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&scaleModel{}).Count(&total).Error; err != nil {
		return nil, 0, mapError(err)
	}

	var rows []scaleModel
	tx := r.db.WithContext(ctx).
		Order("date, id").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows)
	if tx.Error != nil {
		return nil, 0, mapError(tx.Error)
	}

	out, err := r.toDomainList(rows)
	return out, total, err
}

// ListByUser returns scales where the user holds any position.
func (r *ScaleRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Scale, error) {
	var rows []scaleModel
	tx := r.db.WithContext(ctx).
		Where(
			"band = ? OR projection = ? OR light = ? OR transmission = ? OR camera = ? OR live = ? OR sound = ? OR training_sound = ? OR photography = ? OR stories = ? OR dynamic = ? OR direction = ?",
			userID, userID, userID, userID, userID, userID,
			userID, userID, userID, userID, userID, userID,
		).
		Order("date, id").
		Find(&rows)
	if tx.Error != nil {
		return nil, mapError(tx.Error)
	}
	return r.toDomainList(rows)
}

func (r *ScaleRepository) SearchByName(ctx context.Context, name string) ([]domain.Scale, error) {
	var rows []scaleModel
	tx := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE LOWER(?)", "%"+name+"%").
		Order("date, id").
		Find(&rows)
	if tx.Error != nil {
		return nil, mapError(tx.Error)
	}
	return r.toDomainList(rows)
}

func (r *ScaleRepository) UpdateFields(ctx context.Context, id int64, fields map[string]any) (*domain.Scale, error) {
	tx := r.db.WithContext(ctx).Model(&scaleModel{}).Where("id = ?", id).Updates(fields)
	if tx.Error != nil {
		return nil, mapError(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *ScaleRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Where("scale_id = ?", id).Delete(&scaleConfirmationModel{}).Error; err != nil {
		return mapError(err)
	}
	tx := r.db.WithContext(ctx).Delete(&scaleModel{}, id)
	if tx.Error != nil {
		return mapError(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpsertConfirmation records or flips a user's confirmation for a scale.
func (r *ScaleRepository) UpsertConfirmation(ctx context.Context, scaleID, userID int64, confirmed bool) (*domain.ScaleConfirmation, error) {
	m := scaleConfirmationModel{ScaleID: scaleID, UserID: userID, Confirmed: confirmed}
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "scale_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"confirmed", "updated_at"}),
	}).Create(&m)
	if tx.Error != nil {
		return nil, mapError(tx.Error)
	}

	var row scaleConfirmationModel
	if err := r.db.WithContext(ctx).
		Where("scale_id = ? AND user_id = ?", scaleID, userID).
		First(&row).Error; err != nil {
		return nil, mapError(err)
	}
	return &domain.ScaleConfirmation{
		ID:        row.ID,
		ScaleID:   row.ScaleID,
		UserID:    row.UserID,
		Confirmed: row.Confirmed,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

// ConfirmationsByScale returns user_id -> confirmed for one scale.
func (r *ScaleRepository) ConfirmationsByScale(ctx context.Context, scaleID int64) (map[int64]bool, error) {
	var rows []scaleConfirmationModel
	tx := r.db.WithContext(ctx).Where("scale_id = ?", scaleID).Find(&rows)
	if tx.Error != nil {
		return nil, mapError(tx.Error)
	}
	out := make(map[int64]bool, len(rows))
	for _, row := range rows {
		out[row.UserID] = row.Confirmed
	}
	return out, nil
}

// ConfirmationsByScales batch-loads confirmations for a page of scales.
func (r *ScaleRepository) ConfirmationsByScales(ctx context.Context, scaleIDs []int64) (map[int64]map[int64]bool, error) {
	out := make(map[int64]map[int64]bool, len(scaleIDs))
	if len(scaleIDs) == 0 {
		return out, nil
	}
	var rows []scaleConfirmationModel
	tx := r.db.WithContext(ctx).Where("scale_id IN ?", scaleIDs).Find(&rows)
	if tx.Error != nil {
		return nil, mapError(tx.Error)
	}
	for _, row := range rows {
		if out[row.ScaleID] == nil {
			out[row.ScaleID] = make(map[int64]bool)
		}
		out[row.ScaleID][row.UserID] = row.Confirmed
	}
	return out, nil
}

func (r *ScaleRepository) toDomainList(rows []scaleModel) ([]domain.Scale, error) {
	out := make([]domain.Scale, 0, len(rows))
	for _, row := range rows {
		s, err := toDomainScale(row)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, nil
}
