package repository

import (
	"context"
	"time"

	"congrego/internal/domain"

	"gorm.io/gorm"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

type roomModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	Name        string    `gorm:"column:name"`
	Size        *int      `gorm:"column:size"`
	Description *string   `gorm:"column:description"`
	Exclusive   bool      `gorm:"column:exclusive"`
	Status      *string   `gorm:"column:status"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (roomModel) TableName() string { return "rooms" }

func toDomainRoom(m roomModel) *domain.Room {
	r := &domain.Room{
		ID:        m.ID,
		Name:      m.Name,
		Exclusive: m.Exclusive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.Size != nil {
		r.Size = *m.Size
	}
	if m.Description != nil {
		r.Description = *m.Description
	}
	if m.Status != nil {
		r.Status = domain.RoomStatus(*m.Status)
	}
	return r
}

func toRoomModel(r *domain.Room) roomModel {
	m := roomModel{
		ID:        r.ID,
		Name:      r.Name,
		Exclusive: r.Exclusive,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.Size != 0 {
		size := r.Size
		m.Size = &size
	}
	if r.Description != "" {
		desc := r.Description
		m.Description = &desc
	}
	if r.Status != "" {
		status := string(r.Status)
		m.Status = &status
	}
	return m
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	m := toRoomModel(room)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return mapError(tx.Error)
	}
	*room = *toDomainRoom(m)
	return nil
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var m roomModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, mapError(tx.Error)
	}
	return toDomainRoom(m), nil
}

func (r *RoomRepository) ListAll(ctx context.Context) ([]domain.Room, error) {
	var rows []roomModel
	tx := r.db.WithContext(ctx).Order("id").Find(&rows)
	if tx.Error != nil {
		return nil, mapError(tx.Error)
	}
	out := make([]domain.Room, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainRoom(m))
	}
	return out, nil
}

func (r *RoomRepository) SearchByName(ctx context.Context, name string) ([]domain.Room, error) {
	var rows []roomModel
	tx := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE LOWER(?)", "%"+name+"%").
		Order("id").
		Find(&rows)
	if tx.Error != nil {
		return nil, mapError(tx.Error)
	}
	out := make([]domain.Room, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainRoom(m))
	}
	return out, nil
}

// UpdateFields applies a partial update; keys are column names.
func (r *RoomRepository) UpdateFields(ctx context.Context, id int64, fields map[string]any) (*domain.Room, error) {
	tx := r.db.WithContext(ctx).Model(&roomModel{}).Where("id = ?", id).Updates(fields)
	if tx.Error != nil {
		return nil, mapError(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *RoomRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&roomModel{}, id)
	if tx.Error != nil {
		return mapError(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RoomRepository) CountAll(ctx context.Context) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&roomModel{}).Count(&cnt)
	return cnt, mapError(tx.Error)
}
