package repository

import (
	"context"
	"fmt"
	"time"

	"congrego/internal/domain"
	"congrego/internal/schedule"

	"gorm.io/gorm"
)

type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

type memberModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	FullName      string    `gorm:"column:full_name"`
	BirthDate     string    `gorm:"column:birth_date"` // ISO YYYY-MM-DD
	Gender        string    `gorm:"column:gender"`
	CPF           *string   `gorm:"column:cpf"`
	RG            *string   `gorm:"column:rg"`
	Phone         string    `gorm:"column:phone"`
	Email         string    `gorm:"column:email"`
	Street        *string   `gorm:"column:street"`
	Number        *string   `gorm:"column:number"`
	Neighborhood  *string   `gorm:"column:neighborhood"`
	City          *string   `gorm:"column:city"`
	State         *string   `gorm:"column:state"`
	CEP           *string   `gorm:"column:cep"`
	MotherName    *string   `gorm:"column:mother_name"`
	FatherName    *string   `gorm:"column:father_name"`
	MaritalStatus *string   `gorm:"column:marital_status"`
	HasChildren   bool      `gorm:"column:has_children"`
	ChildrenCount int       `gorm:"column:children_count"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (memberModel) TableName() string { return "members" }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func toDomainMember(m memberModel) (*domain.Member, error) {
	birth, err := schedule.ParseISODate(m.BirthDate)
	if err != nil {
		return nil, err
	}
	return &domain.Member{
		ID:            m.ID,
		FullName:      m.FullName,
		BirthDate:     birth,
		Gender:        m.Gender,
		CPF:           deref(m.CPF),
		RG:            deref(m.RG),
		Phone:         m.Phone,
		Email:         m.Email,
		Street:        deref(m.Street),
		Number:        deref(m.Number),
		Neighborhood:  deref(m.Neighborhood),
		City:          deref(m.City),
		State:         deref(m.State),
		CEP:           deref(m.CEP),
		MotherName:    deref(m.MotherName),
		FatherName:    deref(m.FatherName),
		MaritalStatus: deref(m.MaritalStatus),
		HasChildren:   m.HasChildren,
		ChildrenCount: m.ChildrenCount,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}, nil
}

func toMemberModel(m *domain.Member) memberModel {
	return memberModel{
		ID:            m.ID,
		FullName:      m.FullName,
		BirthDate:     m.BirthDate.ISO(),
		Gender:        m.Gender,
		CPF:           optional(m.CPF),
		RG:            optional(m.RG),
		Phone:         m.Phone,
		Email:         m.Email,
		Street:        optional(m.Street),
		Number:        optional(m.Number),
		Neighborhood:  optional(m.Neighborhood),
		City:          optional(m.City),
		State:         optional(m.State),
		CEP:           optional(m.CEP),
		MotherName:    optional(m.MotherName),
		FatherName:    optional(m.FatherName),
		MaritalStatus: optional(m.MaritalStatus),
		HasChildren:   m.HasChildren,
		ChildrenCount: m.ChildrenCount,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func (r *MemberRepository) Create(ctx context.Context, m *domain.Member) error {
	row := toMemberModel(m)
	tx := r.db.WithContext(ctx).Create(&row)
	if tx.Error != nil {
		return mapError(tx.Error)
	}
	out, err := toDomainMember(row)
	if err != nil {
		return err
	}
	*m = *out
	return nil
}

func (r *MemberRepository) GetByID(ctx context.Context, id int64) (*domain.Member, error) {
	var row memberModel
	tx := r.db.WithContext(ctx).First(&row, id)
	if tx.Error != nil {
		return nil, mapError(tx.Error)
	}
	return toDomainMember(row)
}

// ListPage returns one page of members plus the total count.
func (r *MemberRepository) ListPage(ctx context.Context, page, pageSize int) ([]domain.Member, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&memberModel{}).Count(&total).Error; err != nil {
		return nil, 0, mapError(err)
	}

	var rows []memberModel
	tx := r.db.WithContext(ctx).
		Order("id").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows)
	if tx.Error != nil {
		return nil, 0, mapError(tx.Error)
	}

	out, err := r.toDomainList(rows)
	return out, total, err
}

func (r *MemberRepository) ListAll(ctx context.Context) ([]domain.Member, error) {
	var rows []memberModel
	tx := r.db.WithContext(ctx).Order("id").Find(&rows)
	if tx.Error != nil {
		return nil, mapError(tx.Error)
	}
	return r.toDomainList(rows)
}

func (r *MemberRepository) SearchByName(ctx context.Context, name string) ([]domain.Member, error) {
	var rows []memberModel
	tx := r.db.WithContext(ctx).
		Where("LOWER(full_name) LIKE LOWER(?)", "%"+name+"%").
		Order("id").
		Find(&rows)
	if tx.Error != nil {
		return nil, mapError(tx.Error)
	}
	return r.toDomainList(rows)
}

// memberFilterFields whitelists columns a generic filter may touch.
var memberFilterFields = map[string]bool{
	"full_name": true, "birth_date": true, "gender": true, "phone": true,
	"email": true, "city": true, "state": true, "neighborhood": true,
	"marital_status": true, "has_children": true, "children_count": true,
}

var memberFilterOperators = map[string]string{
	"eq": "=", "neq": "<>", "gt": ">", "gte": ">=", "lt": "<", "lte": "<=",
	"like": "LIKE", "ilike": "ILIKE",
}

// FilterBy runs a single field/operator/value query. Field and operator
// come from fixed whitelists; the value is always bound as a parameter.
func (r *MemberRepository) FilterBy(ctx context.Context, field, operator string, value any) ([]domain.Member, error) {
	if !memberFilterFields[field] {
		return nil, fmt.Errorf("%w: field %q", ErrInvalidFilter, field)
	}
	op, ok := memberFilterOperators[operator]
	if !ok {
		return nil, fmt.Errorf("%w: operator %q", ErrInvalidFilter, operator)
	}

	cond := fmt.Sprintf("%s %s ?", field, op)
	if op == "ILIKE" {
		// sqlite has no ILIKE; express it portably.
		cond = fmt.Sprintf("LOWER(%s) LIKE LOWER(?)", field)
	}

	var rows []memberModel
	tx := r.db.WithContext(ctx).Where(cond, value).Order("id").Find(&rows)
	if tx.Error != nil {
		return nil, mapError(tx.Error)
	}
	return r.toDomainList(rows)
}

func (r *MemberRepository) UpdateFields(ctx context.Context, id int64, fields map[string]any) (*domain.Member, error) {
	tx := r.db.WithContext(ctx).Model(&memberModel{}).Where("id = ?", id).Updates(fields)
	if tx.Error != nil {
		return nil, mapError(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *MemberRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&memberModel{}, id)
	if tx.Error != nil {
		return mapError(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MemberRepository) CountAll(ctx context.Context) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&memberModel{}).Count(&cnt)
	return cnt, mapError(tx.Error)
}

func (r *MemberRepository) toDomainList(rows []memberModel) ([]domain.Member, error) {
	out := make([]domain.Member, 0, len(rows))
	for _, row := range rows {
		m, err := toDomainMember(row)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, nil
}
