package repository

import (
	"context"
	"time"

	"congrego/internal/domain"
	"congrego/internal/schedule"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	Description string    `gorm:"column:description"`
	RoomID      int64     `gorm:"column:room"`
	Date        *string   `gorm:"column:date"` // ISO YYYY-MM-DD, null for recurring
	StartTime   string    `gorm:"column:start_time"`
	EndTime     string    `gorm:"column:end_time"`
	Repeat      *string   `gorm:"column:repeat"`
	DayRepeat   *int      `gorm:"column:day_repeat"`
	UserID      int64     `gorm:"column:user_id"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) (*domain.Booking, error) {
	start, err := schedule.ParseTime(m.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := schedule.ParseTime(m.EndTime)
	if err != nil {
		return nil, err
	}

	b := &domain.Booking{
		ID:          m.ID,
		Description: m.Description,
		RoomID:      m.RoomID,
		StartTime:   start,
		EndTime:     end,
		UserID:      m.UserID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.Date != nil {
		d, err := schedule.ParseISODate(*m.Date)
		if err != nil {
			return nil, err
		}
		b.Date = &d
	}
	if m.Repeat != nil && *m.Repeat != "" {
		b.Repeat = schedule.RecurrenceUnit(*m.Repeat)
		if m.DayRepeat != nil {
			b.RepeatDay = *m.DayRepeat
		}
	}
	return b, nil
}

func toBookingModel(b *domain.Booking) bookingModel {
	m := bookingModel{
		ID:          b.ID,
		Description: b.Description,
		RoomID:      b.RoomID,
		StartTime:   b.StartTime.String(),
		EndTime:     b.EndTime.String(),
		UserID:      b.UserID,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
	if b.Date != nil {
		iso := b.Date.ISO()
		m.Date = &iso
	}
	if b.Recurring() {
		repeat := string(b.Repeat)
		day := b.RepeatDay
		m.Repeat = &repeat
		m.DayRepeat = &day
	}
	return m
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return mapError(tx.Error)
	}
	out, err := toDomainBooking(m)
	if err != nil {
		return err
	}
	*b = *out
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, mapError(tx.Error)
	}
	b, err := toDomainBooking(m)
	if err != nil {
		return nil, err
	}
	return b, r.attach(ctx, []*domain.Booking{b})
}

func (r *BookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	// Save writes every column so a field cleared by the merge (a date
	// removed when a booking turns recurring) is nulled out too.
	tx := r.db.WithContext(ctx).Save(&m)
	return mapError(tx.Error)
}

func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&bookingModel{}, id)
	if tx.Error != nil {
		return mapError(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByRoom returns every booking of a room; the conflict resolver's
// candidate set.
func (r *BookingRepository) ListByRoom(ctx context.Context, roomID int64) ([]domain.Booking, error) {
	var rows []bookingModel
	tx := r.db.WithContext(ctx).Where("room = ?", roomID).Find(&rows)
	if tx.Error != nil {
		return nil, mapError(tx.Error)
	}
	return r.toDomainList(ctx, rows, false)
}

func (r *BookingRepository) ListAll(ctx context.Context) ([]domain.Booking, error) {
	var rows []bookingModel
	tx := r.db.WithContext(ctx).Order("id").Find(&rows)
	if tx.Error != nil {
		return nil, mapError(tx.Error)
	}
	return r.toDomainList(ctx, rows, true)
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	var rows []bookingModel
	tx := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&rows)
	if tx.Error != nil {
		return nil, mapError(tx.Error)
	}
	return r.toDomainList(ctx, rows, true)
}

// BookingFilter mirrors the POST /bookings/filter body: zero values mean
// "no constraint".
type BookingFilter struct {
	UserID    int64
	RoomID    int64
	Date      *schedule.Date
	Repeat    schedule.RecurrenceUnit
	DayRepeat *int
}

func (r *BookingRepository) ListByFilter(ctx context.Context, f BookingFilter) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx).Model(&bookingModel{})
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.RoomID != 0 {
		q = q.Where("room = ?", f.RoomID)
	}
	if f.Date != nil {
		q = q.Where("date = ?", f.Date.ISO())
	}
	if f.Repeat != schedule.RepeatNone {
		q = q.Where("repeat = ?", string(f.Repeat))
	}
	if f.DayRepeat != nil {
		q = q.Where("day_repeat = ?", *f.DayRepeat)
	}

	var rows []bookingModel
	if err := q.Order("id").Find(&rows).Error; err != nil {
		return nil, mapError(err)
	}
	return r.toDomainList(ctx, rows, false)
}

// ListWindow returns bookings dated inside [from, to] plus every booking
// recurring at the given unit; the today/week/month listings.
func (r *BookingRepository) ListWindow(ctx context.Context, unit schedule.RecurrenceUnit, from, to schedule.Date) ([]domain.Booking, error) {
	var rows []bookingModel
	tx := r.db.WithContext(ctx).
		Where("repeat = ? OR (date >= ? AND date <= ?)", string(unit), from.ISO(), to.ISO()).
		Order("id").
		Find(&rows)
	if tx.Error != nil {
		return nil, mapError(tx.Error)
	}
	return r.toDomainList(ctx, rows, true)
}

// ListDatedInRange returns only dated bookings inside the window; the
// calendar expansion adds weekly/daily occurrences separately.
func (r *BookingRepository) ListDatedOrRecurring(ctx context.Context, from, to schedule.Date) ([]domain.Booking, error) {
	var rows []bookingModel
	tx := r.db.WithContext(ctx).
		Where("repeat IS NOT NULL OR (date >= ? AND date <= ?)", from.ISO(), to.ISO()).
		Order("id").
		Find(&rows)
	if tx.Error != nil {
		return nil, mapError(tx.Error)
	}
	return r.toDomainList(ctx, rows, true)
}

func (r *BookingRepository) CountAll(ctx context.Context) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).Count(&cnt)
	return cnt, mapError(tx.Error)
}

func (r *BookingRepository) CountDatedSince(ctx context.Context, since schedule.Date) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("date >= ?", since.ISO()).
		Count(&cnt)
	return cnt, mapError(tx.Error)
}

func (r *BookingRepository) toDomainList(ctx context.Context, rows []bookingModel, withRelations bool) ([]domain.Booking, error) {
	out := make([]domain.Booking, 0, len(rows))
	ptrs := make([]*domain.Booking, 0, len(rows))
	for _, m := range rows {
		b, err := toDomainBooking(m)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
		ptrs = append(ptrs, &out[len(out)-1])
	}
	if withRelations {
		if err := r.attach(ctx, ptrs); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// attach batch-loads the rooms and users referenced by the bookings.
func (r *BookingRepository) attach(ctx context.Context, bookings []*domain.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	roomIDs := make([]int64, 0, len(bookings))
	userIDs := make([]int64, 0, len(bookings))
	for _, b := range bookings {
		roomIDs = append(roomIDs, b.RoomID)
		userIDs = append(userIDs, b.UserID)
	}

	var roomRows []roomModel
	if err := r.db.WithContext(ctx).Where("id IN ?", roomIDs).Find(&roomRows).Error; err != nil {
		return mapError(err)
	}
	rooms := make(map[int64]*domain.Room, len(roomRows))
	for _, m := range roomRows {
		rooms[m.ID] = toDomainRoom(m)
	}

	var userRows []userModel
	if err := r.db.WithContext(ctx).Where("id IN ?", userIDs).Find(&userRows).Error; err != nil {
		return mapError(err)
	}
	users := make(map[int64]*domain.User, len(userRows))
	for _, m := range userRows {
		users[m.ID] = toDomainUser(m)
	}

	for _, b := range bookings {
		b.Room = rooms[b.RoomID]
		b.User = users[b.UserID]
	}
	return nil
}
