package booking

import (
	"context"
	"errors"
	"sort"
	"time"

	"congrego/internal/domain"
	"congrego/internal/repository"
	"congrego/internal/schedule"
)

// Service owns the conflict-gated write path: every create and update
// runs the resolver against the room's current bookings under a per-room
// lock before anything is persisted.
type Service struct {
	bookings     BookingRepositoryInterface
	rooms        RoomReaderInterface
	events       EventPublisher
	locks        *roomLocks
	storeTimeout time.Duration
}

func NewService(bookings BookingRepositoryInterface, rooms RoomReaderInterface, events EventPublisher, storeTimeout time.Duration) *Service {
	return &Service{
		bookings:     bookings,
		rooms:        rooms,
		events:       events,
		locks:        newRoomLocks(),
		storeTimeout: storeTimeout,
	}
}

func (s *Service) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.storeTimeout)
}

func (s *Service) publish(event string, b *domain.Booking) {
	if s.events != nil {
		s.events.Publish(event, toBookingResponse(b))
	}
}

func (s *Service) Create(ctx context.Context, userID int64, req CreateBookingRequest) (*domain.Booking, error) {
	b, err := req.toDomain(userID)
	if err != nil {
		return nil, err
	}
	if err := schedule.Validate(b.Slot()); err != nil {
		return nil, err
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	if _, err := s.rooms.GetByID(ctx, b.RoomID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	lock := s.locks.get(b.RoomID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.checkRoomConflicts(ctx, b); err != nil {
		return nil, err
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, err
	}

	created, err := s.bookings.GetByID(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	s.publish("booking.created", created)
	return created, nil
}

// Update merges the patch into the stored booking and re-runs the full
// resolver on the result, excluding the booking itself.
func (s *Service) Update(ctx context.Context, id int64, req UpdateBookingRequest) (*domain.Booking, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if err := req.apply(b); err != nil {
		return nil, err
	}
	if err := schedule.Validate(b.Slot()); err != nil {
		return nil, err
	}

	if _, err := s.rooms.GetByID(ctx, b.RoomID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	lock := s.locks.get(b.RoomID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.checkRoomConflicts(ctx, b); err != nil {
		return nil, err
	}

	if err := s.bookings.Update(ctx, b); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, err
	}

	updated, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish("booking.updated", updated)
	return updated, nil
}

// checkRoomConflicts re-fetches the room's bookings and runs the pure
// resolver. Callers hold the room lock.
func (s *Service) checkRoomConflicts(ctx context.Context, b *domain.Booking) error {
	existing, err := s.bookings.ListByRoom(ctx, b.RoomID)
	if err != nil {
		return err
	}
	slots := make([]schedule.Slot, 0, len(existing))
	for i := range existing {
		slots = append(slots, existing[i].Slot())
	}
	return schedule.CheckConflicts(b.Slot(), slots)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBookingNotFound
		}
		return err
	}

	if err := s.bookings.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBookingNotFound
		}
		return err
	}
	s.publish("booking.deleted", b)
	return nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) ListAll(ctx context.Context) ([]domain.Booking, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	return s.bookings.ListAll(ctx)
}

func (s *Service) ListMine(ctx context.Context, userID int64) ([]domain.Booking, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	return s.bookings.ListByUser(ctx, userID)
}

func (s *Service) Filter(ctx context.Context, req FilterBookingsRequest) ([]domain.Booking, error) {
	f := repository.BookingFilter{
		UserID:    req.UserID,
		RoomID:    req.RoomID,
		Repeat:    schedule.RecurrenceUnit(req.Repeat),
		DayRepeat: req.DayRepeat,
	}
	if req.Date != "" {
		d, err := schedule.ParseDate(req.Date)
		if err != nil {
			return nil, err
		}
		f.Date = &d
	}

	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	return s.bookings.ListByFilter(ctx, f)
}

// Today returns bookings dated today plus every daily recurrence.
func (s *Service) Today(ctx context.Context) ([]domain.Booking, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	today := schedule.Today()
	return s.bookings.ListWindow(ctx, schedule.RepeatDay, today, today)
}

// Week returns bookings dated inside the current Sunday-to-Saturday week
// plus every weekly recurrence.
func (s *Service) Week(ctx context.Context) ([]domain.Booking, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	today := schedule.Today()
	start := today.AddDays(-int(today.Weekday()))
	return s.bookings.ListWindow(ctx, schedule.RepeatWeek, start, start.AddDays(6))
}

// Month returns bookings dated inside the current month plus every
// monthly recurrence.
func (s *Service) Month(ctx context.Context) ([]domain.Booking, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	today := schedule.Today()
	first, last := schedule.MonthWindow(today.Year, today.Month)
	return s.bookings.ListWindow(ctx, schedule.RepeatMonth, first, last)
}

// Calendar expands the month's bookings, dated and recurring, into one
// entry per concrete occurrence, ordered by date then start time.
func (s *Service) Calendar(ctx context.Context, year int, month time.Month) ([]CalendarEntry, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	first, last := schedule.MonthWindow(year, month)
	bookings, err := s.bookings.ListDatedOrRecurring(ctx, first, last)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*domain.Booking, len(bookings))
	slots := make([]schedule.Slot, 0, len(bookings))
	for i := range bookings {
		byID[bookings[i].ID] = &bookings[i]
		slots = append(slots, bookings[i].Slot())
	}

	entries := make([]CalendarEntry, 0, len(bookings))
	for occ := range schedule.MonthOccurrences(slots, year, month) {
		b := byID[occ.Slot.ID]
		entries = append(entries, CalendarEntry{
			Date:      occ.Date.String(),
			DayOfWeek: occ.Date.Weekday().String()[:3],
			Booking:   toBookingResponse(b),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Date != b.Date {
			ad, _ := schedule.ParseDate(a.Date)
			bd, _ := schedule.ParseDate(b.Date)
			return ad.Before(bd)
		}
		return a.Booking.StartTime < b.Booking.StartTime
	})
	return entries, nil
}
