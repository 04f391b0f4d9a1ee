package booking

import (
	"context"

	"congrego/internal/domain"
	"congrego/internal/repository"
	"congrego/internal/schedule"
)

// BookingRepositoryInterface — only the methods the booking service uses.
type BookingRepositoryInterface interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Update(ctx context.Context, b *domain.Booking) error
	Delete(ctx context.Context, id int64) error
	ListByRoom(ctx context.Context, roomID int64) ([]domain.Booking, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	ListByFilter(ctx context.Context, f repository.BookingFilter) ([]domain.Booking, error)
	ListWindow(ctx context.Context, unit schedule.RecurrenceUnit, from, to schedule.Date) ([]domain.Booking, error)
	ListDatedOrRecurring(ctx context.Context, from, to schedule.Date) ([]domain.Booking, error)
}

// RoomReaderInterface resolves the room a booking points at.
type RoomReaderInterface interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// EventPublisher receives booking lifecycle events for the live calendar
// feed. A nil publisher is allowed; the service then skips publishing.
type EventPublisher interface {
	Publish(event string, payload any)
}
