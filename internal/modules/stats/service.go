package stats

import (
	"context"
	"time"

	"congrego/internal/schedule"
)

type Overview struct {
	Rooms             int64 `json:"rooms"`
	Bookings          int64 `json:"bookings"`
	Users             int64 `json:"users"`
	Members           int64 `json:"members"`
	BookingsLast7Days int64 `json:"bookings_last_7_days"`
}

type Service struct {
	rooms        Counter
	bookings     BookingCounter
	users        Counter
	members      Counter
	storeTimeout time.Duration
}

func NewService(rooms Counter, bookings BookingCounter, users, members Counter, storeTimeout time.Duration) *Service {
	return &Service{
		rooms:        rooms,
		bookings:     bookings,
		users:        users,
		members:      members,
		storeTimeout: storeTimeout,
	}
}

func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	var out Overview
	var err error

	if out.Rooms, err = s.rooms.CountAll(ctx); err != nil {
		return nil, err
	}
	if out.Bookings, err = s.bookings.CountAll(ctx); err != nil {
		return nil, err
	}
	if out.Users, err = s.users.CountAll(ctx); err != nil {
		return nil, err
	}
	if out.Members, err = s.members.CountAll(ctx); err != nil {
		return nil, err
	}

	since := schedule.Today().AddDays(-7)
	if out.BookingsLast7Days, err = s.bookings.CountDatedSince(ctx, since); err != nil {
		return nil, err
	}
	return &out, nil
}
