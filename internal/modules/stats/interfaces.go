package stats

import (
	"context"

	"congrego/internal/schedule"
)

type Counter interface {
	CountAll(ctx context.Context) (int64, error)
}

// BookingCounter additionally counts dated bookings inside a recent
// window.
type BookingCounter interface {
	Counter
	CountDatedSince(ctx context.Context, since schedule.Date) (int64, error)
}
