package repository

import (
	"context"
	"errors"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate covers unique and exclusion constraint violations,
	// including the bookings no-overbooking constraint hit by a
	// concurrent writer.
	ErrDuplicate = errors.New("duplicate record")
	// ErrStoreUnavailable marks timeouts and connectivity failures; the
	// only repository error callers may retry.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrInvalidFilter rejects generic-filter fields or operators outside
	// the whitelist.
	ErrInvalidFilter = errors.New("invalid filter")
)

// mapError normalizes driver errors so services never branch on gorm or
// pgconn types.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ErrStoreUnavailable
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return ErrStoreUnavailable
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505", "23P01": // unique_violation, exclusion_violation
			return ErrDuplicate
		}
	}
	return err
}
