package booking

import "errors"

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrRoomNotFound    = errors.New("room not found")
	// ErrConflict covers the write-time constraint backstop, when a
	// concurrent insert slipped past the resolver between lock and commit.
	ErrConflict = errors.New("booking conflict")
)
