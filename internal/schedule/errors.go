package schedule

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidTime     = errors.New("invalid time")
	ErrInvalidInterval = errors.New("start time must be strictly before end time")
	ErrMissingField    = errors.New("missing required booking field")
)

// ConflictError reports which existing bookings overlap the candidate.
type ConflictError struct {
	IDs []int64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("booking conflicts with existing booking(s) %v", e.IDs)
}
