package domain

import (
	"time"

	"congrego/internal/schedule"
)

// Booking reserves a room either once (Date set) or on a recurrence rule
// (Repeat + RepeatDay set). Exactly one of the two holds; the schedule
// package enforces it before anything is persisted.
type Booking struct {
	ID          int64                   `json:"id"`
	Description string                  `json:"description" validate:"required"`
	RoomID      int64                   `json:"room_id" validate:"required"`
	Date        *schedule.Date          `json:"date,omitempty"`
	StartTime   schedule.TimeOfDay      `json:"start_time"`
	EndTime     schedule.TimeOfDay      `json:"end_time"`
	Repeat      schedule.RecurrenceUnit `json:"repeat,omitempty"`
	RepeatDay   int                     `json:"day_repeat,omitempty"`
	UserID      int64                   `json:"user_id"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`

	User *User `json:"user,omitempty"`
	Room *Room `json:"room,omitempty"`
}

func (b *Booking) Recurring() bool { return b.Repeat != schedule.RepeatNone }

// Slot projects the booking into the schedule package's shape.
func (b *Booking) Slot() schedule.Slot {
	return schedule.Slot{
		ID:        b.ID,
		Date:      b.Date,
		Repeat:    b.Repeat,
		RepeatDay: b.RepeatDay,
		Start:     b.StartTime,
		End:       b.EndTime,
	}
}
