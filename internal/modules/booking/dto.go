package booking

import (
	"congrego/internal/domain"
	"congrego/internal/schedule"
)

type CreateBookingRequest struct {
	Description string `json:"description" binding:"required"`
	RoomID      int64  `json:"room_id" binding:"required"`
	Date        string `json:"date,omitempty"`       // DD/MM/YYYY, single bookings
	Repeat      string `json:"repeat,omitempty"`     // day | week | month
	DayRepeat   *int   `json:"day_repeat,omitempty"` // weekday (0=Sunday) or day of month
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`
}

// toDomain normalizes the wire formats; any parse failure surfaces the
// schedule package's sentinel errors straight to the handler.
func (r CreateBookingRequest) toDomain(userID int64) (*domain.Booking, error) {
	start, err := schedule.ParseTime(r.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := schedule.ParseTime(r.EndTime)
	if err != nil {
		return nil, err
	}

	b := &domain.Booking{
		Description: r.Description,
		RoomID:      r.RoomID,
		StartTime:   start,
		EndTime:     end,
		UserID:      userID,
	}
	// A recurrence rule wins over a date: a booking is either dated or
	// recurring, never both.
	if r.Repeat != "" {
		b.Repeat = schedule.RecurrenceUnit(r.Repeat)
		if r.DayRepeat != nil {
			b.RepeatDay = *r.DayRepeat
		} else {
			b.RepeatDay = -1 // fails validation for week/month units
		}
		return b, nil
	}
	if r.Date != "" {
		d, err := schedule.ParseDate(r.Date)
		if err != nil {
			return nil, err
		}
		b.Date = &d
	}
	return b, nil
}

// UpdateBookingRequest is a patch: nil pointers leave the field alone.
// Swapping between single and recurring clears the other mode's fields.
type UpdateBookingRequest struct {
	Description *string `json:"description,omitempty"`
	RoomID      *int64  `json:"room_id,omitempty"`
	Date        *string `json:"date,omitempty"`
	Repeat      *string `json:"repeat,omitempty"`
	DayRepeat   *int    `json:"day_repeat,omitempty"`
	StartTime   *string `json:"start_time,omitempty"`
	EndTime     *string `json:"end_time,omitempty"`
}

func (r UpdateBookingRequest) apply(b *domain.Booking) error {
	if r.Description != nil {
		b.Description = *r.Description
	}
	if r.RoomID != nil {
		b.RoomID = *r.RoomID
	}
	if r.StartTime != nil {
		start, err := schedule.ParseTime(*r.StartTime)
		if err != nil {
			return err
		}
		b.StartTime = start
	}
	if r.EndTime != nil {
		end, err := schedule.ParseTime(*r.EndTime)
		if err != nil {
			return err
		}
		b.EndTime = end
	}
	if r.Date != nil {
		d, err := schedule.ParseDate(*r.Date)
		if err != nil {
			return err
		}
		b.Date = &d
		b.Repeat = schedule.RepeatNone
		b.RepeatDay = 0
	}
	if r.Repeat != nil {
		b.Repeat = schedule.RecurrenceUnit(*r.Repeat)
		b.Date = nil
		if r.DayRepeat != nil {
			b.RepeatDay = *r.DayRepeat
		} else if b.Repeat != schedule.RepeatDay {
			b.RepeatDay = -1
		}
	} else if r.DayRepeat != nil {
		b.RepeatDay = *r.DayRepeat
	}
	return nil
}

type FilterBookingsRequest struct {
	UserID    int64  `json:"user_id,omitempty"`
	RoomID    int64  `json:"room_id,omitempty"`
	Date      string `json:"date,omitempty"` // DD/MM/YYYY
	Repeat    string `json:"repeat,omitempty"`
	DayRepeat *int   `json:"day_repeat,omitempty"`
}

type BookingResponse struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Date        string `json:"date,omitempty"` // DD/MM/YYYY
	DayOfWeek   string `json:"day_of_week,omitempty"`
	Month       string `json:"month,omitempty"`
	Repeat      string `json:"repeat,omitempty"`
	DayRepeat   *int   `json:"day_repeat,omitempty"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`

	Room *domain.RoomSummary `json:"room,omitempty"`
	User *domain.UserSummary `json:"user,omitempty"`

	CreatedAt string `json:"created_at"`
}

// weekdayAbbr maps the 0=Sunday indexing used by day_repeat.
var weekdayAbbr = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

func toBookingResponse(b *domain.Booking) BookingResponse {
	resp := BookingResponse{
		ID:          b.ID,
		Description: b.Description,
		Repeat:      string(b.Repeat),
		StartTime:   b.StartTime.String(),
		EndTime:     b.EndTime.String(),
		CreatedAt:   b.CreatedAt.Format("2006-01-02"),
	}
	if b.Date != nil {
		resp.Date = b.Date.String()
		resp.DayOfWeek = b.Date.Weekday().String()[:3]
		resp.Month = b.Date.Month.String()[:3]
	}
	if b.Recurring() {
		day := b.RepeatDay
		resp.DayRepeat = &day
		if b.Repeat == schedule.RepeatWeek && day >= 0 && day < len(weekdayAbbr) {
			resp.DayOfWeek = weekdayAbbr[day]
		}
	}
	if b.Room != nil {
		room := b.Room.Summary()
		resp.Room = &room
	}
	if b.User != nil {
		user := b.User.Summary()
		resp.User = &user
	}
	return resp
}

func toBookingResponses(bookings []domain.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, toBookingResponse(&bookings[i]))
	}
	return out
}

// CalendarEntry is one expanded occurrence inside a month view.
type CalendarEntry struct {
	Date      string          `json:"date"` // DD/MM/YYYY
	DayOfWeek string          `json:"day_of_week"`
	Booking   BookingResponse `json:"booking"`
}
