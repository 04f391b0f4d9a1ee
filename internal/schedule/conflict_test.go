package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func mustDate(t *testing.T, s string) *Date {
	t.Helper()
	d, err := ParseDate(s)
	assert.NoError(t, err)
	return &d
}

func mustTime(t *testing.T, s string) TimeOfDay {
	t.Helper()
	tod, err := ParseTime(s)
	assert.NoError(t, err)
	return tod
}

func single(t *testing.T, id int64, date, start, end string) Slot {
	t.Helper()
	return Slot{ID: id, Date: mustDate(t, date), Start: mustTime(t, start), End: mustTime(t, end)}
}

func recurring(t *testing.T, id int64, unit RecurrenceUnit, day int, start, end string) Slot {
	t.Helper()
	return Slot{ID: id, Repeat: unit, RepeatDay: day, Start: mustTime(t, start), End: mustTime(t, end)}
}

func TestValidate_InvertedInterval(t *testing.T) {
	err := Validate(single(t, 0, "10/06/2024", "15:00", "14:00"))
	assert.ErrorIs(t, err, ErrInvalidInterval)

	err = Validate(single(t, 0, "10/06/2024", "14:00", "14:00"))
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestValidate_MissingFields(t *testing.T) {
	// Single booking without a date.
	err := Validate(Slot{Start: mustTime(t, "10:00"), End: mustTime(t, "11:00")})
	assert.ErrorIs(t, err, ErrMissingField)

	// Weekly booking without a day marker.
	err = Validate(Slot{Repeat: RepeatWeek, RepeatDay: -1, Start: mustTime(t, "10:00"), End: mustTime(t, "11:00")})
	assert.ErrorIs(t, err, ErrMissingField)

	// Unknown unit.
	err = Validate(Slot{Repeat: "fortnight", RepeatDay: 1, Start: mustTime(t, "10:00"), End: mustTime(t, "11:00")})
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestValidate_DayMarkerRanges(t *testing.T) {
	// Weekly markers live in 0..6.
	assert.NoError(t, Validate(recurring(t, 0, RepeatWeek, 0, "10:00", "11:00")))
	assert.NoError(t, Validate(recurring(t, 0, RepeatWeek, 6, "10:00", "11:00")))
	assert.ErrorIs(t, Validate(recurring(t, 0, RepeatWeek, 7, "10:00", "11:00")), ErrMissingField)
	assert.ErrorIs(t, Validate(recurring(t, 0, RepeatWeek, 9, "10:00", "11:00")), ErrMissingField)

	// Monthly markers live in 1..31.
	assert.NoError(t, Validate(recurring(t, 0, RepeatMonth, 1, "10:00", "11:00")))
	assert.NoError(t, Validate(recurring(t, 0, RepeatMonth, 31, "10:00", "11:00")))
	assert.ErrorIs(t, Validate(recurring(t, 0, RepeatMonth, 0, "10:00", "11:00")), ErrMissingField)
	assert.ErrorIs(t, Validate(recurring(t, 0, RepeatMonth, 32, "10:00", "11:00")), ErrMissingField)

	// Daily recurrence ignores the marker entirely.
	assert.NoError(t, Validate(recurring(t, 0, RepeatDay, -1, "10:00", "11:00")))
}

func TestCheckConflicts_SameDateOverlap(t *testing.T) {
	existing := []Slot{single(t, 7, "10/06/2024", "14:00", "15:00")}

	err := CheckConflicts(single(t, 0, "10/06/2024", "14:30", "15:30"), existing)
	var conflict *ConflictError
	assert.ErrorAs(t, err, &conflict)
	assert.Equal(t, []int64{7}, conflict.IDs)

	// Same time range the next day is fine.
	assert.NoError(t, CheckConflicts(single(t, 0, "11/06/2024", "14:00", "15:00"), existing))
}

func TestCheckConflicts_TouchingIntervalsDoNotConflict(t *testing.T) {
	existing := []Slot{single(t, 1, "10/06/2024", "09:00", "10:00")}

	assert.NoError(t, CheckConflicts(single(t, 0, "10/06/2024", "10:00", "11:00"), existing))

	err := CheckConflicts(single(t, 0, "10/06/2024", "09:00", "10:30"), existing)
	assert.Error(t, err)
}

func TestCheckConflicts_SingleAgainstWeekly(t *testing.T) {
	// 12/06/2024 is a Wednesday (weekday 3).
	wednesdayBooking := single(t, 0, "12/06/2024", "19:30", "21:00")

	weeklyWednesday := []Slot{recurring(t, 4, RepeatWeek, 3, "19:00", "20:00")}
	err := CheckConflicts(wednesdayBooking, weeklyWednesday)
	var conflict *ConflictError
	assert.ErrorAs(t, err, &conflict)
	assert.Equal(t, []int64{4}, conflict.IDs)

	weeklyTuesday := []Slot{recurring(t, 5, RepeatWeek, 2, "19:00", "20:00")}
	assert.NoError(t, CheckConflicts(wednesdayBooking, weeklyTuesday))
}

func TestCheckConflicts_SingleAgainstMonthly(t *testing.T) {
	booking := single(t, 0, "15/06/2024", "08:00", "09:00")

	assert.Error(t, CheckConflicts(booking, []Slot{recurring(t, 2, RepeatMonth, 15, "08:30", "09:30")}))
	assert.NoError(t, CheckConflicts(booking, []Slot{recurring(t, 2, RepeatMonth, 16, "08:30", "09:30")}))
}

func TestCheckConflicts_DailyCollidesWithEverything(t *testing.T) {
	daily := recurring(t, 0, RepeatDay, 0, "08:00", "09:00")

	assert.Error(t, CheckConflicts(daily, []Slot{single(t, 1, "25/12/2030", "08:30", "09:30")}))
	assert.Error(t, CheckConflicts(daily, []Slot{recurring(t, 2, RepeatWeek, 4, "08:45", "09:15")}))

	// And the other direction: anything overlapping a daily booking loses.
	existing := []Slot{recurring(t, 3, RepeatDay, 0, "08:00", "09:00")}
	assert.Error(t, CheckConflicts(single(t, 0, "01/01/2031", "08:30", "09:30"), existing))
	assert.NoError(t, CheckConflicts(single(t, 0, "01/01/2031", "09:00", "10:00"), existing))
}

func TestCheckConflicts_DisjointClassesIgnoreIntervalOverlap(t *testing.T) {
	// Identical time ranges, different weekdays: never a conflict.
	existing := []Slot{recurring(t, 9, RepeatWeek, 1, "10:00", "12:00")}
	assert.NoError(t, CheckConflicts(recurring(t, 0, RepeatWeek, 2, "10:00", "12:00"), existing))

	// Weekly vs monthly recurrences are treated as disjoint classes.
	assert.NoError(t, CheckConflicts(recurring(t, 0, RepeatMonth, 1, "10:00", "12:00"), existing))
}

func TestCheckConflicts_SameRecurrenceClass(t *testing.T) {
	existing := []Slot{recurring(t, 11, RepeatWeek, 5, "18:00", "20:00")}

	err := CheckConflicts(recurring(t, 0, RepeatWeek, 5, "19:00", "21:00"), existing)
	var conflict *ConflictError
	assert.ErrorAs(t, err, &conflict)
	assert.Equal(t, []int64{11}, conflict.IDs)

	// Back-to-back on the same weekday is allowed.
	assert.NoError(t, CheckConflicts(recurring(t, 0, RepeatWeek, 5, "20:00", "21:00"), existing))
}

func TestCheckConflicts_ExcludesSelfOnUpdate(t *testing.T) {
	existing := []Slot{
		single(t, 21, "10/06/2024", "14:00", "15:00"),
		single(t, 22, "10/06/2024", "16:00", "17:00"),
	}

	// Booking 21 shifted by half an hour still only has itself in the way.
	assert.NoError(t, CheckConflicts(single(t, 21, "10/06/2024", "14:30", "15:30"), existing))

	err := CheckConflicts(single(t, 21, "10/06/2024", "16:30", "17:30"), existing)
	var conflict *ConflictError
	assert.ErrorAs(t, err, &conflict)
	assert.Equal(t, []int64{22}, conflict.IDs)
}

func TestCheckConflicts_ReportsAllOffenders(t *testing.T) {
	existing := []Slot{
		single(t, 1, "10/06/2024", "14:00", "15:00"),
		single(t, 2, "10/06/2024", "14:45", "16:00"),
		single(t, 3, "10/06/2024", "18:00", "19:00"),
	}

	err := CheckConflicts(single(t, 0, "10/06/2024", "14:30", "15:30"), existing)
	var conflict *ConflictError
	assert.ErrorAs(t, err, &conflict)
	assert.Equal(t, []int64{1, 2}, conflict.IDs)
}
