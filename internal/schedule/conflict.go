package schedule

// RecurrenceUnit is the granularity a booking repeats at. The zero value
// means the booking happens once, on its Date.
type RecurrenceUnit string

const (
	RepeatNone  RecurrenceUnit = ""
	RepeatDay   RecurrenceUnit = "day"
	RepeatWeek  RecurrenceUnit = "week"
	RepeatMonth RecurrenceUnit = "month"
)

func (u RecurrenceUnit) Valid() bool {
	switch u {
	case RepeatNone, RepeatDay, RepeatWeek, RepeatMonth:
		return true
	}
	return false
}

// Slot is the schedule-relevant projection of a booking: when it occurs
// and for how long. Room scoping is the caller's job; a resolver call
// receives only slots belonging to a single room.
type Slot struct {
	ID        int64
	Date      *Date          // set iff the booking occurs once
	Repeat    RecurrenceUnit // set iff the booking recurs
	RepeatDay int            // weekday (0=Sunday) for week, day of month for month
	Start     TimeOfDay
	End       TimeOfDay
}

func (s Slot) Recurring() bool { return s.Repeat != RepeatNone }

// Validate enforces the structural invariants of a slot: a strictly
// positive interval, exactly one of date / recurrence rule, and a day
// marker inside its unit's range (0-6 for weekly, 1-31 for monthly).
func Validate(s Slot) error {
	if s.Start >= s.End {
		return ErrInvalidInterval
	}
	if !s.Repeat.Valid() {
		return ErrMissingField
	}
	if s.Recurring() {
		switch s.Repeat {
		case RepeatWeek:
			if s.RepeatDay < 0 || s.RepeatDay > 6 {
				return ErrMissingField
			}
		case RepeatMonth:
			if s.RepeatDay < 1 || s.RepeatDay > 31 {
				return ErrMissingField
			}
		}
		return nil
	}
	if s.Date == nil {
		return ErrMissingField
	}
	return nil
}

// CheckConflicts decides whether the candidate may join the existing
// slots of its room without double-booking. It validates the candidate,
// then rejects with a *ConflictError naming every existing slot whose
// occurrence class intersects the candidate's and whose time interval
// overlaps it. The function is pure; persisting an accepted candidate is
// the caller's responsibility.
func CheckConflicts(candidate Slot, existing []Slot) error {
	if err := Validate(candidate); err != nil {
		return err
	}

	var ids []int64
	for _, e := range existing {
		if e.ID == candidate.ID && candidate.ID != 0 {
			continue
		}
		if sameOccurrence(candidate, e) && overlaps(candidate, e) {
			ids = append(ids, e.ID)
		}
	}
	if len(ids) > 0 {
		return &ConflictError{IDs: ids}
	}
	return nil
}

// sameOccurrence reports whether two slots can land on at least one
// common calendar date. Daily recurrence intersects everything. A dated
// slot meets a weekly rule when its weekday matches, and a monthly rule
// when its day of month matches. Two recurring slots intersect only on
// the same unit and day marker; week-vs-month pairs are treated as
// disjoint.
func sameOccurrence(a, b Slot) bool {
	if a.Repeat == RepeatDay || b.Repeat == RepeatDay {
		return true
	}

	switch {
	case !a.Recurring() && !b.Recurring():
		return *a.Date == *b.Date
	case a.Recurring() && b.Recurring():
		return a.Repeat == b.Repeat && a.RepeatDay == b.RepeatDay
	}

	// One dated, one recurring.
	dated, rec := a, b
	if a.Recurring() {
		dated, rec = b, a
	}
	switch rec.Repeat {
	case RepeatWeek:
		return int(dated.Date.Weekday()) == rec.RepeatDay
	case RepeatMonth:
		return dated.Date.Day == rec.RepeatDay
	}
	return false
}

// overlaps tests half-open intervals: back-to-back slots do not clash.
func overlaps(a, b Slot) bool {
	return a.Start < b.End && b.Start < a.End
}
