package schedule

import (
	"iter"
	"time"
)

// Occurrence is one concrete calendar date a slot falls on.
type Occurrence struct {
	Slot Slot
	Date Date
}

// MonthWindow returns the first and last dates of a month.
func MonthWindow(year int, month time.Month) (Date, Date) {
	first := Date{Year: year, Month: month, Day: 1}
	last := DateOf(first.Time().AddDate(0, 1, -1))
	return first, last
}

// MonthOccurrences expands slots into dated occurrences inside the given
// month. Dated slots contribute at most one entry; weekly slots are
// walked from the first matching weekday in seven-day steps; daily slots
// hit every date; monthly slots hit their day marker when the month has
// it. The sequence performs no conflict checking and can be ranged over
// more than once.
func MonthOccurrences(slots []Slot, year int, month time.Month) iter.Seq[Occurrence] {
	first, last := MonthWindow(year, month)

	return func(yield func(Occurrence) bool) {
		for _, s := range slots {
			switch {
			case !s.Recurring():
				d := *s.Date
				if !d.Before(first) && !d.After(last) {
					if !yield(Occurrence{Slot: s, Date: d}) {
						return
					}
				}

			case s.Repeat == RepeatDay:
				for d := first; !d.After(last); d = d.AddDays(1) {
					if !yield(Occurrence{Slot: s, Date: d}) {
						return
					}
				}

			case s.Repeat == RepeatWeek:
				// Out-of-range weekdays can never match; skip instead of
				// scanning past the month.
				if s.RepeatDay < 0 || s.RepeatDay > 6 {
					continue
				}
				d := first
				for int(d.Weekday()) != s.RepeatDay {
					d = d.AddDays(1)
				}
				for ; !d.After(last); d = d.AddDays(7) {
					if !yield(Occurrence{Slot: s, Date: d}) {
						return
					}
				}

			case s.Repeat == RepeatMonth:
				if s.RepeatDay >= 1 && s.RepeatDay <= last.Day {
					d := Date{Year: year, Month: month, Day: s.RepeatDay}
					if !yield(Occurrence{Slot: s, Date: d}) {
						return
					}
				}
			}
		}
	}
}
