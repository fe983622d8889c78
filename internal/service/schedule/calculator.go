package schedule

import (
	"time"

	"github.com/KasumiMercury/primind-treatment-schedule/internal/calendar"
)

const (
	// IntervalDays is the fixed injection cadence.
	IntervalDays = 7

	// PreferredDayWindow is the largest shift, in days, applied to move the
	// base due date onto the preferred weekday.
	PreferredDayWindow = 2
)

// NextDue returns the date the next injection is due. A preferred weekday
// nudges the base date by at most PreferredDayWindow days in either
// direction; preferences further away leave the base date unchanged.
func NextDue(lastInjection time.Time, preferred *time.Weekday) time.Time {
	base := calendar.AddDays(lastInjection, IntervalDays)
	if preferred == nil {
		return base
	}

	delta := int(*preferred) - int(base.Weekday())
	if abs(delta) <= PreferredDayWindow {
		return calendar.AddDays(base, delta)
	}

	wrapped := delta
	switch {
	case delta > PreferredDayWindow:
		wrapped = delta - 7
	case delta < -PreferredDayWindow:
		wrapped = delta + 7
	}
	if abs(wrapped) <= PreferredDayWindow {
		return calendar.AddDays(base, wrapped)
	}

	return base
}

// DaysUntilDue is the signed number of calendar days from today to due.
// Negative values mean the due date has passed.
func DaysUntilDue(due, today time.Time) int {
	return calendar.DayDiff(today, due)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
