package schedule

import (
	"time"

	"github.com/KasumiMercury/primind-treatment-schedule/internal/calendar"
)

// Status is the urgency of the next injection.
type Status int

const (
	StatusUpcoming Status = iota
	StatusReminder
	StatusDueToday
	StatusOverdue
	StatusAlert
)

const (
	reminderDay = 6
	dueDay      = 7
	overdueDay  = 8
)

var statusNames = map[Status]string{
	StatusUpcoming: "upcoming",
	StatusReminder: "reminder",
	StatusDueToday: "due_today",
	StatusOverdue:  "overdue",
	StatusAlert:    "alert",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ClassifyDays maps the number of days since the last injection to a Status.
func ClassifyDays(daysSince int) Status {
	switch {
	case daysSince < reminderDay:
		return StatusUpcoming
	case daysSince == reminderDay:
		return StatusReminder
	case daysSince == dueDay:
		return StatusDueToday
	case daysSince == overdueDay:
		return StatusOverdue
	default:
		return StatusAlert
	}
}

// Classify compares calendar days, so the time of the injection within its
// day does not affect the result.
func Classify(lastInjection, today time.Time) Status {
	return ClassifyDays(calendar.DaysBetween(calendar.StartOfDay(lastInjection), calendar.StartOfDay(today)))
}
