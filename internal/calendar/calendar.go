// Package calendar provides day and week arithmetic on local calendar fields.
//
// Every function works in the location carried by its time arguments: two
// instants on the same local day are the same day regardless of wall clock.
package calendar

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/jinzhu/now"
)

const (
	// DayLayout is the canonical day key format.
	DayLayout = "2006-01-02"

	hoursPerDay = 24
)

func config(weekStartsOn time.Weekday) *now.Config {
	return &now.Config{WeekStartDay: weekStartsOn}
}

func StartOfDay(t time.Time) time.Time {
	return now.With(t).BeginningOfDay()
}

func EndOfDay(t time.Time) time.Time {
	return now.With(t).EndOfDay()
}

// StartOfWeek returns the first instant of the week containing t, where the
// week begins on weekStartsOn (time.Monday or time.Sunday).
func StartOfWeek(t time.Time, weekStartsOn time.Weekday) time.Time {
	return config(weekStartsOn).With(t).BeginningOfWeek()
}

func EndOfWeek(t time.Time, weekStartsOn time.Weekday) time.Time {
	return config(weekStartsOn).With(t).EndOfWeek()
}

func StartOfMonth(t time.Time) time.Time {
	return now.With(t).BeginningOfMonth()
}

func EndOfMonth(t time.Time) time.Time {
	return now.With(t).EndOfMonth()
}

// wall maps t onto UTC with identical calendar fields so that differences are
// free of DST offsets. ref supplies the location both sides are read in.
func wall(t time.Time, ref *time.Location) time.Time {
	y, m, d := t.In(ref).Date()
	h, mi, sec := t.In(ref).Clock()
	return time.Date(y, m, d, h, mi, sec, t.Nanosecond(), time.UTC)
}

// DaysBetween returns the absolute number of days between a and b, rounded up.
// The result does not depend on argument order.
func DaysBetween(a, b time.Time) int {
	loc := a.Location()
	diff := math.Abs(wall(b, loc).Sub(wall(a, loc)).Hours()) / hoursPerDay
	return int(math.Ceil(diff))
}

// WeeksBetween returns ceil(DaysBetween(a, b) / 7).
func WeeksBetween(a, b time.Time) int {
	return int(math.Ceil(float64(DaysBetween(a, b)) / 7))
}

// DayDiff returns the signed number of calendar days from `from` to `to`.
// Times of day are ignored.
func DayDiff(from, to time.Time) int {
	loc := from.Location()
	f := wall(StartOfDay(from), loc)
	g := wall(StartOfDay(to.In(loc)), loc)
	return int(g.Sub(f).Hours() / hoursPerDay)
}

func AddDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

func AddWeeks(t time.Time, weeks int) time.Time {
	return t.AddDate(0, 0, 7*weeks)
}

func IsSameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}

// IsToday reports whether t falls on the same local day as current.
func IsToday(t, current time.Time) bool {
	return IsSameDay(current, t)
}

// RelativeTime renders t relative to current, e.g. "just now", "3 hours ago",
// "yesterday", "in 4 days".
func RelativeTime(t, current time.Time) string {
	diff := t.Sub(current)
	abs := diff
	if abs < 0 {
		abs = -abs
	}
	future := diff > 0

	// A 25-hour DST day keeps same-day times in the hour buckets.
	days := DayDiff(current, t)
	switch {
	case abs < time.Minute:
		return "just now"
	case abs < time.Hour:
		return relative(int(abs/time.Minute), "minute", future)
	case abs < hoursPerDay*time.Hour || days == 0:
		return relative(int(abs/time.Hour), "hour", future)
	}

	switch days {
	case -1:
		return "yesterday"
	case 1:
		return "tomorrow"
	}
	if days < 0 {
		return relative(-days, "day", false)
	}
	return relative(days, "day", true)
}

func relative(n int, unit string, future bool) string {
	if n != 1 {
		unit += "s"
	}
	if future {
		return fmt.Sprintf("in %d %s", n, unit)
	}
	return fmt.Sprintf("%d %s ago", n, unit)
}

// parseLayouts are tried in order: ISO first, then day-first slash, then the
// remaining slash and dash variants. Non-padded verbs also accept padded input.
var parseLayouts = []string{
	time.RFC3339,
	DayLayout,
	"2006-1-2",
	"2/1/2006",
	"2006/1/2",
	"2-1-2006",
}

// ParseDate parses s in loc using the supported layouts. The boolean is false
// when no layout matches; callers must check it before using the time.
func ParseDate(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range parseLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.In(loc), true
		}
	}
	return time.Time{}, false
}

// FormatDay renders the local day key (YYYY-MM-DD).
func FormatDay(t time.Time) string {
	return t.Format(DayLayout)
}

// FormatLabel renders a human label such as "Monday, Jan 15".
func FormatLabel(t time.Time) string {
	return t.Format("Monday, Jan 2")
}
