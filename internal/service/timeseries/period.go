package timeseries

import (
	"time"

	"github.com/KasumiMercury/primind-treatment-schedule/internal/calendar"
	"github.com/KasumiMercury/primind-treatment-schedule/internal/domain"
)

type Period string

const (
	Period3Months Period = "3m"
	Period6Months Period = "6m"
	Period1Year   Period = "1y"
	PeriodAll     Period = "all"
	PeriodCustom  Period = "custom"
)

// Window bounds a query. A nil bound is open.
type Window struct {
	Period Period
	Start  *time.Time
	End    *time.Time
}

// ResolvePeriod turns request parameters into a Window. A parseable start and
// end date pair overrides the named period; a lone date is ignored. "all" and
// unknown periods leave the window open so the whole history is used.
func ResolvePeriod(period, startDate, endDate string, now time.Time) Window {
	loc := now.Location()
	start, hasStart := calendar.ParseDate(startDate, loc)
	end, hasEnd := calendar.ParseDate(endDate, loc)
	if hasStart && hasEnd {
		s := calendar.StartOfDay(start)
		e := calendar.EndOfDay(end)
		return Window{Period: PeriodCustom, Start: &s, End: &e}
	}

	var from time.Time
	switch Period(period) {
	case Period3Months:
		from = now.AddDate(0, -3, 0)
	case Period6Months:
		from = now.AddDate(0, -6, 0)
	case Period1Year:
		from = now.AddDate(-1, 0, 0)
	default:
		return Window{Period: PeriodAll}
	}
	return Window{Period: Period(period), Start: &from}
}

func (w Window) Contains(t time.Time) bool {
	if w.Start != nil && t.Before(*w.Start) {
		return false
	}
	if w.End != nil && t.After(*w.End) {
		return false
	}
	return true
}

func FilterWeights(entries []domain.WeightEntry, w Window) []domain.WeightEntry {
	filtered := make([]domain.WeightEntry, 0, len(entries))
	for _, e := range entries {
		if w.Contains(e.RecordedAt) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

func FilterInjections(injections []domain.InjectionRecord, w Window) []domain.InjectionRecord {
	filtered := make([]domain.InjectionRecord, 0, len(injections))
	for _, inj := range injections {
		if w.Contains(inj.InjectedAt) {
			filtered = append(filtered, inj)
		}
	}
	return filtered
}
