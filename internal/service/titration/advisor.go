// Package titration proposes dose increases along the fixed ladder.
package titration

import (
	"sort"
	"time"

	"github.com/KasumiMercury/primind-treatment-schedule/internal/calendar"
	"github.com/KasumiMercury/primind-treatment-schedule/internal/domain"
)

// MinWeeksOnDose is the time on a dose before an increase is recommended.
const MinWeeksOnDose = 4

// Advice summarises the titration position of a user.
type Advice struct {
	CurrentDose         *domain.Dose `json:"currentDose"`
	WeeksOnCurrentDose  int          `json:"weeksOnDose"`
	NextDose            *domain.Dose `json:"nextDose"`
	IncreaseRecommended bool         `json:"increaseRecommended"`
}

// NextDose returns the rung above current. It reports false at the top of the
// ladder and for doses that are not on it.
func NextDose(current domain.Dose) (domain.Dose, bool) {
	for i, rung := range domain.DoseLadder {
		if rung != current {
			continue
		}
		if i+1 < len(domain.DoseLadder) {
			return domain.DoseLadder[i+1], true
		}
		return 0, false
	}
	return 0, false
}

func IsIncreaseRecommended(current domain.Dose, weeksOnCurrentDose int) bool {
	return current < domain.MaxDose && weeksOnCurrentDose >= MinWeeksOnDose
}

// WeeksOnCurrentDose counts full weeks since the first injection of the
// trailing run at the most recent dose. Earlier runs at the same dose that
// were interrupted by another dose are not counted.
func WeeksOnCurrentDose(injections []domain.InjectionRecord, today time.Time) int {
	if len(injections) == 0 {
		return 0
	}

	sorted := make([]domain.InjectionRecord, len(injections))
	copy(sorted, injections)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].InjectedAt.After(sorted[j].InjectedAt)
	})

	current := sorted[0].Dose
	earliest := sorted[0].InjectedAt
	for _, inj := range sorted[1:] {
		if inj.Dose != current {
			break
		}
		earliest = inj.InjectedAt
	}

	days := calendar.DaysBetween(calendar.StartOfDay(earliest.In(today.Location())), calendar.StartOfDay(today))
	return days / 7
}

// Advise evaluates the injection history as of today.
func Advise(injections []domain.InjectionRecord, today time.Time) Advice {
	if len(injections) == 0 {
		return Advice{}
	}

	latest := injections[0]
	for _, inj := range injections[1:] {
		if inj.InjectedAt.After(latest.InjectedAt) {
			latest = inj
		}
	}

	current := latest.Dose
	weeks := WeeksOnCurrentDose(injections, today)
	advice := Advice{
		CurrentDose:         &current,
		WeeksOnCurrentDose:  weeks,
		IncreaseRecommended: IsIncreaseRecommended(current, weeks),
	}
	if next, ok := NextDose(current); ok {
		advice.NextDose = &next
	}
	return advice
}
