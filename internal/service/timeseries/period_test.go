package timeseries

import (
	"testing"
	"time"

	"github.com/KasumiMercury/primind-treatment-schedule/internal/domain"
)

func TestResolvePeriod(t *testing.T) {
	now := time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		period    string
		startDate string
		endDate   string
		wantKind  Period
		wantStart *time.Time
		wantEnd   *time.Time
	}{
		{
			name:      "three months",
			period:    "3m",
			wantKind:  Period3Months,
			wantStart: ptrTime(time.Date(2024, 4, 15, 12, 0, 0, 0, time.UTC)),
		},
		{
			name:      "six months",
			period:    "6m",
			wantKind:  Period6Months,
			wantStart: ptrTime(time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)),
		},
		{
			name:      "one year",
			period:    "1y",
			wantKind:  Period1Year,
			wantStart: ptrTime(time.Date(2023, 7, 15, 12, 0, 0, 0, time.UTC)),
		},
		{name: "all", period: "all", wantKind: PeriodAll},
		{name: "unknown", period: "2w", wantKind: PeriodAll},
		{name: "empty", wantKind: PeriodAll},
		{
			name:      "explicit range overrides period",
			period:    "3m",
			startDate: "2024-01-01",
			endDate:   "2024-01-31",
			wantKind:  PeriodCustom,
			wantStart: ptrTime(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
			wantEnd:   ptrTime(time.Date(2024, 1, 31, 23, 59, 59, 999999999, time.UTC)),
		},
		{
			name:      "unpadded day first range overrides period",
			period:    "3m",
			startDate: "5/1/2024",
			endDate:   "9/2/2024",
			wantKind:  PeriodCustom,
			wantStart: ptrTime(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)),
			wantEnd:   ptrTime(time.Date(2024, 2, 9, 23, 59, 59, 999999999, time.UTC)),
		},
		{
			name:      "lone start date keeps period",
			period:    "all",
			startDate: "2024-01-05",
			wantKind:  PeriodAll,
		},
		{
			name:      "lone end date keeps period",
			period:    "6m",
			endDate:   "2024-01-31",
			wantKind:  Period6Months,
			wantStart: ptrTime(time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)),
		},
		{
			name:     "unparseable dates fall back to period",
			period:   "all",
			endDate:  "soon",
			wantKind: PeriodAll,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolvePeriod(tt.period, tt.startDate, tt.endDate, now)

			if got.Period != tt.wantKind {
				t.Errorf("Period = %q, want %q", got.Period, tt.wantKind)
			}
			if !timesEqual(got.Start, tt.wantStart) {
				t.Errorf("Start = %v, want %v", got.Start, tt.wantStart)
			}
			if !timesEqual(got.End, tt.wantEnd) {
				t.Errorf("End = %v, want %v", got.End, tt.wantEnd)
			}
		})
	}
}

func TestFilterWeights(t *testing.T) {
	entries := []domain.WeightEntry{
		{ID: "1", RecordedAt: day(2024, 1, 1)},
		{ID: "2", RecordedAt: day(2024, 1, 15)},
		{ID: "3", RecordedAt: day(2024, 2, 1)},
	}
	w := ResolvePeriod("", "2024-01-10", "2024-01-31", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	got := FilterWeights(entries, w)
	if len(got) != 1 || got[0].ID != "2" {
		t.Errorf("FilterWeights() = %+v, want only entry 2", got)
	}

	if got := FilterWeights(entries, Window{Period: PeriodAll}); len(got) != 3 {
		t.Errorf("FilterWeights(all) returned %d entries, want 3", len(got))
	}
}

func TestFilterInjections(t *testing.T) {
	now := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)
	injections := []domain.InjectionRecord{
		{ID: "1", InjectedAt: day(2024, 1, 1)},
		{ID: "2", InjectedAt: day(2024, 6, 1)},
	}

	got := FilterInjections(injections, ResolvePeriod("3m", "", "", now))
	if len(got) != 1 || got[0].ID != "2" {
		t.Errorf("FilterInjections() = %+v, want only injection 2", got)
	}
}

func ptrTime(t time.Time) *time.Time {
	return &t
}

func timesEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
