package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/primind-treatment-schedule/internal/domain"
	"github.com/KasumiMercury/primind-treatment-schedule/internal/service/schedule"
	"github.com/KasumiMercury/primind-treatment-schedule/internal/service/timeseries"
)

func at(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 8, 0, 0, 0, time.UTC)
}

func TestWeightStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := domain.NewMockUserStore(ctrl)
	now := at(2024, 3, 1)

	store.EXPECT().
		FindProfile(gomock.Any(), "user-1").
		Return(&domain.Profile{UserID: "user-1", StartingWeightKg: 102, GoalWeightKg: 85}, nil)
	store.EXPECT().
		FindWeightsBetween(gomock.Any(), "user-1", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, start, end *time.Time) ([]domain.WeightEntry, error) {
			if start == nil || !start.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
				t.Errorf("unexpected start: %v", start)
			}
			if end == nil {
				t.Error("expected end bound")
			}
			return []domain.WeightEntry{
				{WeightKg: 100, RecordedAt: at(2024, 1, 1)},
				{WeightKg: 98, RecordedAt: at(2024, 1, 8)},
				{WeightKg: 95, RecordedAt: at(2024, 1, 15)},
				{WeightKg: 93, RecordedAt: at(2024, 1, 22)},
			}, nil
		})

	svc := NewService(store, time.UTC, time.Monday)
	got, err := svc.WeightStats(context.Background(), "user-1", Query{
		Period:    "3m",
		StartDate: "2024-01-01",
		EndDate:   "2024-01-31",
		Now:       now,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Period != timeseries.PeriodCustom {
		t.Errorf("Period = %q, want custom", got.Period)
	}
	if got.StartDate == nil || *got.StartDate != "2024-01-01" {
		t.Errorf("StartDate = %v", got.StartDate)
	}
	if got.EndDate == nil || *got.EndDate != "2024-01-31" {
		t.Errorf("EndDate = %v", got.EndDate)
	}
	if len(got.Series) != 4 || len(got.WeeklyAverages) != 4 {
		t.Errorf("series/weekly lengths = %d/%d, want 4/4", len(got.Series), len(got.WeeklyAverages))
	}
	if got.Stats.Avg == nil || *got.Stats.Avg != 96.5 {
		t.Errorf("Avg = %v, want 96.5", got.Stats.Avg)
	}
	if got.GoalWeightKg == nil || *got.GoalWeightKg != 85 {
		t.Errorf("GoalWeightKg = %v, want 85", got.GoalWeightKg)
	}
}

func TestWeightStats_NoProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := domain.NewMockUserStore(ctrl)
	store.EXPECT().FindProfile(gomock.Any(), "user-1").Return(nil, domain.ErrProfileNotFound)
	store.EXPECT().FindWeightsBetween(gomock.Any(), "user-1", nil, nil).Return(nil, nil)

	svc := NewService(store, time.UTC, time.Monday)
	got, err := svc.WeightStats(context.Background(), "user-1", Query{Period: "all", Now: at(2024, 3, 1)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Stats.Start != nil || got.GoalWeightKg != nil {
		t.Errorf("expected empty stats, got %+v", got)
	}
	if got.StartDate != nil || got.EndDate != nil {
		t.Errorf("expected open window, got %v..%v", got.StartDate, got.EndDate)
	}
}

func TestWeightStats_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	storeErr := errors.New("connection refused")
	store := domain.NewMockUserStore(ctrl)
	store.EXPECT().FindProfile(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	store.EXPECT().FindWeightsBetween(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, storeErr)

	svc := NewService(store, time.UTC, time.Monday)
	_, err := svc.WeightStats(context.Background(), "user-1", Query{Now: at(2024, 3, 1)})
	if !errors.Is(err, storeErr) {
		t.Errorf("expected wrapped store error, got %v", err)
	}
}

func TestInjectionStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := domain.NewMockUserStore(ctrl)
	store.EXPECT().FindProfile(gomock.Any(), "user-1").Return(&domain.Profile{UserID: "user-1"}, nil)
	store.EXPECT().
		FindInjectionsBetween(gomock.Any(), "user-1", nil, nil).
		Return([]domain.InjectionRecord{
			{Dose: 2.5, Site: domain.SiteAbdomenLeft, InjectedAt: at(2023, 11, 20)},
			{Dose: 5, Site: domain.SiteAbdomenRight, InjectedAt: at(2023, 12, 11)},
			{Dose: 5, Site: domain.SiteThighLeft, InjectedAt: at(2023, 12, 18)},
			{Dose: 5, Site: domain.SiteThighRight, InjectedAt: at(2024, 1, 1)},
			{Dose: 5, Site: domain.SiteArmLeft, InjectedAt: at(2024, 1, 8)},
		}, nil)

	svc := NewService(store, time.UTC, time.Monday)
	got, err := svc.InjectionStats(context.Background(), "user-1", Query{
		StartDate: "2023-12-01",
		EndDate:   "2024-01-16",
		Now:       time.Date(2024, 1, 16, 10, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.TotalInjections != 4 {
		t.Errorf("TotalInjections = %d, want 4", got.TotalInjections)
	}
	if len(got.DoseHistory) != 1 || got.DoseHistory[0].DoseMg != 5 {
		t.Errorf("DoseHistory = %+v", got.DoseHistory)
	}
	if got.NextDue == nil || *got.NextDue != "2024-01-15" {
		t.Errorf("NextDue = %v, want 2024-01-15", got.NextDue)
	}
	if got.DaysUntilDue == nil || *got.DaysUntilDue != -1 {
		t.Errorf("DaysUntilDue = %v, want -1", got.DaysUntilDue)
	}
	if got.Status == nil || *got.Status != schedule.StatusOverdue {
		t.Errorf("Status = %v, want overdue", got.Status)
	}
	if got.SuggestedSite != domain.SiteArmRight {
		t.Errorf("SuggestedSite = %q, want arm_right", got.SuggestedSite)
	}
	if got.Titration.CurrentDose == nil || *got.Titration.CurrentDose != 5 {
		t.Errorf("Titration.CurrentDose = %v", got.Titration.CurrentDose)
	}
	if got.Titration.WeeksOnCurrentDose != 5 || !got.Titration.IncreaseRecommended {
		t.Errorf("Titration = %+v, want 5 weeks and increase recommended", got.Titration)
	}
}

func TestInjectionStats_NoHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := domain.NewMockUserStore(ctrl)
	store.EXPECT().FindProfile(gomock.Any(), "user-1").Return(nil, domain.ErrProfileNotFound)
	store.EXPECT().FindInjectionsBetween(gomock.Any(), "user-1", nil, nil).Return(nil, nil)

	svc := NewService(store, time.UTC, time.Monday)
	got, err := svc.InjectionStats(context.Background(), "user-1", Query{Now: at(2024, 1, 16)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.NextDue != nil || got.Status != nil {
		t.Errorf("expected no due date, got %v / %v", got.NextDue, got.Status)
	}
	if got.SuggestedSite != domain.SiteAbdomenLeft {
		t.Errorf("SuggestedSite = %q, want abdomen_left", got.SuggestedSite)
	}
}
