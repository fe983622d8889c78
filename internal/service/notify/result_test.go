package notify

import (
	"errors"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-treatment-schedule/internal/domain"
)

func TestResult_Add(t *testing.T) {
	r := NewResult()

	r.Add("u1", CheckOutcome{Category: CategoryInjection, Type: domain.NotificationInjectionReminder, Sent: true, Pushed: 2})
	r.Add("u1", CheckOutcome{Category: CategoryWeight, Type: domain.NotificationWeightReminder, Skipped: skipBeforeHour})
	r.Add("u2", CheckOutcome{Category: CategoryInjection, Type: domain.NotificationInjectionOverdue, Sent: true})
	r.Add("u2", CheckOutcome{Category: CategoryWeeklySummary, Type: domain.NotificationWeeklySummary, Err: errors.New("boom")})
	r.Add("u3", CheckOutcome{Category: CategoryInjection, Type: domain.NotificationInjectionReminder, Pushed: 1})

	if r.InjectionReminders != 1 || r.InjectionOverdue != 1 || r.WeightReminders != 0 || r.WeeklySummaries != 0 {
		t.Errorf("unexpected counters: %+v", r)
	}
	if r.PushNotifications != 3 {
		t.Errorf("PushNotifications = %d, want 3", r.PushNotifications)
	}
	if len(r.Errors) != 1 || r.Errors[0] != "weekly summary check failed for user u2: boom" {
		t.Errorf("Errors = %v", r.Errors)
	}
	if r.Sent() != 2 {
		t.Errorf("Sent() = %d, want 2", r.Sent())
	}
}

func TestNewResult_ErrorsNotNil(t *testing.T) {
	if NewResult().Errors == nil {
		t.Error("Errors must be an empty slice so it encodes as []")
	}
}

func TestCheckOutcome_Label(t *testing.T) {
	tests := []struct {
		outcome CheckOutcome
		want    string
	}{
		{outcome: CheckOutcome{Err: errors.New("x"), Sent: true}, want: "error"},
		{outcome: CheckOutcome{Sent: true}, want: "sent"},
		{outcome: CheckOutcome{Pushed: 1}, want: "sent"},
		{outcome: CheckOutcome{Skipped: skipNotDue}, want: "skipped"},
		{outcome: CheckOutcome{}, want: "failed"},
	}

	for _, tt := range tests {
		if got := tt.outcome.label(); got != tt.want {
			t.Errorf("label(%+v) = %q, want %q", tt.outcome, got, tt.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	at := func(d int) time.Time { return time.Date(2024, 1, d, 8, 0, 0, 0, time.UTC) }

	tests := []struct {
		name          string
		weights       []domain.WeightEntry
		injections    []domain.InjectionRecord
		wantDirection string
		wantChange    *float64
	}{
		{
			name:    "no weights",
			weights: nil,
		},
		{
			name:          "down",
			weights:       []domain.WeightEntry{{WeightKg: 100, RecordedAt: at(8)}, {WeightKg: 99.2, RecordedAt: at(12)}},
			injections:    []domain.InjectionRecord{{Dose: 5}},
			wantDirection: "down",
			wantChange:    ptrFloat(-0.8),
		},
		{
			name:          "up out of order",
			weights:       []domain.WeightEntry{{WeightKg: 101, RecordedAt: at(12)}, {WeightKg: 100, RecordedAt: at(8)}},
			wantDirection: "up",
			wantChange:    ptrFloat(1),
		},
		{
			name:          "same",
			weights:       []domain.WeightEntry{{WeightKg: 100, RecordedAt: at(8)}},
			wantDirection: "same",
			wantChange:    ptrFloat(0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.weights, tt.injections)

			if got.WeightCount != len(tt.weights) || got.InjectionCount != len(tt.injections) {
				t.Errorf("counts = %d/%d", got.WeightCount, got.InjectionCount)
			}
			if got.Direction != tt.wantDirection {
				t.Errorf("Direction = %q, want %q", got.Direction, tt.wantDirection)
			}
			switch {
			case tt.wantChange == nil && got.ChangeKg != nil:
				t.Errorf("ChangeKg = %v, want nil", *got.ChangeKg)
			case tt.wantChange != nil && (got.ChangeKg == nil || *got.ChangeKg != *tt.wantChange):
				t.Errorf("ChangeKg = %v, want %v", got.ChangeKg, *tt.wantChange)
			}
		})
	}
}

func ptrFloat(v float64) *float64 {
	return &v
}
