package domain

import (
	"context"
	"time"
)

// RunRecord summarises one notification batch invocation.
type RunRecord struct {
	RunID              string
	RanAt              time.Time
	Duration           time.Duration
	UserCount          int
	InjectionReminders int
	InjectionOverdue   int
	WeightReminders    int
	WeeklySummaries    int
	PushNotifications  int
	ErrorCount         int
}

type RunRecorder interface {
	RecordRun(ctx context.Context, record RunRecord) error
	Close() error
}
