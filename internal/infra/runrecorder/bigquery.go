//go:build gcloud

package runrecorder

import (
	"context"
	"log/slog"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/KasumiMercury/primind-treatment-schedule/internal/domain"
)

type bigQueryRecord struct {
	RunID              string    `bigquery:"run_id"`
	RanAt              time.Time `bigquery:"ran_at"`
	RecordedAt         time.Time `bigquery:"recorded_at"`
	DurationMs         int64     `bigquery:"duration_ms"`
	UserCount          int64     `bigquery:"user_count"`
	InjectionReminders int64     `bigquery:"injection_reminders"`
	InjectionOverdue   int64     `bigquery:"injection_overdue"`
	WeightReminders    int64     `bigquery:"weight_reminders"`
	WeeklySummaries    int64     `bigquery:"weekly_summaries"`
	PushNotifications  int64     `bigquery:"push_notifications"`
	ErrorCount         int64     `bigquery:"error_count"`
}

type bigQueryRecorder struct {
	client   *bigquery.Client
	inserter *bigquery.Inserter
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.RunRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "run result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.BigQueryProjectID == "" {
		slog.WarnContext(ctx, "BigQuery project ID not configured, run result recording disabled")
		return NewNoopRecorder(), nil
	}

	client, err := bigquery.NewClient(ctx, cfg.BigQueryProjectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create BigQuery client, run result recording disabled",
			slog.String("error", err.Error()),
			slog.String("project_id", cfg.BigQueryProjectID),
		)
		return NewNoopRecorder(), nil
	}

	inserter := client.Dataset(cfg.BigQueryDataset).Table(cfg.BigQueryTable).Inserter()

	slog.InfoContext(ctx, "run result recorder initialized",
		slog.String("type", "bigquery"),
		slog.String("project_id", cfg.BigQueryProjectID),
		slog.String("dataset", cfg.BigQueryDataset),
		slog.String("table", cfg.BigQueryTable),
	)

	return &bigQueryRecorder{
		client:   client,
		inserter: inserter,
	}, nil
}

func (r *bigQueryRecorder) RecordRun(ctx context.Context, record domain.RunRecord) error {
	row := &bigQueryRecord{
		RunID:              record.RunID,
		RanAt:              record.RanAt,
		RecordedAt:         time.Now(),
		DurationMs:         record.Duration.Milliseconds(),
		UserCount:          int64(record.UserCount),
		InjectionReminders: int64(record.InjectionReminders),
		InjectionOverdue:   int64(record.InjectionOverdue),
		WeightReminders:    int64(record.WeightReminders),
		WeeklySummaries:    int64(record.WeeklySummaries),
		PushNotifications:  int64(record.PushNotifications),
		ErrorCount:         int64(record.ErrorCount),
	}

	if err := r.inserter.Put(ctx, row); err != nil {
		slog.WarnContext(ctx, "failed to insert run result to BigQuery",
			slog.String("error", err.Error()),
			slog.String("run_id", record.RunID),
		)
	}

	return nil
}

func (r *bigQueryRecorder) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
