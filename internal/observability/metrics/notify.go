package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	notifyMeterName = "notify.service"
)

type NotifyMetrics struct {
	runsTotal       metric.Int64Counter
	runDuration     metric.Float64Histogram
	usersProcessed  metric.Int64Counter
	checkOutcomes   metric.Int64Counter
	emailsSent      metric.Int64Counter
	pushesSent      metric.Int64Counter
	ledgerDecisions metric.Int64Counter
}

func NewNotifyMetrics() (*NotifyMetrics, error) {
	meter := otel.Meter(notifyMeterName)

	runsTotal, err := meter.Int64Counter(
		"notify_runs_total",
		metric.WithDescription("Total number of notification batch runs"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, err
	}

	runDuration, err := meter.Float64Histogram(
		"notify_run_duration_seconds",
		metric.WithDescription("Notification batch run duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120,
		),
	)
	if err != nil {
		return nil, err
	}

	usersProcessed, err := meter.Int64Counter(
		"notify_users_processed_total",
		metric.WithDescription("Total number of users evaluated by batch runs"),
		metric.WithUnit("{user}"),
	)
	if err != nil {
		return nil, err
	}

	checkOutcomes, err := meter.Int64Counter(
		"notify_check_outcomes_total",
		metric.WithDescription("Per-category check outcomes"),
		metric.WithUnit("{check}"),
	)
	if err != nil {
		return nil, err
	}

	emailsSent, err := meter.Int64Counter(
		"notify_emails_total",
		metric.WithDescription("Email dispatch attempts by type and status"),
		metric.WithUnit("{email}"),
	)
	if err != nil {
		return nil, err
	}

	pushesSent, err := meter.Int64Counter(
		"notify_push_total",
		metric.WithDescription("Push notifications accepted by the push channel"),
		metric.WithUnit("{push}"),
	)
	if err != nil {
		return nil, err
	}

	ledgerDecisions, err := meter.Int64Counter(
		"notify_ledger_decisions_total",
		metric.WithDescription("Sent-ledger claim decisions"),
		metric.WithUnit("{claim}"),
	)
	if err != nil {
		return nil, err
	}

	return &NotifyMetrics{
		runsTotal:       runsTotal,
		runDuration:     runDuration,
		usersProcessed:  usersProcessed,
		checkOutcomes:   checkOutcomes,
		emailsSent:      emailsSent,
		pushesSent:      pushesSent,
		ledgerDecisions: ledgerDecisions,
	}, nil
}

func (m *NotifyMetrics) RecordRun(ctx context.Context, outcome string, duration time.Duration) {
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	m.runsTotal.Add(ctx, 1, attrs)
	m.runDuration.Record(ctx, duration.Seconds(), attrs)
}

func (m *NotifyMetrics) RecordUsersProcessed(ctx context.Context, count int) {
	m.usersProcessed.Add(ctx, int64(count))
}

// RecordCheckOutcome records one category check. outcome is sent, skipped or error.
func (m *NotifyMetrics) RecordCheckOutcome(ctx context.Context, category, outcome string) {
	m.checkOutcomes.Add(ctx, 1, metric.WithAttributes(
		attribute.String("category", category),
		attribute.String("outcome", outcome),
	))
}

func (m *NotifyMetrics) RecordEmail(ctx context.Context, notificationType, status string) {
	m.emailsSent.Add(ctx, 1, metric.WithAttributes(
		attribute.String("notification_type", notificationType),
		attribute.String("status", status),
	))
}

func (m *NotifyMetrics) RecordPush(ctx context.Context, notificationType string, sent int) {
	if sent <= 0 {
		return
	}
	m.pushesSent.Add(ctx, int64(sent), metric.WithAttributes(
		attribute.String("notification_type", notificationType),
	))
}

func (m *NotifyMetrics) RecordLedgerDecision(ctx context.Context, notificationType, decision string) {
	m.ledgerDecisions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("notification_type", notificationType),
		attribute.String("decision", decision),
	))
}
