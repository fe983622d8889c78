package tracing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const notifyTracerName = "github.com/KasumiMercury/primind-treatment-schedule/internal/service/notify"

func NotifyTracer() trace.Tracer {
	return otel.Tracer(notifyTracerName)
}

func StartRunSpan(ctx context.Context, runID string, now time.Time) (context.Context, trace.Span) {
	return NotifyTracer().Start(ctx, "notify.run",
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.String("run.now", now.Format(time.RFC3339)),
		),
	)
}

func StartUserSpan(ctx context.Context, userID string) (context.Context, trace.Span) {
	return NotifyTracer().Start(ctx, "notify.user",
		trace.WithAttributes(
			attribute.String("user_id", userID),
		),
	)
}

func StartExternalAPISpan(ctx context.Context, operation, url string) (context.Context, trace.Span) {
	return NotifyTracer().Start(ctx, "notify.external_api."+operation,
		trace.WithAttributes(
			attribute.String("url", url),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func StartRedisOperationSpan(ctx context.Context, operation, key string) (context.Context, trace.Span) {
	return NotifyTracer().Start(ctx, "notify.redis."+operation,
		trace.WithAttributes(
			attribute.String("db.system", "redis"),
			attribute.String("db.operation", operation),
			attribute.String("db.key", key),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordRunResult(span trace.Span, userCount, sentCount, errorCount int, err error) {
	span.SetAttributes(
		attribute.Int("run.user_count", userCount),
		attribute.Int("run.sent_count", sentCount),
		attribute.Int("run.error_count", errorCount),
	)
	RecordError(span, err)
}

// RecordError marks the span failed when err is non-nil and ok otherwise.
func RecordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}
