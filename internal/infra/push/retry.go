package push

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const defaultMaxRetries = 3

// retryBaseDelay doubles after every failed attempt.
var retryBaseDelay = 100 * time.Millisecond

func retryDelay(attempt int) time.Duration {
	return retryBaseDelay << (attempt - 1)
}

// registerWithRetry runs register up to maxRetries times and returns the
// first success. A cancelled context stops the loop between attempts.
func registerWithRetry(
	ctx context.Context,
	task *NotificationTask,
	maxRetries int,
	register func(context.Context) (*TaskResponse, error),
) (*TaskResponse, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	var lastErr error
	for attempt := range maxRetries {
		if attempt > 0 {
			delay := retryDelay(attempt)
			slog.DebugContext(ctx, "retrying push task registration",
				slog.String("user_id", task.UserID),
				slog.String("task_name", task.Name),
				slog.Int("attempt", attempt+1),
				slog.Duration("backoff", delay),
			)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		resp, err := register(ctx)
		if err == nil {
			return resp, nil
		}
		lastErr = err
	}

	slog.ErrorContext(ctx, "push task registration gave up",
		slog.String("user_id", task.UserID),
		slog.String("task_name", task.Name),
		slog.Int("max_retries", maxRetries),
		slog.String("error", lastErr.Error()),
	)
	return nil, fmt.Errorf("register push task after %d attempts: %w", maxRetries, lastErr)
}
