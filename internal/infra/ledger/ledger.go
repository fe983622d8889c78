// Package ledger keeps the Redis-backed record of notifications already sent
// on a given day.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-treatment-schedule/internal/domain"
	"github.com/KasumiMercury/primind-treatment-schedule/internal/observability/tracing"
)

const (
	sentKeyPrefix = "notify:sent:"

	// sentTTL outlives the day the key is for, whatever the offset of the
	// configured location.
	sentTTL = 48 * time.Hour
)

type redisLedger struct {
	client redis.UniversalClient
}

func NewRedisLedger(client redis.UniversalClient) domain.SentLedger {
	return &redisLedger{
		client: client,
	}
}

func sentKey(userID string, notificationType domain.NotificationType, day string) string {
	return fmt.Sprintf("%s%s:%s:%s", sentKeyPrefix, notificationType, userID, day)
}

func (l *redisLedger) Claim(ctx context.Context, userID string, notificationType domain.NotificationType, day string) (bool, error) {
	key := sentKey(userID, notificationType, day)
	ctx, span := tracing.StartRedisOperationSpan(ctx, "SETNX", key)
	defer span.End()

	ok, err := l.client.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339), sentTTL).Result()
	if err != nil {
		tracing.RecordError(span, err)
		return false, fmt.Errorf("%w: %v", ErrRedisConnection, err)
	}

	return ok, nil
}

func (l *redisLedger) Release(ctx context.Context, userID string, notificationType domain.NotificationType, day string) error {
	key := sentKey(userID, notificationType, day)
	ctx, span := tracing.StartRedisOperationSpan(ctx, "DEL", key)
	defer span.End()

	if err := l.client.Del(ctx, key).Err(); err != nil {
		tracing.RecordError(span, err)
		return fmt.Errorf("%w: %v", ErrRedisConnection, err)
	}

	return nil
}
