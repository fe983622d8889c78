package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-treatment-schedule/internal/domain"
	"github.com/KasumiMercury/primind-treatment-schedule/internal/testutil"
)

func TestSentKey(t *testing.T) {
	got := sentKey("user-1", domain.NotificationWeightReminder, "2024-01-15")
	want := "notify:sent:weight_reminder:user-1:2024-01-15"
	if got != want {
		t.Errorf("sentKey() = %q, want %q", got, want)
	}
}

func TestClaimSuccess(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	l := NewRedisLedger(client)

	tests := []struct {
		name     string
		userID   string
		typ      domain.NotificationType
		day      string
		setup    func(t *testing.T)
		expected bool
	}{
		{
			name:     "first claim wins",
			userID:   "user-1",
			typ:      domain.NotificationInjectionReminder,
			day:      "2024-01-15",
			setup:    func(t *testing.T) {},
			expected: true,
		},
		{
			name:   "existing claim is rejected",
			userID: "user-2",
			typ:    domain.NotificationInjectionReminder,
			day:    "2024-01-15",
			setup: func(t *testing.T) {
				err := client.Set(ctx, "notify:sent:injection_reminder:user-2:2024-01-15", "x", 0).Err()
				if err != nil {
					t.Fatalf("failed to set up test data: %v", err)
				}
			},
			expected: false,
		},
		{
			name:     "other type on same day is independent",
			userID:   "user-2",
			typ:      domain.NotificationWeightReminder,
			day:      "2024-01-15",
			setup:    func(t *testing.T) {},
			expected: true,
		},
		{
			name:     "next day is independent",
			userID:   "user-2",
			typ:      domain.NotificationInjectionReminder,
			day:      "2024-01-16",
			setup:    func(t *testing.T) {},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup(t)

			ok, err := l.Claim(ctx, tt.userID, tt.typ, tt.day)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ok != tt.expected {
				t.Errorf("expected claim %v, got %v", tt.expected, ok)
			}

			ttl, err := client.TTL(ctx, sentKey(tt.userID, tt.typ, tt.day)).Result()
			if err != nil {
				t.Fatalf("failed to get TTL: %v", err)
			}
			if tt.expected && (ttl <= 0 || ttl > sentTTL) {
				t.Errorf("expected TTL up to %v, got %v", sentTTL, ttl)
			}
		})
	}
}

func TestReleaseAllowsReclaim(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	l := NewRedisLedger(client)

	ok, err := l.Claim(ctx, "user-1", domain.NotificationWeeklySummary, "2024-01-14")
	if err != nil || !ok {
		t.Fatalf("first claim = %v, %v", ok, err)
	}

	ok, err = l.Claim(ctx, "user-1", domain.NotificationWeeklySummary, "2024-01-14")
	if err != nil || ok {
		t.Fatalf("second claim = %v, %v; want false", ok, err)
	}

	if err := l.Release(ctx, "user-1", domain.NotificationWeeklySummary, "2024-01-14"); err != nil {
		t.Fatalf("unexpected release error: %v", err)
	}

	ok, err = l.Claim(ctx, "user-1", domain.NotificationWeeklySummary, "2024-01-14")
	if err != nil || !ok {
		t.Errorf("claim after release = %v, %v; want true", ok, err)
	}
}

func TestClaimConnectionError(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	l := NewRedisLedger(client)

	_, err := l.Claim(context.Background(), "user-1", domain.NotificationWeightReminder, "2024-01-15")
	if !errors.Is(err, ErrRedisConnection) {
		t.Errorf("expected ErrRedisConnection, got %v", err)
	}

	err = l.Release(context.Background(), "user-1", domain.NotificationWeightReminder, "2024-01-15")
	if !errors.Is(err, ErrRedisConnection) {
		t.Errorf("expected ErrRedisConnection, got %v", err)
	}
}
