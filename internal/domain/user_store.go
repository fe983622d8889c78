package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=user_store.go -destination=user_store_mock.go -package=domain

// UserStore is the read side of user data plus the email audit log.
// FindLast* return (nil, nil) when the user has no records.
type UserStore interface {
	FindAllUsersWithProfileAndPreferences(ctx context.Context) ([]User, error)
	FindProfile(ctx context.Context, userID string) (*Profile, error)
	FindLastInjection(ctx context.Context, userID string) (*InjectionRecord, error)
	FindLastWeight(ctx context.Context, userID string) (*WeightEntry, error)
	FindWeightsSince(ctx context.Context, userID string, since time.Time) ([]WeightEntry, error)
	FindInjectionsSince(ctx context.Context, userID string, since time.Time) ([]InjectionRecord, error)
	FindWeightsBetween(ctx context.Context, userID string, start, end *time.Time) ([]WeightEntry, error)
	FindInjectionsBetween(ctx context.Context, userID string, start, end *time.Time) ([]InjectionRecord, error)
	FindPushSubscriptions(ctx context.Context, userID string) ([]PushSubscription, error)
	AppendEmailLog(ctx context.Context, entry EmailLog) error
}
