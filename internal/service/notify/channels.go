package notify

import (
	"context"

	"github.com/KasumiMercury/primind-treatment-schedule/internal/infra/email"
	"github.com/KasumiMercury/primind-treatment-schedule/internal/infra/push"
)

//go:generate mockgen -source=channels.go -destination=channels_mock.go -package=notify

// EmailSender returns a nil result when the channel is not configured.
type EmailSender interface {
	Send(ctx context.Context, msg email.Message) (*email.SendResult, error)
	Configured() bool
}

type PushSender interface {
	SendInjectionReminderPush(ctx context.Context, userID string, daysUntilDue int, dueLabel, doseLabel string) (push.Result, error)
	Configured() bool
}
