// Package push turns injection reminders into push tasks for the user's
// registered devices.
package push

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/KasumiMercury/primind-treatment-schedule/internal/domain"
)

// Result reports how many devices the reminder was queued for.
type Result struct {
	Sent int `json:"sent"`
}

type SubscriptionStore interface {
	FindPushSubscriptions(ctx context.Context, userID string) ([]domain.PushSubscription, error)
}

type Sender struct {
	store SubscriptionStore
	queue TaskQueue
}

// NewSender returns a Sender. A nil queue leaves the channel unconfigured.
func NewSender(store SubscriptionStore, queue TaskQueue) *Sender {
	return &Sender{
		store: store,
		queue: queue,
	}
}

func (s *Sender) Configured() bool {
	return s != nil && s.queue != nil
}

func (s *Sender) SendInjectionReminderPush(ctx context.Context, userID string, daysUntilDue int, dueLabel, doseLabel string) (Result, error) {
	if !s.Configured() {
		return Result{}, nil
	}

	subs, err := s.store.FindPushSubscriptions(ctx, userID)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load push subscriptions: %w", err)
	}

	tokens := make([]string, 0, len(subs))
	for _, sub := range subs {
		if sub.Token != "" {
			tokens = append(tokens, sub.Token)
		}
	}
	if len(tokens) == 0 {
		slog.DebugContext(ctx, "no push subscriptions for user",
			slog.String("user_id", userID),
		)
		return Result{}, nil
	}

	notificationType := domain.NotificationInjectionReminder
	if daysUntilDue <= 0 {
		notificationType = domain.NotificationInjectionOverdue
	}

	task := &NotificationTask{
		UserID: userID,
		Name:   TaskName(notificationType, userID, dueLabel, daysUntilDue),
		Tokens: tokens,
		Title:  pushTitle(daysUntilDue),
		Body:   pushBody(daysUntilDue, dueLabel, doseLabel),
		Type:   string(notificationType),
	}

	resp, err := s.queue.RegisterNotification(ctx, task)
	if err != nil {
		return Result{}, err
	}
	if resp != nil && resp.Duplicate {
		slog.InfoContext(ctx, "push task already queued",
			slog.String("user_id", userID),
			slog.String("task_name", task.Name),
		)
		return Result{}, nil
	}

	return Result{Sent: len(tokens)}, nil
}

func pushTitle(daysUntilDue int) string {
	if daysUntilDue <= 0 {
		return "Injection overdue"
	}
	return "Injection reminder"
}

func pushBody(daysUntilDue int, dueLabel, doseLabel string) string {
	switch {
	case daysUntilDue > 1:
		return fmt.Sprintf("Your %s injection is due in %d days (%s).", doseLabel, daysUntilDue, dueLabel)
	case daysUntilDue == 1:
		return fmt.Sprintf("Your %s injection is due tomorrow (%s).", doseLabel, dueLabel)
	case daysUntilDue == 0:
		return fmt.Sprintf("Your %s injection is due today.", doseLabel)
	case daysUntilDue == -1:
		return fmt.Sprintf("Your %s injection was due yesterday (%s).", doseLabel, dueLabel)
	default:
		return fmt.Sprintf("Your %s injection was due %d days ago (%s).", doseLabel, -daysUntilDue, dueLabel)
	}
}

var taskNameUnsafe = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// TaskName is stable for one user, notification and due date on a given
// days-until-due, so re-enqueueing the same reminder is detected by the queue.
func TaskName(notificationType domain.NotificationType, userID, dueLabel string, daysUntilDue int) string {
	raw := fmt.Sprintf("%s-%s-%s-%d", notificationType, userID, dueLabel, daysUntilDue)
	return strings.Trim(taskNameUnsafe.ReplaceAllString(raw, "_"), "_")
}
