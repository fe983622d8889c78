package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/KasumiMercury/primind-treatment-schedule/internal/calendar"
	"github.com/KasumiMercury/primind-treatment-schedule/internal/domain"
	"github.com/KasumiMercury/primind-treatment-schedule/internal/infra/email"
	"github.com/KasumiMercury/primind-treatment-schedule/internal/service/schedule"
	"github.com/KasumiMercury/primind-treatment-schedule/internal/service/timeseries"
)

const (
	skipNoProfile      = "no profile"
	skipNoInjections   = "no injections"
	skipNotDue         = "not due"
	skipDisabled       = "disabled by preference"
	skipBeforeHour     = "before reminder hour"
	skipWeightLogged   = "weight already logged today"
	skipNotSummaryDay  = "not summary day"
	skipAlreadyClaimed = "already sent today"
)

// pushPayload is set for categories that also notify devices.
type pushPayload struct {
	daysUntilDue int
	dueLabel     string
	doseLabel    string
}

func (s *Service) checkInjection(ctx context.Context, user domain.User, p plan, snap *snapshot, now time.Time) CheckOutcome {
	o := CheckOutcome{Category: CategoryInjection}

	switch {
	case user.Profile == nil:
		o.Skipped = skipNoProfile
		return o
	case !p.injection:
		o.Skipped = skipDisabled
		return o
	}
	if snap.lastInjectionErr != nil {
		o.Err = fmt.Errorf("load last injection: %w", snap.lastInjectionErr)
		return o
	}
	if snap.lastInjection == nil {
		o.Skipped = skipNoInjections
		return o
	}

	last := snap.lastInjection
	due := schedule.NextDue(last.InjectedAt.In(s.opts.Location), user.Profile.PreferredInjectionDay)
	daysUntilDue := schedule.DaysUntilDue(due, now)
	dueLabel := calendar.FormatLabel(due)
	doseLabel := last.Dose.String()

	var (
		content email.Content
		err     error
	)
	switch {
	case daysUntilDue > 0 && daysUntilDue == user.Profile.ReminderDaysBefore:
		o.Type = domain.NotificationInjectionReminder
		content, err = email.InjectionReminder(email.InjectionReminderData{
			Name:         user.Name,
			DaysUntilDue: daysUntilDue,
			DueLabel:     dueLabel,
			DoseLabel:    doseLabel,
		})
	case daysUntilDue < 0 && daysUntilDue >= -OverdueWindowDays:
		o.Type = domain.NotificationInjectionOverdue
		content, err = email.InjectionOverdue(email.InjectionOverdueData{
			Name:        user.Name,
			DaysOverdue: -daysUntilDue,
			DueLabel:    dueLabel,
			DoseLabel:   doseLabel,
		})
	default:
		o.Skipped = skipNotDue
		return o
	}

	if !user.Preferences.Enabled(o.Type) {
		o.Skipped = skipDisabled
		return o
	}
	if err != nil {
		o.Err = err
		return o
	}

	return s.dispatch(ctx, user, o, content, now, &pushPayload{
		daysUntilDue: daysUntilDue,
		dueLabel:     dueLabel,
		doseLabel:    doseLabel,
	})
}

func (s *Service) checkWeight(ctx context.Context, user domain.User, p plan, snap *snapshot, now time.Time) CheckOutcome {
	o := CheckOutcome{Category: CategoryWeight, Type: domain.NotificationWeightReminder}

	switch {
	case !s.weightDue(now):
		o.Skipped = skipBeforeHour
		return o
	case !p.weight:
		o.Skipped = skipDisabled
		return o
	case snap.lastWeightErr != nil:
		o.Err = fmt.Errorf("load last weight: %w", snap.lastWeightErr)
		return o
	}

	if snap.lastWeight != nil && calendar.IsSameDay(now, snap.lastWeight.RecordedAt) {
		o.Skipped = skipWeightLogged
		return o
	}

	content, err := email.WeightReminder(email.WeightReminderData{Name: user.Name})
	if err != nil {
		o.Err = err
		return o
	}

	return s.dispatch(ctx, user, o, content, now, nil)
}

func (s *Service) checkWeeklySummary(ctx context.Context, user domain.User, p plan, snap *snapshot, now time.Time) CheckOutcome {
	o := CheckOutcome{Category: CategoryWeeklySummary, Type: domain.NotificationWeeklySummary}

	switch {
	case !s.summaryDue(now):
		o.Skipped = skipNotSummaryDay
		return o
	case !p.summary:
		o.Skipped = skipDisabled
		return o
	}
	if err := errors.Join(snap.weekWeightsErr, snap.weekInjectionsErr); err != nil {
		o.Err = fmt.Errorf("load weekly activity: %w", err)
		return o
	}

	data := Summarize(snap.weekWeights, snap.weekInjections)
	data.Name = user.Name

	content, err := email.WeeklySummary(data)
	if err != nil {
		o.Err = err
		return o
	}

	return s.dispatch(ctx, user, o, content, now, nil)
}

// Summarize aggregates a week of activity. Weight fields stay nil when no
// weight was logged.
func Summarize(weights []domain.WeightEntry, injections []domain.InjectionRecord) email.WeeklySummaryData {
	data := email.WeeklySummaryData{
		WeightCount:    len(weights),
		InjectionCount: len(injections),
	}
	if len(weights) == 0 {
		return data
	}

	stats := timeseries.ComputeWindowStats(weights)
	data.StartWeightKg = stats.Start
	data.EndWeightKg = stats.Current
	data.ChangeKg = stats.Change

	switch {
	case *stats.Change < 0:
		data.Direction = "down"
	case *stats.Change > 0:
		data.Direction = "up"
	default:
		data.Direction = "same"
	}
	return data
}

// dispatch sends one notification on every channel that applies. The ledger
// claim is released when nothing was delivered so a later run can retry.
func (s *Service) dispatch(ctx context.Context, user domain.User, o CheckOutcome, content email.Content, now time.Time, pp *pushPayload) CheckOutcome {
	day := calendar.FormatDay(now)

	claimed, release := s.claim(ctx, user.ID, o.Type, day)
	if !claimed {
		o.Skipped = skipAlreadyClaimed
		return o
	}

	var errs []error
	delivered := false

	if s.email != nil {
		sent, err := s.sendEmail(ctx, user, o.Type, content, now)
		if err != nil {
			errs = append(errs, err)
		}
		if sent {
			o.Sent = true
			delivered = true
		}
	}

	if pp != nil && s.push != nil {
		pushResult, err := s.push.SendInjectionReminderPush(ctx, user.ID, pp.daysUntilDue, pp.dueLabel, pp.doseLabel)
		if err != nil {
			errs = append(errs, fmt.Errorf("push: %w", err))
		}
		if pushResult.Sent > 0 {
			o.Pushed = pushResult.Sent
			delivered = true
			if s.notifyMetrics != nil {
				s.notifyMetrics.RecordPush(ctx, o.Type.String(), pushResult.Sent)
			}
		}
	}

	if !delivered {
		release()
	}

	o.Err = errors.Join(errs...)
	return o
}

// sendEmail sends and audits one email. A transport error counts as a failed
// send; only a failure to write the audit row is returned.
func (s *Service) sendEmail(ctx context.Context, user domain.User, notificationType domain.NotificationType, content email.Content, now time.Time) (bool, error) {
	result, err := s.email.Send(ctx, email.Message{
		To:      user.Email,
		Subject: content.Subject,
		HTML:    content.HTML,
	})
	if err != nil {
		slog.WarnContext(ctx, "email send failed",
			slog.String("user_id", user.ID),
			slog.String("notification_type", notificationType.String()),
			slog.String("error", err.Error()),
		)
		result = &email.SendResult{Success: false, Error: err.Error()}
	}
	if result == nil {
		return false, nil
	}

	entry := domain.EmailLog{
		UserID:       user.ID,
		Type:         notificationType,
		Status:       domain.EmailStatusFailed,
		ProviderID:   result.ID,
		ErrorMessage: result.Error,
		CreatedAt:    now,
	}
	if result.Success {
		entry.Status = domain.EmailStatusSent
	}

	if s.notifyMetrics != nil {
		s.notifyMetrics.RecordEmail(ctx, notificationType.String(), string(entry.Status))
	}

	if err := s.store.AppendEmailLog(ctx, entry); err != nil {
		return result.Success, fmt.Errorf("append email log: %w", err)
	}

	return result.Success, nil
}

// claim returns true with a release func when the notification may be sent.
// Ledger failures fail open.
func (s *Service) claim(ctx context.Context, userID string, notificationType domain.NotificationType, day string) (bool, func()) {
	noop := func() {}
	if s.ledger == nil || s.opts.DedupDisabled {
		return true, noop
	}

	ok, err := s.ledger.Claim(ctx, userID, notificationType, day)
	if err != nil {
		slog.WarnContext(ctx, "sent ledger claim failed, sending anyway",
			slog.String("user_id", userID),
			slog.String("notification_type", notificationType.String()),
			slog.String("error", err.Error()),
		)
		s.recordLedger(ctx, notificationType, "error")
		return true, noop
	}
	if !ok {
		slog.DebugContext(ctx, "notification already sent today",
			slog.String("user_id", userID),
			slog.String("notification_type", notificationType.String()),
			slog.String("day", day),
		)
		s.recordLedger(ctx, notificationType, "duplicate")
		return false, noop
	}

	s.recordLedger(ctx, notificationType, "claimed")
	return true, func() {
		if err := s.ledger.Release(ctx, userID, notificationType, day); err != nil {
			slog.WarnContext(ctx, "failed to release sent ledger claim",
				slog.String("user_id", userID),
				slog.String("notification_type", notificationType.String()),
				slog.String("error", err.Error()),
			)
		}
	}
}

func (s *Service) recordLedger(ctx context.Context, notificationType domain.NotificationType, decision string) {
	if s.notifyMetrics != nil {
		s.notifyMetrics.RecordLedgerDecision(ctx, notificationType.String(), decision)
	}
}
