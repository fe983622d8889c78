// Package notify runs the scheduled notification batch: it evaluates every
// user's injection, weight and weekly-summary rules and dispatches email and
// push notifications, isolating failures per user and category.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/KasumiMercury/primind-treatment-schedule/internal/calendar"
	"github.com/KasumiMercury/primind-treatment-schedule/internal/domain"
	"github.com/KasumiMercury/primind-treatment-schedule/internal/observability/logging"
	"github.com/KasumiMercury/primind-treatment-schedule/internal/observability/metrics"
	"github.com/KasumiMercury/primind-treatment-schedule/internal/observability/tracing"
)

const (
	// OverdueWindowDays is how many days past due the overdue notice repeats.
	OverdueWindowDays   = 3
	summaryLookbackDays = 7
)

type Options struct {
	Location           *time.Location
	WeightReminderHour int
	SummaryWeekday     time.Weekday
	DedupDisabled      bool
}

type Service struct {
	store         domain.UserStore
	email         EmailSender
	push          PushSender
	ledger        domain.SentLedger
	notifyMetrics *metrics.NotifyMetrics
	opts          Options
}

// NewService wires the runner. ledger and notifyMetrics may be nil.
func NewService(
	store domain.UserStore,
	emailSender EmailSender,
	pushSender PushSender,
	ledger domain.SentLedger,
	notifyMetrics *metrics.NotifyMetrics,
	opts Options,
) *Service {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &Service{
		store:         store,
		email:         emailSender,
		push:          pushSender,
		ledger:        ledger,
		notifyMetrics: notifyMetrics,
		opts:          opts,
	}
}

func (s *Service) EmailConfigured() bool {
	return s.email != nil && s.email.Configured()
}

func (s *Service) PushConfigured() bool {
	return s.push != nil && s.push.Configured()
}

// Run evaluates every user once as of now. Only a failure to load the user
// list is returned as an error; everything else lands in Result.Errors.
func (s *Service) Run(ctx context.Context, now time.Time) (*Result, error) {
	started := time.Now()
	now = now.In(s.opts.Location)

	ctx, span := tracing.StartRunSpan(ctx, logging.RunIDFromContext(ctx), now)
	defer span.End()

	users, err := s.store.FindAllUsersWithProfileAndPreferences(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to fetch users",
			slog.String("error", err.Error()),
		)
		err = fmt.Errorf("%w: %w", ErrFetchUsers, err)
		tracing.RecordRunResult(span, 0, 0, 0, err)
		if s.notifyMetrics != nil {
			s.notifyMetrics.RecordRun(ctx, "error", time.Since(started))
		}
		return nil, err
	}

	slog.InfoContext(ctx, "notification run started",
		slog.Int("user_count", len(users)),
		slog.String("now", now.Format(time.RFC3339)),
		slog.String("weekday", now.Weekday().String()),
	)

	result := NewResult()
	for _, user := range users {
		s.processUser(ctx, user, now, result)
		result.UsersProcessed++
	}

	if s.notifyMetrics != nil {
		s.notifyMetrics.RecordUsersProcessed(ctx, result.UsersProcessed)
		s.notifyMetrics.RecordRun(ctx, "success", time.Since(started))
	}
	tracing.RecordRunResult(span, result.UsersProcessed, result.Sent(), len(result.Errors), nil)

	slog.InfoContext(ctx, "notification run completed",
		slog.Int("user_count", result.UsersProcessed),
		slog.Int("injection_reminders", result.InjectionReminders),
		slog.Int("injection_overdue", result.InjectionOverdue),
		slog.Int("weight_reminders", result.WeightReminders),
		slog.Int("weekly_summaries", result.WeeklySummaries),
		slog.Int("push_notifications", result.PushNotifications),
		slog.Int("error_count", len(result.Errors)),
		slog.Duration("duration", time.Since(started)),
	)

	return result, nil
}

// plan decides which categories apply to a user before anything is read.
type plan struct {
	injection bool
	weight    bool
	summary   bool
}

func (s *Service) planFor(user domain.User, now time.Time) plan {
	prefs := user.Preferences
	return plan{
		injection: user.Profile != nil &&
			(prefs.Enabled(domain.NotificationInjectionReminder) || prefs.Enabled(domain.NotificationInjectionOverdue)),
		weight:  s.weightDue(now) && prefs.Enabled(domain.NotificationWeightReminder),
		summary: s.summaryDue(now) && prefs.Enabled(domain.NotificationWeeklySummary),
	}
}

func (s *Service) weightDue(now time.Time) bool {
	return now.Hour() >= s.opts.WeightReminderHour
}

func (s *Service) summaryDue(now time.Time) bool {
	return now.Weekday() == s.opts.SummaryWeekday
}

// snapshot holds one user's reads. Each read keeps its own error so a failed
// read only fails the category that needs it.
type snapshot struct {
	lastInjection    *domain.InjectionRecord
	lastInjectionErr error

	lastWeight    *domain.WeightEntry
	lastWeightErr error

	weekWeights    []domain.WeightEntry
	weekWeightsErr error

	weekInjections    []domain.InjectionRecord
	weekInjectionsErr error
}

func (s *Service) load(ctx context.Context, userID string, p plan, now time.Time) *snapshot {
	snap := &snapshot{}

	var g errgroup.Group
	if p.injection {
		g.Go(func() error {
			snap.lastInjection, snap.lastInjectionErr = s.store.FindLastInjection(ctx, userID)
			return nil
		})
	}
	if p.weight {
		g.Go(func() error {
			snap.lastWeight, snap.lastWeightErr = s.store.FindLastWeight(ctx, userID)
			return nil
		})
	}
	if p.summary {
		since := calendar.StartOfDay(calendar.AddDays(now, -summaryLookbackDays))
		g.Go(func() error {
			snap.weekWeights, snap.weekWeightsErr = s.store.FindWeightsSince(ctx, userID, since)
			return nil
		})
		g.Go(func() error {
			snap.weekInjections, snap.weekInjectionsErr = s.store.FindInjectionsSince(ctx, userID, since)
			return nil
		})
	}
	_ = g.Wait()

	return snap
}

func (s *Service) processUser(ctx context.Context, user domain.User, now time.Time, result *Result) {
	ctx, span := tracing.StartUserSpan(ctx, user.ID)
	defer span.End()

	p := s.planFor(user, now)
	snap := s.load(ctx, user.ID, p, now)

	outcomes := []CheckOutcome{
		s.checkInjection(ctx, user, p, snap, now),
		s.checkWeight(ctx, user, p, snap, now),
		s.checkWeeklySummary(ctx, user, p, snap, now),
	}

	for _, o := range outcomes {
		if o.Err != nil {
			slog.WarnContext(ctx, "notification check failed",
				slog.String("user_id", user.ID),
				slog.String("category", string(o.Category)),
				slog.String("error", o.Err.Error()),
			)
		}
		if s.notifyMetrics != nil {
			s.notifyMetrics.RecordCheckOutcome(ctx, string(o.Category), o.label())
		}
		result.Add(user.ID, o)
	}
}
