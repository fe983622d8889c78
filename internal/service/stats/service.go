// Package stats assembles the chart payloads served by the statistics
// endpoints. It is read-only.
package stats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/KasumiMercury/primind-treatment-schedule/internal/calendar"
	"github.com/KasumiMercury/primind-treatment-schedule/internal/domain"
	"github.com/KasumiMercury/primind-treatment-schedule/internal/service/rotation"
	"github.com/KasumiMercury/primind-treatment-schedule/internal/service/schedule"
	"github.com/KasumiMercury/primind-treatment-schedule/internal/service/timeseries"
	"github.com/KasumiMercury/primind-treatment-schedule/internal/service/titration"
)

type Query struct {
	Period    string
	StartDate string
	EndDate   string
	Now       time.Time
}

type WeightStats struct {
	Period           timeseries.Period          `json:"period"`
	StartDate        *string                    `json:"startDate"`
	EndDate          *string                    `json:"endDate"`
	Series           []timeseries.WeightPoint   `json:"series"`
	WeeklyAverages   []timeseries.WeeklyAverage `json:"weeklyAverages"`
	Stats            timeseries.WindowStats     `json:"stats"`
	StartingWeightKg *float64                   `json:"startingWeightKg"`
	GoalWeightKg     *float64                   `json:"goalWeightKg"`
}

type InjectionStats struct {
	Period          timeseries.Period           `json:"period"`
	StartDate       *string                     `json:"startDate"`
	EndDate         *string                     `json:"endDate"`
	Series          []timeseries.InjectionPoint `json:"series"`
	DoseHistory     []timeseries.DosePoint      `json:"doseHistory"`
	TotalInjections int                         `json:"totalInjections"`
	Titration       titration.Advice            `json:"titration"`
	NextDue         *string                     `json:"nextDue"`
	DaysUntilDue    *int                        `json:"daysUntilDue"`
	Status          *schedule.Status            `json:"status"`
	SuggestedSite   domain.Site                 `json:"suggestedSite"`
}

type Service struct {
	store        domain.UserStore
	loc          *time.Location
	weekStartsOn time.Weekday
}

func NewService(store domain.UserStore, loc *time.Location, weekStartsOn time.Weekday) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		store:        store,
		loc:          loc,
		weekStartsOn: weekStartsOn,
	}
}

func (s *Service) window(q Query) timeseries.Window {
	return timeseries.ResolvePeriod(q.Period, q.StartDate, q.EndDate, q.Now.In(s.loc))
}

// profile returns nil when the user has not completed onboarding.
func (s *Service) profile(ctx context.Context, userID string) (*domain.Profile, error) {
	profile, err := s.store.FindProfile(ctx, userID)
	if errors.Is(err, domain.ErrProfileNotFound) {
		return nil, nil
	}
	return profile, err
}

func (s *Service) WeightStats(ctx context.Context, userID string, q Query) (*WeightStats, error) {
	w := s.window(q)

	var (
		profile *domain.Profile
		entries []domain.WeightEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profile, err = s.profile(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		entries, err = s.store.FindWeightsBetween(gctx, userID, w.Start, w.End)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load weight history: %w", err)
	}

	entries = timeseries.FilterWeights(entries, w)

	slog.DebugContext(ctx, "computed weight stats",
		slog.String("user_id", userID),
		slog.String("period", string(w.Period)),
		slog.Int("entry_count", len(entries)),
	)

	result := &WeightStats{
		Period:         w.Period,
		StartDate:      s.dayKey(w.Start),
		EndDate:        s.dayKey(w.End),
		Series:         timeseries.WeightSeries(entries, s.loc),
		WeeklyAverages: timeseries.WeeklyAverages(entries, s.weekStartsOn, s.loc),
		Stats:          timeseries.ComputeWindowStats(entries),
	}
	if profile != nil {
		result.StartingWeightKg = &profile.StartingWeightKg
		result.GoalWeightKg = &profile.GoalWeightKg
	}
	return result, nil
}

// InjectionStats windows the series and dose history, while titration and the
// next due date always use the full history.
func (s *Service) InjectionStats(ctx context.Context, userID string, q Query) (*InjectionStats, error) {
	w := s.window(q)
	today := q.Now.In(s.loc)

	var (
		profile *domain.Profile
		history []domain.InjectionRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profile, err = s.profile(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		history, err = s.store.FindInjectionsBetween(gctx, userID, nil, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load injection history: %w", err)
	}

	windowed := timeseries.FilterInjections(history, w)

	result := &InjectionStats{
		Period:          w.Period,
		StartDate:       s.dayKey(w.Start),
		EndDate:         s.dayKey(w.End),
		Series:          timeseries.InjectionSeries(windowed, s.loc),
		DoseHistory:     timeseries.CompressDoseHistory(windowed, s.loc),
		TotalInjections: len(windowed),
		Titration:       titration.Advise(history, today),
		SuggestedSite:   rotation.SuggestedSite(""),
	}

	if last := latest(history); last != nil {
		var preferred *time.Weekday
		if profile != nil {
			preferred = profile.PreferredInjectionDay
		}
		lastAt := last.InjectedAt.In(s.loc)
		due := schedule.NextDue(lastAt, preferred)
		dueKey := calendar.FormatDay(due)
		daysUntil := schedule.DaysUntilDue(due, today)
		status := schedule.Classify(lastAt, today)

		result.NextDue = &dueKey
		result.DaysUntilDue = &daysUntil
		result.Status = &status
		result.SuggestedSite = rotation.SuggestedSite(last.Site)
	}

	slog.DebugContext(ctx, "computed injection stats",
		slog.String("user_id", userID),
		slog.String("period", string(w.Period)),
		slog.Int("injection_count", len(windowed)),
	)

	return result, nil
}

func (s *Service) dayKey(t *time.Time) *string {
	if t == nil {
		return nil
	}
	key := calendar.FormatDay(t.In(s.loc))
	return &key
}

func latest(injections []domain.InjectionRecord) *domain.InjectionRecord {
	var last *domain.InjectionRecord
	for i := range injections {
		if last == nil || injections[i].InjectedAt.After(last.InjectedAt) {
			last = &injections[i]
		}
	}
	return last
}
