// Package repository implements domain.UserStore on top of gorm.
package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/KasumiMercury/primind-treatment-schedule/internal/domain"
)

type userStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) domain.UserStore {
	return &userStore{
		db: db,
	}
}

func dbError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrDatabase, op, err)
}

// FindAllUsersWithProfileAndPreferences loads users, profiles and preference
// rows with one query each and joins them in memory.
func (s *userStore) FindAllUsersWithProfileAndPreferences(ctx context.Context) ([]domain.User, error) {
	db := s.db.WithContext(ctx)

	var userRows []UserModel
	if err := db.Order("id").Find(&userRows).Error; err != nil {
		return nil, dbError("find users", err)
	}
	if len(userRows) == 0 {
		return []domain.User{}, nil
	}

	var profileRows []ProfileModel
	if err := db.Find(&profileRows).Error; err != nil {
		return nil, dbError("find profiles", err)
	}
	profiles := make(map[string]domain.Profile, len(profileRows))
	for _, row := range profileRows {
		profiles[row.UserID] = row.toDomain()
	}

	var prefRows []NotificationPreferenceModel
	if err := db.Find(&prefRows).Error; err != nil {
		return nil, dbError("find notification preferences", err)
	}
	prefs := make(map[string][]domain.NotificationPreference)
	for _, row := range prefRows {
		prefs[row.UserID] = append(prefs[row.UserID], domain.NotificationPreference{
			UserID:  row.UserID,
			Type:    domain.NotificationType(row.Type),
			Enabled: row.Enabled,
		})
	}

	users := make([]domain.User, 0, len(userRows))
	for _, row := range userRows {
		user := domain.User{
			ID:          row.ID,
			Email:       row.Email,
			Name:        row.Name,
			Preferences: domain.NewPreferences(prefs[row.ID]),
		}
		if p, ok := profiles[row.ID]; ok {
			user.Profile = &p
		}
		users = append(users, user)
	}

	return users, nil
}

func (s *userStore) FindProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	var row ProfileModel
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, dbError("find profile", err)
	}

	p := row.toDomain()
	return &p, nil
}

func (s *userStore) FindLastInjection(ctx context.Context, userID string) (*domain.InjectionRecord, error) {
	var rows []InjectionModel
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("injected_at DESC").
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, dbError("find last injection", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	rec, err := rows[0].toDomain()
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *userStore) FindLastWeight(ctx context.Context, userID string) (*domain.WeightEntry, error) {
	var rows []WeightEntryModel
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("recorded_at DESC").
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, dbError("find last weight", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	entry := rows[0].toDomain()
	return &entry, nil
}

func (s *userStore) FindWeightsSince(ctx context.Context, userID string, since time.Time) ([]domain.WeightEntry, error) {
	return s.FindWeightsBetween(ctx, userID, &since, nil)
}

func (s *userStore) FindInjectionsSince(ctx context.Context, userID string, since time.Time) ([]domain.InjectionRecord, error) {
	return s.FindInjectionsBetween(ctx, userID, &since, nil)
}

// FindWeightsBetween returns entries in ascending order. A nil bound is open.
func (s *userStore) FindWeightsBetween(ctx context.Context, userID string, start, end *time.Time) ([]domain.WeightEntry, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if start != nil {
		q = q.Where("recorded_at >= ?", *start)
	}
	if end != nil {
		q = q.Where("recorded_at <= ?", *end)
	}

	var rows []WeightEntryModel
	if err := q.Order("recorded_at ASC").Find(&rows).Error; err != nil {
		return nil, dbError("find weights", err)
	}

	entries := make([]domain.WeightEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, row.toDomain())
	}
	return entries, nil
}

// FindInjectionsBetween returns records in ascending order. A nil bound is
// open. Rows with a dose or site outside the known sets are skipped.
func (s *userStore) FindInjectionsBetween(ctx context.Context, userID string, start, end *time.Time) ([]domain.InjectionRecord, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if start != nil {
		q = q.Where("injected_at >= ?", *start)
	}
	if end != nil {
		q = q.Where("injected_at <= ?", *end)
	}

	var rows []InjectionModel
	if err := q.Order("injected_at ASC").Find(&rows).Error; err != nil {
		return nil, dbError("find injections", err)
	}

	records := make([]domain.InjectionRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := row.toDomain()
		if err != nil {
			slog.WarnContext(ctx, "skipping invalid injection record",
				slog.String("user_id", userID),
				slog.String("injection_id", row.ID),
				slog.String("error", err.Error()),
			)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *userStore) FindPushSubscriptions(ctx context.Context, userID string) ([]domain.PushSubscription, error) {
	var rows []PushSubscriptionModel
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&rows).Error; err != nil {
		return nil, dbError("find push subscriptions", err)
	}

	subs := make([]domain.PushSubscription, 0, len(rows))
	for _, row := range rows {
		subs = append(subs, domain.PushSubscription{
			UserID: row.UserID,
			Token:  row.Token,
		})
	}
	return subs, nil
}

func (s *userStore) AppendEmailLog(ctx context.Context, entry domain.EmailLog) error {
	row := EmailLogModel{
		UserID:       entry.UserID,
		Type:         entry.Type.String(),
		Status:       string(entry.Status),
		ProviderID:   entry.ProviderID,
		ErrorMessage: entry.ErrorMessage,
		CreatedAt:    entry.CreatedAt,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return dbError("append email log", err)
	}
	return nil
}
