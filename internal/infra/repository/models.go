package repository

import (
	"fmt"
	"time"

	"github.com/KasumiMercury/primind-treatment-schedule/internal/domain"
)

type UserModel struct {
	ID        string `gorm:"primaryKey;size:64"`
	Email     string `gorm:"size:255;not null"`
	Name      string `gorm:"size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (UserModel) TableName() string {
	return "users"
}

type ProfileModel struct {
	UserID             string  `gorm:"primaryKey;size:64"`
	StartingWeightKg   float64 `gorm:"not null"`
	GoalWeightKg       float64 `gorm:"not null"`
	TreatmentStartDate time.Time
	// PreferredInjectionDay is 0 (Sunday) through 6, or NULL.
	PreferredInjectionDay *int
	ReminderDaysBefore    int `gorm:"not null;default:1"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func (ProfileModel) TableName() string {
	return "profiles"
}

type InjectionModel struct {
	ID         string    `gorm:"primaryKey;size:64"`
	UserID     string    `gorm:"size:64;not null;index:idx_injections_user_time"`
	DoseMg     float64   `gorm:"not null"`
	Site       string    `gorm:"size:32;not null"`
	InjectedAt time.Time `gorm:"not null;index:idx_injections_user_time"`
	Notes      string
	CreatedAt  time.Time
}

func (InjectionModel) TableName() string {
	return "injections"
}

type WeightEntryModel struct {
	ID         string    `gorm:"primaryKey;size:64"`
	UserID     string    `gorm:"size:64;not null;index:idx_weight_entries_user_time"`
	WeightKg   float64   `gorm:"not null"`
	RecordedAt time.Time `gorm:"not null;index:idx_weight_entries_user_time"`
	Notes      string
	CreatedAt  time.Time
}

func (WeightEntryModel) TableName() string {
	return "weight_entries"
}

type NotificationPreferenceModel struct {
	UserID  string `gorm:"primaryKey;size:64"`
	Type    string `gorm:"primaryKey;size:32"`
	Enabled bool   `gorm:"not null"`
}

func (NotificationPreferenceModel) TableName() string {
	return "notification_preferences"
}

type PushSubscriptionModel struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	UserID    string `gorm:"size:64;not null;index"`
	Token     string `gorm:"size:512;not null;uniqueIndex"`
	CreatedAt time.Time
}

func (PushSubscriptionModel) TableName() string {
	return "push_subscriptions"
}

type EmailLogModel struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement"`
	UserID       string `gorm:"size:64;not null;index"`
	Type         string `gorm:"size:32;not null"`
	Status       string `gorm:"size:16;not null"`
	ProviderID   string `gorm:"size:255"`
	ErrorMessage string
	CreatedAt    time.Time
}

func (EmailLogModel) TableName() string {
	return "email_logs"
}

// Models lists every table owned by the repository, in migration order.
func Models() []any {
	return []any{
		&UserModel{},
		&ProfileModel{},
		&InjectionModel{},
		&WeightEntryModel{},
		&NotificationPreferenceModel{},
		&PushSubscriptionModel{},
		&EmailLogModel{},
	}
}

func (m ProfileModel) toDomain() domain.Profile {
	p := domain.Profile{
		UserID:             m.UserID,
		StartingWeightKg:   m.StartingWeightKg,
		GoalWeightKg:       m.GoalWeightKg,
		TreatmentStartDate: m.TreatmentStartDate,
		ReminderDaysBefore: m.ReminderDaysBefore,
	}
	if m.PreferredInjectionDay != nil && *m.PreferredInjectionDay >= 0 && *m.PreferredInjectionDay <= 6 {
		day := time.Weekday(*m.PreferredInjectionDay)
		p.PreferredInjectionDay = &day
	}
	return p
}

func (m InjectionModel) toDomain() (domain.InjectionRecord, error) {
	rec := domain.InjectionRecord{
		ID:         m.ID,
		UserID:     m.UserID,
		Dose:       domain.Dose(m.DoseMg),
		Site:       domain.Site(m.Site),
		InjectedAt: m.InjectedAt,
		Notes:      m.Notes,
	}
	if !rec.Dose.Valid() {
		return domain.InjectionRecord{}, fmt.Errorf("%w: injection %s: %w", ErrInvalidRecordData, m.ID, domain.ErrInvalidDose)
	}
	if !rec.Site.Valid() {
		return domain.InjectionRecord{}, fmt.Errorf("%w: injection %s: %w", ErrInvalidRecordData, m.ID, domain.ErrInvalidSite)
	}
	return rec, nil
}

func (m WeightEntryModel) toDomain() domain.WeightEntry {
	return domain.WeightEntry{
		ID:         m.ID,
		UserID:     m.UserID,
		WeightKg:   m.WeightKg,
		RecordedAt: m.RecordedAt,
		Notes:      m.Notes,
	}
}
