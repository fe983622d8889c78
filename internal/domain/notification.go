package domain

import "time"

// NotificationType identifies a notification category.
type NotificationType string

const (
	NotificationInjectionReminder NotificationType = "injection_reminder"
	NotificationInjectionOverdue  NotificationType = "injection_overdue"
	NotificationWeightReminder    NotificationType = "weight_reminder"
	NotificationWeeklySummary     NotificationType = "weekly_summary"
)

func (t NotificationType) String() string {
	return string(t)
}

type NotificationPreference struct {
	UserID  string
	Type    NotificationType
	Enabled bool
}

// Preferences maps notification types to the user's explicit choice.
// A type without an entry is enabled.
type Preferences map[NotificationType]bool

func NewPreferences(rows []NotificationPreference) Preferences {
	prefs := make(Preferences, len(rows))
	for _, row := range rows {
		prefs[row.Type] = row.Enabled
	}
	return prefs
}

func (p Preferences) Enabled(t NotificationType) bool {
	enabled, ok := p[t]
	return !ok || enabled
}

type EmailStatus string

const (
	EmailStatusSent   EmailStatus = "sent"
	EmailStatusFailed EmailStatus = "failed"
)

// EmailLog is an append-only audit row for one dispatched email.
type EmailLog struct {
	UserID       string
	Type         NotificationType
	Status       EmailStatus
	ProviderID   string
	ErrorMessage string
	CreatedAt    time.Time
}
