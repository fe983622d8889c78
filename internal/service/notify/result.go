package notify

import (
	"errors"
	"fmt"

	"github.com/KasumiMercury/primind-treatment-schedule/internal/domain"
)

var ErrFetchUsers = errors.New("failed to fetch users")

type Category string

const (
	CategoryInjection     Category = "injection"
	CategoryWeight        Category = "weight"
	CategoryWeeklySummary Category = "weekly summary"
)

// CheckOutcome is the result of one category check for one user.
type CheckOutcome struct {
	Category Category
	// Type is the notification the check selected, empty when skipped early.
	Type    domain.NotificationType
	Sent    bool
	Pushed  int
	Skipped string
	Err     error
}

func (o CheckOutcome) label() string {
	switch {
	case o.Err != nil:
		return "error"
	case o.Sent || o.Pushed > 0:
		return "sent"
	case o.Skipped != "":
		return "skipped"
	default:
		return "failed"
	}
}

type Result struct {
	InjectionReminders int      `json:"injectionReminders"`
	InjectionOverdue   int      `json:"injectionOverdue"`
	WeightReminders    int      `json:"weightReminders"`
	WeeklySummaries    int      `json:"weeklySummaries"`
	PushNotifications  int      `json:"pushNotifications"`
	Errors             []string `json:"errors"`

	UsersProcessed int `json:"-"`
}

func NewResult() *Result {
	return &Result{Errors: []string{}}
}

// Add folds one outcome into the totals. Counters move only on a successful
// email; push deliveries are counted separately.
func (r *Result) Add(userID string, o CheckOutcome) {
	if o.Err != nil {
		r.Errors = append(r.Errors, fmt.Sprintf("%s check failed for user %s: %v", o.Category, userID, o.Err))
	}

	r.PushNotifications += o.Pushed

	if !o.Sent {
		return
	}
	switch o.Type {
	case domain.NotificationInjectionReminder:
		r.InjectionReminders++
	case domain.NotificationInjectionOverdue:
		r.InjectionOverdue++
	case domain.NotificationWeightReminder:
		r.WeightReminders++
	case domain.NotificationWeeklySummary:
		r.WeeklySummaries++
	}
}

func (r *Result) Sent() int {
	return r.InjectionReminders + r.InjectionOverdue + r.WeightReminders + r.WeeklySummaries
}
