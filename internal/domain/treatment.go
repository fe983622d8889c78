package domain

import (
	"strconv"
	"time"
)

// Dose is an injection dose in milligrams.
type Dose float64

// DoseLadder is the fixed titration ladder in ascending order.
var DoseLadder = []Dose{2.5, 5, 7.5, 10, 12.5, 15}

// MaxDose is the top rung of DoseLadder.
const MaxDose Dose = 15

func (d Dose) Valid() bool {
	for _, rung := range DoseLadder {
		if rung == d {
			return true
		}
	}
	return false
}

func (d Dose) Float64() float64 {
	return float64(d)
}

// String renders the dose as a label, e.g. "7.5 mg".
func (d Dose) String() string {
	return strconv.FormatFloat(float64(d), 'f', -1, 64) + " mg"
}

// Site is an injection location.
type Site string

const (
	SiteAbdomenLeft  Site = "abdomen_left"
	SiteAbdomenRight Site = "abdomen_right"
	SiteThighLeft    Site = "thigh_left"
	SiteThighRight   Site = "thigh_right"
	SiteArmLeft      Site = "arm_left"
	SiteArmRight     Site = "arm_right"
)

func (s Site) String() string {
	return string(s)
}

func (s Site) Valid() bool {
	switch s {
	case SiteAbdomenLeft, SiteAbdomenRight, SiteThighLeft, SiteThighRight, SiteArmLeft, SiteArmRight:
		return true
	}
	return false
}

type InjectionRecord struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Dose       Dose      `json:"dose_mg"`
	Site       Site      `json:"injection_site"`
	InjectedAt time.Time `json:"injection_date"`
	Notes      string    `json:"notes,omitempty"`
}

type WeightEntry struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	WeightKg   float64   `json:"weight_kg"`
	RecordedAt time.Time `json:"recorded_at"`
	Notes      string    `json:"notes,omitempty"`
}

type Profile struct {
	UserID             string    `json:"user_id"`
	StartingWeightKg   float64   `json:"starting_weight_kg"`
	GoalWeightKg       float64   `json:"goal_weight_kg"`
	TreatmentStartDate time.Time `json:"treatment_start_date"`
	// PreferredInjectionDay is nil when the user has no preference.
	PreferredInjectionDay *time.Weekday `json:"preferred_injection_day,omitempty"`
	ReminderDaysBefore    int           `json:"reminder_days_before"`
}

type User struct {
	ID          string
	Email       string
	Name        string
	Profile     *Profile
	Preferences Preferences
}

// PushSubscription is a device registered for push delivery.
type PushSubscription struct {
	UserID string
	Token  string
}
