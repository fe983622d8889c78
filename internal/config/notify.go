package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	timezoneEnv           = "APP_TIMEZONE"
	weightReminderHourEnv = "WEIGHT_REMINDER_HOUR"
	summaryWeekdayEnv     = "SUMMARY_WEEKDAY"
	weekStartEnv          = "WEEK_START"
	dedupDisabledEnv      = "NOTIFY_DEDUP_DISABLED"
	cronSecretEnv         = "CRON_SECRET"

	defaultWeightReminderHour = 12
	defaultSummaryWeekday     = time.Sunday
	defaultWeekStart          = time.Monday
)

type NotifyConfig struct {
	Location           *time.Location
	WeightReminderHour int
	SummaryWeekday     time.Weekday
	WeekStartsOn       time.Weekday
	DedupDisabled      bool
	// CronSecret guards the batch trigger. Empty leaves it open.
	CronSecret string
}

func LoadNotifyConfig() (*NotifyConfig, error) {
	loc := time.Local
	if name := os.Getenv(timezoneEnv); name != "" {
		parsed, err := time.LoadLocation(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidTimezone, name)
		}
		loc = parsed
	}

	hour := defaultWeightReminderHour
	if v := os.Getenv(weightReminderHourEnv); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 || parsed > 23 {
			return nil, fmt.Errorf("%w: %s", ErrInvalidReminderHour, v)
		}
		hour = parsed
	}

	summaryDay, err := weekdayFromEnv(summaryWeekdayEnv, defaultSummaryWeekday)
	if err != nil {
		return nil, err
	}

	weekStart, err := weekdayFromEnv(weekStartEnv, defaultWeekStart)
	if err != nil {
		return nil, err
	}

	dedupDisabled := false
	if v := os.Getenv(dedupDisabledEnv); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidDedupDisabled, v)
		}
		dedupDisabled = parsed
	}

	return &NotifyConfig{
		Location:           loc,
		WeightReminderHour: hour,
		SummaryWeekday:     summaryDay,
		WeekStartsOn:       weekStart,
		DedupDisabled:      dedupDisabled,
		CronSecret:         os.Getenv(cronSecretEnv),
	}, nil
}

// ParseWeekday accepts an English day name, its three-letter form, or 0-6
// counted from Sunday.
func ParseWeekday(s string) (time.Weekday, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 6 {
			return 0, false
		}
		return time.Weekday(n), true
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || s == name[:3] {
			return d, true
		}
	}
	return 0, false
}

func weekdayFromEnv(key string, fallback time.Weekday) (time.Weekday, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, ok := ParseWeekday(v)
	if !ok {
		return 0, fmt.Errorf("%w: %s=%s", ErrInvalidWeekday, key, v)
	}
	return d, nil
}
