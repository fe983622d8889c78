package config

import "errors"

var (
	ErrInvalidRedisDB            = errors.New("REDIS_DB must be a non-negative integer")
	ErrUnsupportedDatabaseDriver = errors.New("unsupported DB_DRIVER")
	ErrDatabaseMissing           = errors.New("DATABASE_URL or DB_HOST and DB_NAME are required for postgres")
	ErrInvalidTimezone           = errors.New("APP_TIMEZONE is not a known IANA zone")
	ErrInvalidReminderHour       = errors.New("WEIGHT_REMINDER_HOUR must be between 0 and 23")
	ErrInvalidWeekday            = errors.New("invalid weekday")
	ErrInvalidDedupDisabled      = errors.New("NOTIFY_DEDUP_DISABLED must be a boolean")
	ErrEmailFromMissing          = errors.New("EMAIL_FROM is required when email delivery is configured")
)
