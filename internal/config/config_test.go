package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoadNotifyConfigDefaults(t *testing.T) {
	for _, key := range []string{timezoneEnv, weightReminderHourEnv, summaryWeekdayEnv, weekStartEnv, dedupDisabledEnv, cronSecretEnv} {
		t.Setenv(key, "")
	}

	cfg, err := LoadNotifyConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.WeightReminderHour != 12 {
		t.Errorf("expected reminder hour 12, got %d", cfg.WeightReminderHour)
	}
	if cfg.SummaryWeekday != time.Sunday {
		t.Errorf("expected summary on Sunday, got %v", cfg.SummaryWeekday)
	}
	if cfg.WeekStartsOn != time.Monday {
		t.Errorf("expected week start Monday, got %v", cfg.WeekStartsOn)
	}
	if cfg.DedupDisabled {
		t.Error("expected dedup enabled by default")
	}
	if cfg.Location != time.Local {
		t.Errorf("expected local time zone, got %v", cfg.Location)
	}
}

func TestLoadNotifyConfigOverrides(t *testing.T) {
	t.Setenv(timezoneEnv, "UTC")
	t.Setenv(weightReminderHourEnv, "9")
	t.Setenv(summaryWeekdayEnv, "sat")
	t.Setenv(weekStartEnv, "0")
	t.Setenv(dedupDisabledEnv, "true")
	t.Setenv(cronSecretEnv, "s3cret")

	cfg, err := LoadNotifyConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Location.String() != "UTC" {
		t.Errorf("expected UTC, got %v", cfg.Location)
	}
	if cfg.WeightReminderHour != 9 || cfg.SummaryWeekday != time.Saturday || cfg.WeekStartsOn != time.Sunday {
		t.Errorf("unexpected config %+v", cfg)
	}
	if !cfg.DedupDisabled || cfg.CronSecret != "s3cret" {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestLoadNotifyConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr error
	}{
		{name: "unknown zone", key: timezoneEnv, value: "Mars/Olympus", wantErr: ErrInvalidTimezone},
		{name: "hour out of range", key: weightReminderHourEnv, value: "24", wantErr: ErrInvalidReminderHour},
		{name: "hour not a number", key: weightReminderHourEnv, value: "noon", wantErr: ErrInvalidReminderHour},
		{name: "bad weekday", key: summaryWeekdayEnv, value: "someday", wantErr: ErrInvalidWeekday},
		{name: "dedup flag not a bool", key: dedupDisabledEnv, value: "sometimes", wantErr: ErrInvalidDedupDisabled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := LoadNotifyConfig()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		input  string
		want   time.Weekday
		wantOK bool
	}{
		{input: "Monday", want: time.Monday, wantOK: true},
		{input: "wed", want: time.Wednesday, wantOK: true},
		{input: " SUNDAY ", want: time.Sunday, wantOK: true},
		{input: "6", want: time.Saturday, wantOK: true},
		{input: "7", wantOK: false},
		{input: "", wantOK: false},
	}

	for _, tt := range tests {
		got, ok := ParseWeekday(tt.input)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("ParseWeekday(%q) = %v, %v; want %v, %v", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestLoadRedisConfig(t *testing.T) {
	t.Setenv(redisAddrEnv, "")
	t.Setenv(redisDBEnv, "")

	cfg, err := LoadRedisConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Enabled() {
		t.Error("expected ledger store disabled without REDIS_ADDR")
	}

	t.Setenv(redisAddrEnv, "localhost:6379")
	t.Setenv(redisDBEnv, "2")
	cfg, err = LoadRedisConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Enabled() || cfg.DB != 2 {
		t.Errorf("unexpected config %+v", cfg)
	}

	t.Setenv(redisDBEnv, "x")
	if _, err := LoadRedisConfig(); !errors.Is(err, ErrInvalidRedisDB) {
		t.Errorf("expected ErrInvalidRedisDB, got %v", err)
	}
}

func TestLoadDatabaseConfig(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		wantDriver  DatabaseDriver
		wantDSN     string
		wantMigrate bool
		wantErr     error
	}{
		{
			name:        "defaults to sqlite file",
			env:         map[string]string{},
			wantDriver:  DriverSQLite,
			wantDSN:     defaultSQLitePath,
			wantMigrate: true,
		},
		{
			name: "postgres from discrete fields",
			env: map[string]string{
				databaseDriverEnv: "postgresql",
				databaseHostEnv:   "db",
				databaseUserEnv:   "app",
				databaseNameEnv:   "treatment",
			},
			wantDriver: DriverPostgres,
			wantDSN:    "host=db user=app password= dbname=treatment port=5432 sslmode=disable TimeZone=UTC",
		},
		{
			name: "postgres dsn wins",
			env: map[string]string{
				databaseDriverEnv:      "postgres",
				databaseDSNEnv:         "postgres://app@db/treatment",
				databaseAutoMigrateEnv: "true",
			},
			wantDriver:  DriverPostgres,
			wantDSN:     "postgres://app@db/treatment",
			wantMigrate: true,
		},
		{
			name:    "unsupported driver",
			env:     map[string]string{databaseDriverEnv: "oracle"},
			wantErr: ErrUnsupportedDatabaseDriver,
		},
	}

	keys := []string{databaseDriverEnv, databaseDSNEnv, databaseHostEnv, databasePortEnv, databaseUserEnv,
		databasePasswordEnv, databaseNameEnv, databaseSSLModeEnv, databaseMaxOpenEnv, databaseAutoMigrateEnv}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range keys {
				t.Setenv(key, tt.env[key])
			}

			cfg, err := LoadDatabaseConfig()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.Driver != tt.wantDriver {
				t.Errorf("expected driver %s, got %s", tt.wantDriver, cfg.Driver)
			}
			if got := cfg.ConnectionString(); got != tt.wantDSN {
				t.Errorf("expected dsn %q, got %q", tt.wantDSN, got)
			}
			if cfg.AutoMigrate != tt.wantMigrate {
				t.Errorf("expected auto migrate %v, got %v", tt.wantMigrate, cfg.AutoMigrate)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestDatabaseConfigValidate(t *testing.T) {
	cfg := &DatabaseConfig{Driver: DriverPostgres}
	if err := cfg.Validate(); !errors.Is(err, ErrDatabaseMissing) {
		t.Errorf("expected ErrDatabaseMissing, got %v", err)
	}
}
