package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	databaseDriverEnv      = "DB_DRIVER"
	databaseDSNEnv         = "DATABASE_URL"
	databaseHostEnv        = "DB_HOST"
	databasePortEnv        = "DB_PORT"
	databaseUserEnv        = "DB_USER"
	databasePasswordEnv    = "DB_PASSWORD"
	databaseNameEnv        = "DB_NAME"
	databaseSSLModeEnv     = "DB_SSLMODE"
	databaseMaxOpenEnv     = "DB_MAX_OPEN_CONNS"
	databaseAutoMigrateEnv = "DB_AUTO_MIGRATE"

	defaultSQLitePath   = "treatment.db"
	defaultPostgresPort = "5432"
	defaultSSLMode      = "disable"
	defaultMaxOpenConns = 10
)

type DatabaseDriver string

const (
	DriverSQLite   DatabaseDriver = "sqlite"
	DriverPostgres DatabaseDriver = "postgres"
)

type DatabaseConfig struct {
	Driver DatabaseDriver
	// DSN overrides the discrete connection fields. For sqlite it is the file
	// path.
	DSN          string
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	AutoMigrate  bool
}

func LoadDatabaseConfig() (*DatabaseConfig, error) {
	driver := DatabaseDriver(os.Getenv(databaseDriverEnv))
	switch driver {
	case "":
		driver = DriverSQLite
	case "postgresql":
		driver = DriverPostgres
	case DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDatabaseDriver, driver)
	}

	port := os.Getenv(databasePortEnv)
	if port == "" {
		port = defaultPostgresPort
	}

	sslMode := os.Getenv(databaseSSLModeEnv)
	if sslMode == "" {
		sslMode = defaultSSLMode
	}

	maxOpen := defaultMaxOpenConns
	if v := os.Getenv(databaseMaxOpenEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			maxOpen = parsed
		}
	}

	autoMigrate := driver == DriverSQLite
	if v := os.Getenv(databaseAutoMigrateEnv); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			autoMigrate = parsed
		}
	}

	dsn := os.Getenv(databaseDSNEnv)
	if dsn == "" && driver == DriverSQLite {
		dsn = defaultSQLitePath
	}

	return &DatabaseConfig{
		Driver:       driver,
		DSN:          dsn,
		Host:         os.Getenv(databaseHostEnv),
		Port:         port,
		User:         os.Getenv(databaseUserEnv),
		Password:     os.Getenv(databasePasswordEnv),
		Name:         os.Getenv(databaseNameEnv),
		SSLMode:      sslMode,
		MaxOpenConns: maxOpen,
		AutoMigrate:  autoMigrate,
	}, nil
}

// ConnectionString returns the DSN handed to the gorm dialector.
func (c *DatabaseConfig) ConnectionString() string {
	if c.DSN != "" {
		return c.DSN
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode)
}

func (c *DatabaseConfig) Validate() error {
	if c == nil {
		return ErrDatabaseMissing
	}
	if c.Driver == DriverPostgres && c.DSN == "" && (c.Host == "" || c.Name == "") {
		return ErrDatabaseMissing
	}
	return nil
}
