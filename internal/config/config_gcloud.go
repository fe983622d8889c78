//go:build gcloud

package config

import (
	"errors"
	"fmt"
)

// Enabled reports whether any Cloud Tasks setting is present. Push delivery is
// off when none are.
func (c *TaskQueueConfig) Enabled() bool {
	return c.GCloudProjectID != "" || c.GCloudLocationID != "" || c.GCloudQueueID != "" || c.GCloudTargetURL != ""
}

func (c *TaskQueueConfig) Validate() error {
	if !c.Enabled() {
		return nil
	}

	var errs []error

	if c.GCloudProjectID == "" {
		errs = append(errs, errors.New("GCLOUD_PROJECT_ID is required"))
	}
	if c.GCloudLocationID == "" {
		errs = append(errs, errors.New("GCLOUD_LOCATION_ID is required"))
	}
	if c.GCloudQueueID == "" {
		errs = append(errs, errors.New("GCLOUD_QUEUE_ID is required"))
	}
	if c.GCloudTargetURL == "" {
		errs = append(errs, errors.New("GCLOUD_TARGET_URL is required"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("task queue configuration errors: %w", errors.Join(errs...))
	}

	return nil
}

// validatePlatform rejects the file-backed sqlite store, which does not
// survive instance restarts.
func validatePlatform(cfg *Config) error {
	if cfg.Database != nil && cfg.Database.Driver == DriverSQLite {
		return errors.New("DB_DRIVER=sqlite is not supported on gcloud")
	}
	return nil
}
