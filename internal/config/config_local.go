//go:build !gcloud

package config

func (c *TaskQueueConfig) Enabled() bool {
	return c.PrimindTasksURL != ""
}

// Validate accepts any local task queue setup. Without PRIMIND_TASKS_URL push
// delivery is disabled.
func (c *TaskQueueConfig) Validate() error {
	return nil
}

func validatePlatform(_ *Config) error {
	return nil
}
