package config

import (
	"errors"
	"fmt"
)

func ValidateForRun(cfg *Config) error {
	var errs []error

	if err := cfg.Database.Validate(); err != nil {
		errs = append(errs, err)
	}
	if cfg.Email != nil && cfg.Email.APIURL != "" && cfg.Email.From == "" {
		errs = append(errs, ErrEmailFromMissing)
	}
	if err := validatePlatform(cfg); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %w", errors.Join(errs...))
	}

	return nil
}
