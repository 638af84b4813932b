package config

import (
	"fmt"
	"strings"
	"time"
)

// ValidationError collects multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// validateFile checks the raw file values that need parsing. Only structure
// is checked: the pyobs configs themselves are never opened.
func validateFile(fc *fileConfig) error {
	var errs []string

	if fc.KillTimeout != "" {
		d, err := time.ParseDuration(fc.KillTimeout)
		switch {
		case err != nil:
			errs = append(errs, fmt.Sprintf("kill_timeout %q is not a valid duration", fc.KillTimeout))
		case d <= 0:
			errs = append(errs, "kill_timeout must be positive")
		}
	}

	for i, p := range fc.Configs {
		if strings.TrimSpace(p) == "" {
			errs = append(errs, fmt.Sprintf("configs[%d] is empty", i))
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

func validate(cfg *Config) error {
	var errs []string

	if strings.TrimSpace(cfg.Pyobs) == "" {
		errs = append(errs, "pyobs must not be empty")
	}
	if cfg.KillTimeout <= 0 {
		errs = append(errs, "kill_timeout must be positive")
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
