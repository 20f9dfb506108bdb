package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/robfig/cron/v3"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Configuration validation failed:\n")
	for _, err := range v {
		sb.WriteString(fmt.Sprintf("  - %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// ConfigError is a run precondition failure: the run does not start and is
// surfaced to the user.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: %s: %s", e.Field, e.Message)
}

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Validate validates the configuration and returns all errors found
func Validate(cfg *Config) error {
	var errors ValidationErrors

	if !cfg.Admin.DisableAuth {
		if cfg.Admin.Username == "" {
			errors = append(errors, ValidationError{
				Field:   "admin.username",
				Message: "required unless admin.disable_auth=true",
			})
		}
		if cfg.Admin.Password == "" {
			errors = append(errors, ValidationError{
				Field:   "admin.password",
				Message: "required unless admin.disable_auth=true",
			})
		}
	}

	if cfg.Radarr.URL != "" {
		if _, err := url.Parse(cfg.Radarr.URL); err != nil {
			errors = append(errors, ValidationError{
				Field:   "radarr.url",
				Message: fmt.Sprintf("must be a valid URL (got: %q)", cfg.Radarr.URL),
			})
		}
	}

	if cfg.Rule.DaysOld < minDaysOld {
		errors = append(errors, ValidationError{
			Field:   "rule.days_old",
			Message: fmt.Sprintf("must be at least %d (got %d)", minDaysOld, cfg.Rule.DaysOld),
		})
	}

	if cfg.App.Theme != "dark" && cfg.App.Theme != "light" {
		errors = append(errors, ValidationError{
			Field:   "app.theme",
			Message: fmt.Sprintf("must be dark or light (got %q)", cfg.App.Theme),
		})
	}

	if _, err := cronParser.Parse(cfg.Schedule.Cron); err != nil {
		errors = append(errors, ValidationError{
			Field:   "schedule.cron",
			Message: fmt.Sprintf("invalid cron expression %q: %v", cfg.Schedule.Cron, err),
		})
	}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		errors = append(errors, ValidationError{
			Field:   "server.port",
			Message: fmt.Sprintf("must be between 1 and 65535 (got %d)", cfg.Server.Port),
		})
	}

	if len(errors) > 0 {
		return errors
	}
	return nil
}

// ValidateForRun checks the preconditions a run depends on. It is the single
// place the "must test connection before a live run" invariant is enforced.
func ValidateForRun(cfg *Config) error {
	if cfg.Radarr.URL == "" {
		return &ConfigError{Field: "radarr.url", Message: "required, e.g. http://radarr:7878"}
	}
	if cfg.Radarr.APIKey == "" {
		return &ConfigError{Field: "radarr.api_key", Message: "required"}
	}
	if !cfg.Rule.DryRun && !cfg.Radarr.Verified {
		return &ConfigError{
			Field:   "radarr.verified",
			Message: "connection has not been verified since the Radarr URL or API key changed; run a connection test before a live run",
		}
	}
	return nil
}
