package config

import "strings"

const (
	defaultTagLabel = "autodelete30"
	defaultCron     = "15 3 * * *"

	minDaysOld = 1
	maxDaysOld = 36500

	minTimeoutSeconds = 5
	maxTimeoutSeconds = 300
)

// DefaultConfig returns a Config struct with all default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8687,
		},
		App: AppConfig{
			Theme:        "dark",
			RunOnStartup: false,
		},
		Radarr: RadarrConfig{
			TimeoutSeconds: 30,
		},
		Rule: RuleConfig{
			TagLabel:           defaultTagLabel,
			DaysOld:            30,
			DryRun:             true,
			DeleteFiles:        true,
			AddImportExclusion: false,
		},
		Schedule: ScheduleConfig{
			Cron: defaultCron,
		},
	}
}

// SetDefaults applies default values to missing config fields and coerces
// numeric and enum fields into their valid ranges.
func SetDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.Server.Host == "" {
		cfg.Server.Host = defaults.Server.Host
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaults.Server.Port
	}

	// Theme is always one of dark/light
	switch cfg.App.Theme {
	case "dark", "light":
	default:
		cfg.App.Theme = defaults.App.Theme
	}

	cfg.Radarr.URL = strings.TrimRight(cfg.Radarr.URL, "/")
	cfg.Radarr.TimeoutSeconds = clampInt(cfg.Radarr.TimeoutSeconds, minTimeoutSeconds, maxTimeoutSeconds, defaults.Radarr.TimeoutSeconds)

	if cfg.Rule.TagLabel == "" {
		cfg.Rule.TagLabel = defaults.Rule.TagLabel
	}
	cfg.Rule.DaysOld = clampInt(cfg.Rule.DaysOld, minDaysOld, maxDaysOld, defaults.Rule.DaysOld)

	if cfg.Schedule.Cron == "" {
		cfg.Schedule.Cron = defaults.Schedule.Cron
	}
}

// clampInt coerces v into [lo, hi]; the zero value means "unset" and takes
// the default.
func clampInt(v, lo, hi, def int) int {
	if v == 0 {
		return def
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
