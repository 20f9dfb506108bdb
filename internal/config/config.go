package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

var (
	globalMu     sync.RWMutex
	globalConfig *Config
	configPath   string
)

// Load loads configuration from file and environment variables
func Load(path string) (*Config, error) {
	v := viper.New()

	if path == "" {
		path = getDefaultConfigPath()
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Environment variable support
	v.SetEnvPrefix("MEDIAREAPARR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if notFound || os.IsNotExist(err) {
			log.Warn().Str("path", path).Msg("Config file not found, using defaults and environment variables")
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Start with defaults, then overlay file and environment values
	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	SetDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	globalMu.Lock()
	globalConfig = cfg
	configPath = path
	globalMu.Unlock()

	return cfg, nil
}

// Get returns the global config instance
func Get() *Config {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalConfig
}

// Snapshot returns a copy of the current config. Runs take a snapshot once
// at start and use it throughout so a settings save mid-run cannot change
// the rule being executed.
func Snapshot() Config {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if globalConfig == nil {
		return *DefaultConfig()
	}
	return *globalConfig
}

// SetTestConfig sets a test config (for testing only - bypasses validation)
func SetTestConfig(cfg *Config) {
	globalMu.Lock()
	globalConfig = cfg
	globalMu.Unlock()
}

// GetPath returns the current config file path
func GetPath() string {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return configPath
}

// Reload reloads the configuration from disk
func Reload() error {
	log.Info().Msg("Reloading configuration from disk")
	cfg, err := Load(GetPath())
	if err != nil {
		return err
	}
	log.Info().
		Str("tag_label", cfg.Rule.TagLabel).
		Int("days_old", cfg.Rule.DaysOld).
		Bool("dry_run", cfg.Rule.DryRun).
		Str("cron", cfg.Schedule.Cron).
		Msg("Configuration reloaded successfully")
	return nil
}

// getDefaultConfigPath returns the default config file path
func getDefaultConfigPath() string {
	if path := os.Getenv("MEDIAREAPARR_CONFIG_PATH"); path != "" {
		return path
	}

	paths := []string{
		"./config/config.yaml",
		"/config/config.yaml",
		"./config.yaml",
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return paths[0]
}
