package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("loads a full config file", func(t *testing.T) {
		path := writeTestConfig(t, `
admin:
  username: admin
  password: secret
server:
  host: 127.0.0.1
  port: 9000
app:
  theme: light
radarr:
  url: http://radarr:7878/
  api_key: abc123
  timeout_seconds: 60
rule:
  tag_label: purge-me
  days_old: 90
  dry_run: false
  delete_files: true
  add_import_exclusion: true
schedule:
  cron: "0 4 * * *"
`)

		cfg, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "admin", cfg.Admin.Username)
		assert.Equal(t, 9000, cfg.Server.Port)
		assert.Equal(t, "light", cfg.App.Theme)
		// Trailing slash is stripped
		assert.Equal(t, "http://radarr:7878", cfg.Radarr.URL)
		assert.Equal(t, 60, cfg.Radarr.TimeoutSeconds)
		assert.False(t, cfg.Radarr.Verified, "verified defaults to false")
		assert.Equal(t, "purge-me", cfg.Rule.TagLabel)
		assert.Equal(t, 90, cfg.Rule.DaysOld)
		assert.False(t, cfg.Rule.DryRun)
		assert.True(t, cfg.Rule.AddImportExclusion)
		assert.Equal(t, "0 4 * * *", cfg.Schedule.Cron)
	})

	t.Run("missing file falls back to defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "does-not-exist.yaml")

		cfg, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, 8687, cfg.Server.Port)
		assert.Equal(t, "autodelete30", cfg.Rule.TagLabel)
		assert.Equal(t, 30, cfg.Rule.DaysOld)
		assert.True(t, cfg.Rule.DryRun, "dry run is the safe default")
		assert.Equal(t, "15 3 * * *", cfg.Schedule.Cron)
		assert.Equal(t, "dark", cfg.App.Theme)
	})

	t.Run("partial file keeps defaults for the rest", func(t *testing.T) {
		path := writeTestConfig(t, `
admin:
  username: admin
  password: secret
rule:
  days_old: 14
`)

		cfg, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, 14, cfg.Rule.DaysOld)
		assert.Equal(t, "autodelete30", cfg.Rule.TagLabel)
		assert.True(t, cfg.Rule.DryRun)
		assert.Equal(t, 8687, cfg.Server.Port)
	})

	t.Run("invalid yaml is an error", func(t *testing.T) {
		path := writeTestConfig(t, "rule: [broken")

		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("validation failure is an error", func(t *testing.T) {
		path := writeTestConfig(t, `
admin:
  username: admin
  password: secret
schedule:
  cron: "not a cron"
`)

		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("missing credentials rejected unless auth disabled", func(t *testing.T) {
		path := writeTestConfig(t, `
admin:
  disable_auth: true
`)

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.True(t, cfg.Admin.DisableAuth)
	})
}

func TestSetDefaults(t *testing.T) {
	t.Run("clamps out-of-range values", func(t *testing.T) {
		cfg := &Config{}
		cfg.Rule.DaysOld = -5
		cfg.Radarr.TimeoutSeconds = 100000

		SetDefaults(cfg)

		assert.Equal(t, minDaysOld, cfg.Rule.DaysOld)
		assert.Equal(t, maxTimeoutSeconds, cfg.Radarr.TimeoutSeconds)
	})

	t.Run("zero means default", func(t *testing.T) {
		cfg := &Config{}

		SetDefaults(cfg)

		assert.Equal(t, 30, cfg.Rule.DaysOld)
		assert.Equal(t, 30, cfg.Radarr.TimeoutSeconds)
	})

	t.Run("unknown theme coerced to dark", func(t *testing.T) {
		cfg := &Config{}
		cfg.App.Theme = "solarized"

		SetDefaults(cfg)

		assert.Equal(t, "dark", cfg.App.Theme)
	})
}

func TestSnapshot(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Admin.DisableAuth = true
	cfg.Rule.DaysOld = 45
	SetTestConfig(cfg)

	snap := Snapshot()
	snap.Rule.DaysOld = 99

	// Mutating the snapshot must not touch the live config
	assert.Equal(t, 45, Get().Rule.DaysOld)
}
