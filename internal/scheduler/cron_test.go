package scheduler

import (
	"testing"

	"github.com/ramonskie/mediareaparr/internal/config"
	"github.com/ramonskie/mediareaparr/internal/services"
	"github.com/ramonskie/mediareaparr/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScheduler(t *testing.T) *Scheduler {
	t.Helper()

	store, err := storage.NewRunStore(t.TempDir())
	require.NoError(t, err)

	return New(services.NewRunner(store, nil))
}

func TestSchedulerLifecycle(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Admin.DisableAuth = true
	config.SetTestConfig(cfg)

	s := newTestScheduler(t)

	require.NoError(t, s.Start())
	require.NoError(t, s.Restart())

	s.Stop()
	// Stop is idempotent
	s.Stop()
}

func TestSchedulerRejectsInvalidCron(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Admin.DisableAuth = true
	cfg.Schedule.Cron = "not a cron"
	config.SetTestConfig(cfg)

	s := newTestScheduler(t)

	assert.Error(t, s.Start())
}
