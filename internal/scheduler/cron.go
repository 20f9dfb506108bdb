package scheduler

import (
	"context"
	"errors"
	"sync"

	"github.com/ramonskie/mediareaparr/internal/config"
	"github.com/ramonskie/mediareaparr/internal/services"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Scheduler fires cleanup runs on the configured cron expression. A tick that
// lands while a run is still executing is skipped, not queued.
type Scheduler struct {
	mu     sync.Mutex
	cron   *cron.Cron
	runner *services.Runner
}

func New(runner *services.Runner) *Scheduler {
	return &Scheduler{runner: runner}
}

// Start begins scheduling with the current config. Safe to call after Stop.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startLocked(config.Snapshot().Schedule.Cron)
}

// Restart swaps in the current cron expression. Called after a settings save
// changes the schedule.
func (s *Scheduler) Restart() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
	return s.startLocked(config.Snapshot().Schedule.Cron)
}

// Stop halts scheduling. Entries already running are not interrupted.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *Scheduler) startLocked(expr string) error {
	c := cron.New()
	if _, err := c.AddFunc(expr, s.tick); err != nil {
		return err
	}
	c.Start()
	s.cron = c

	log.Info().Str("cron", expr).Msg("Scheduler started")
	return nil
}

func (s *Scheduler) stopLocked() {
	if s.cron == nil {
		return
	}
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.cron = nil

	log.Info().Msg("Scheduler stopped")
}

func (s *Scheduler) tick() {
	log.Info().Msg("Scheduled cleanup run triggered")

	result, err := s.runner.RunOnce(context.Background())
	if err != nil {
		if errors.Is(err, services.ErrRunInProgress) {
			log.Warn().Msg("Skipping scheduled run, previous run still in progress")
			return
		}
		log.Error().Err(err).Msg("Scheduled cleanup run failed")
		return
	}

	log.Info().
		Str("run_id", result.ID).
		Str("status", string(result.Status)).
		Msg("Scheduled cleanup run finished")
}
