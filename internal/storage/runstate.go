package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/ramonskie/mediareaparr/internal/models"
	"github.com/rs/zerolog/log"
)

const (
	stateFileName       = "state.json"
	stateVersion        = 1
	defaultHistoryLimit = 20
)

// runState is the on-disk shape of the run-state file.
type runState struct {
	Version int                `json:"version"`
	LastRun *models.RunResult  `json:"last_run"`
	History []models.RunResult `json:"history"`
}

// RunStore persists run results to a JSON file in the data directory. All
// access goes through the mutex; writes rewrite the whole file.
type RunStore struct {
	mu           sync.RWMutex
	path         string
	historyLimit int
	state        runState
}

// NewRunStore creates the store and loads any existing state file. A missing
// file is a fresh install, not an error.
func NewRunStore(dataDir string) (*RunStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	s := &RunStore{
		path:         filepath.Join(dataDir, stateFileName),
		historyLimit: historyLimitFromEnv(),
		state:        runState{Version: stateVersion},
	}

	if err := s.load(); err != nil {
		return nil, err
	}

	return s, nil
}

func historyLimitFromEnv() int {
	if raw := os.Getenv("STATE_HISTORY_LIMIT"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
		log.Warn().Str("value", raw).Msg("Ignoring invalid STATE_HISTORY_LIMIT")
	}
	return defaultHistoryLimit
}

func (s *RunStore) load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading run state: %w", err)
	}

	var state runState
	if err := json.Unmarshal(data, &state); err != nil {
		// A corrupt state file should not brick the appliance. Start fresh
		// and let the next run overwrite it.
		log.Error().Err(err).Str("path", s.path).Msg("Run state file is corrupt, starting with empty state")
		return nil
	}

	state.Version = stateVersion
	s.state = state

	log.Debug().
		Int("history", len(state.History)).
		Bool("has_last_run", state.LastRun != nil).
		Msg("Loaded run state")
	return nil
}

// SaveRun replaces the latest-run slot and prepends the result to history,
// trimming history to the configured limit. A run that is re-saved under the
// same ID (running -> final) replaces its history entry in place.
func (s *RunStore) SaveRun(result models.RunResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.LastRun = &result

	replaced := false
	for i := range s.state.History {
		if s.state.History[i].ID == result.ID {
			s.state.History[i] = result
			replaced = true
			break
		}
	}
	if !replaced {
		s.state.History = append([]models.RunResult{result}, s.state.History...)
	}
	if len(s.state.History) > s.historyLimit {
		s.state.History = s.state.History[:s.historyLimit]
	}

	return s.persist()
}

// LastRun returns the most recent run result, or nil if no run has happened.
func (s *RunStore) LastRun() *models.RunResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state.LastRun == nil {
		return nil
	}
	result := *s.state.LastRun
	return &result
}

// History returns past runs, newest first.
func (s *RunStore) History() []models.RunResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := make([]models.RunResult, len(s.state.History))
	copy(history, s.state.History)
	return history
}

// persist writes the state file atomically. Callers must hold the lock.
func (s *RunStore) persist() error {
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding run state: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing run state: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing run state: %w", err)
	}

	return nil
}
