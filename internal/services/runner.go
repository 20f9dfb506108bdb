package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ramonskie/mediareaparr/internal/cache"
	"github.com/ramonskie/mediareaparr/internal/clients"
	"github.com/ramonskie/mediareaparr/internal/config"
	"github.com/ramonskie/mediareaparr/internal/models"
	"github.com/ramonskie/mediareaparr/internal/storage"
	"github.com/rs/zerolog/log"
)

// ErrRunInProgress is returned when a run is requested while another run is
// still executing.
var ErrRunInProgress = errors.New("a cleanup run is already in progress")

// ClientFactory builds a Radarr client from the current connection settings.
// Tests substitute a factory that returns a fake.
type ClientFactory func(cfg config.RadarrConfig) RadarrAPI

func defaultClientFactory(cfg config.RadarrConfig) RadarrAPI {
	return clients.NewRadarrClient(cfg)
}

// Runner owns the cleanup pipeline: snapshot settings, resolve the tag,
// select candidates, execute deletions, persist the result. At most one run
// executes at a time.
type Runner struct {
	runMu     sync.Mutex
	store     *storage.RunStore
	cache     *cache.Cache
	newClient ClientFactory
}

func NewRunner(store *storage.RunStore, c *cache.Cache) *Runner {
	if c == nil {
		c = cache.New()
	}
	return &Runner{
		store:     store,
		cache:     c,
		newClient: defaultClientFactory,
	}
}

// SetClientFactory overrides how Radarr clients are built (tests only).
func (r *Runner) SetClientFactory(factory ClientFactory) {
	r.newClient = factory
}

// RunOnce executes a single cleanup run. It returns ErrRunInProgress without
// touching any state when another run holds the lock. The returned RunResult
// is the same record persisted to the run-state store; a result with status
// failed is not an error from RunOnce's point of view unless the failure
// happened before execution started.
func (r *Runner) RunOnce(ctx context.Context) (models.RunResult, error) {
	if !r.runMu.TryLock() {
		return models.RunResult{}, ErrRunInProgress
	}
	defer r.runMu.Unlock()

	cfg := config.Snapshot()
	started := time.Now().UTC()

	result := models.RunResult{
		ID:        uuid.New().String(),
		StartedAt: started,
		Status:    models.RunStatusRunning,
		Deleted:   []models.DeletedEntry{},
		Errors:    []string{},

		TagLabel:           cfg.Rule.TagLabel,
		DaysOld:            cfg.Rule.DaysOld,
		DryRun:             cfg.Rule.DryRun,
		DeleteFiles:        cfg.Rule.DeleteFiles,
		AddImportExclusion: cfg.Rule.AddImportExclusion,
	}

	log.Info().
		Str("run_id", result.ID).
		Str("tag_label", cfg.Rule.TagLabel).
		Int("days_old", cfg.Rule.DaysOld).
		Bool("dry_run", cfg.Rule.DryRun).
		Msg("Starting cleanup run")

	if err := config.ValidateForRun(&cfg); err != nil {
		return r.finish(result, models.RunStatusFailed, err.Error()), err
	}

	// Persist the running state so the API can show an in-flight run.
	if err := r.store.SaveRun(result); err != nil {
		log.Error().Err(err).Msg("Failed to persist running state")
	}

	client := r.newClient(cfg.Radarr)

	tags, err := client.ListTags(ctx)
	if err != nil {
		return r.finish(result, models.RunStatusFailed, "listing tags: "+err.Error()), err
	}

	tagID, err := ResolveTag(tags, cfg.Rule.TagLabel)
	if err != nil {
		// Missing tag means there is nothing to clean up. The run is
		// recorded as skipped, not failed.
		log.Warn().Str("tag_label", cfg.Rule.TagLabel).Msg("Configured tag not found in Radarr, skipping run")
		return r.finish(result, models.RunStatusSkipped, err.Error()), nil
	}

	movies, err := client.ListMovies(ctx)
	if err != nil {
		return r.finish(result, models.RunStatusFailed, "listing movies: "+err.Error()), err
	}

	candidates := SelectCandidates(movies, tagID, cfg.Rule.DaysOld, started)
	result.CandidatesFound = len(candidates)

	executor := NewExecutor(client)
	entries, status := executor.Execute(ctx, candidates, ExecuteOptions{
		DryRun:             cfg.Rule.DryRun,
		DeleteFiles:        cfg.Rule.DeleteFiles,
		AddImportExclusion: cfg.Rule.AddImportExclusion,
	})

	result.Deleted = entries
	if !cfg.Rule.DryRun {
		for _, entry := range entries {
			if entry.DeletedAt != nil {
				result.DeletedCount++
			}
		}
	}
	for _, entry := range entries {
		if entry.Error != "" {
			result.Errors = append(result.Errors, entry.Error)
		}
	}

	return r.finish(result, status, ""), nil
}

// finish stamps timing, persists the final result, and invalidates caches
// whose contents a run may have changed.
func (r *Runner) finish(result models.RunResult, status models.RunStatus, errMsg string) models.RunResult {
	result.Status = status
	if errMsg != "" {
		result.Errors = append(result.Errors, errMsg)
	}
	result.FinishedAt = time.Now().UTC()
	result.DurationSeconds = int(result.FinishedAt.Sub(result.StartedAt).Seconds())

	if err := r.store.SaveRun(result); err != nil {
		log.Error().Err(err).Str("run_id", result.ID).Msg("Failed to persist run result")
	}

	r.cache.Delete(cache.KeyCandidatePreview)
	r.cache.Delete(cache.KeyRadarrTags)

	log.Info().
		Str("run_id", result.ID).
		Str("status", string(status)).
		Int("candidates", result.CandidatesFound).
		Int("deleted", result.DeletedCount).
		Int("errors", len(result.Errors)).
		Int("duration_seconds", result.DurationSeconds).
		Msg("Cleanup run finished")

	return result
}

// Preview computes the current candidate list without deleting anything.
// Results are cached briefly since the UI polls this.
func (r *Runner) Preview(ctx context.Context) ([]models.Candidate, error) {
	val, err := r.cache.GetOrSet(cache.KeyCandidatePreview, cache.PreviewTTL, func() (interface{}, error) {
		cfg := config.Snapshot()
		if cfg.Radarr.URL == "" || cfg.Radarr.APIKey == "" {
			return nil, &config.ConfigError{Field: "radarr", Message: "Radarr connection is not configured"}
		}

		client := r.newClient(cfg.Radarr)

		tags, err := client.ListTags(ctx)
		if err != nil {
			return nil, err
		}
		tagID, err := ResolveTag(tags, cfg.Rule.TagLabel)
		if err != nil {
			return nil, err
		}
		movies, err := client.ListMovies(ctx)
		if err != nil {
			return nil, err
		}

		return SelectCandidates(movies, tagID, cfg.Rule.DaysOld, time.Now().UTC()), nil
	})
	if err != nil {
		return nil, err
	}
	return val.([]models.Candidate), nil
}

// TestConnection verifies the given Radarr settings with a read-only call.
func (r *Runner) TestConnection(ctx context.Context, radarrCfg config.RadarrConfig) error {
	client := r.newClient(radarrCfg)
	return client.TestConnection(ctx)
}
