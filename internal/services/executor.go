package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ramonskie/mediareaparr/internal/clients"
	"github.com/ramonskie/mediareaparr/internal/models"
	"github.com/rs/zerolog/log"
)

// RadarrAPI is the slice of the Radarr client the services layer depends on.
type RadarrAPI interface {
	ListTags(ctx context.Context) ([]clients.RadarrTag, error)
	ListMovies(ctx context.Context) ([]clients.RadarrMovie, error)
	DeleteMovie(ctx context.Context, id int, deleteFiles bool) error
	AddImportExclusion(ctx context.Context, exclusion clients.ImportExclusion) error
	TestConnection(ctx context.Context) error
}

// ExecuteOptions controls how candidates are acted on.
type ExecuteOptions struct {
	DryRun             bool
	DeleteFiles        bool
	AddImportExclusion bool
}

// Executor deletes candidates one by one. A failure on one movie is recorded
// on that movie's entry and the loop continues.
type Executor struct {
	radarr RadarrAPI
}

func NewExecutor(radarr RadarrAPI) *Executor {
	return &Executor{radarr: radarr}
}

// Execute processes the candidate list in order and returns one entry per
// candidate plus the aggregate status. In dry-run mode no Radarr mutation is
// issued; every entry is stamped with the time the pass finished.
func (e *Executor) Execute(ctx context.Context, candidates []models.Candidate, opts ExecuteOptions) ([]models.DeletedEntry, models.RunStatus) {
	entries := make([]models.DeletedEntry, 0, len(candidates))

	for _, c := range candidates {
		entry := models.DeletedEntry{
			ID:      c.ID,
			Title:   c.Title,
			Year:    c.Year,
			Added:   c.Added,
			AgeDays: c.AgeDays,
			Path:    c.Path,
			DryRun:  opts.DryRun,
		}

		if opts.DryRun {
			log.Info().
				Str("title", c.Title).
				Int("age_days", c.AgeDays).
				Msg("Dry run, would delete movie")
			entries = append(entries, entry)
			continue
		}

		if err := e.radarr.DeleteMovie(ctx, c.ID, opts.DeleteFiles); err != nil {
			entry.Error = fmt.Sprintf("deleting movie %d (%s): %v", c.ID, c.Title, err)
			log.Error().Err(err).Int("movie_id", c.ID).Str("title", c.Title).Msg("Failed to delete movie")
		} else {
			now := time.Now().UTC()
			entry.DeletedAt = &now
		}

		// Exclusion is a separate call; its failure never undoes the delete
		// and a failed delete does not stop the exclusion.
		if opts.AddImportExclusion {
			exclusion := clients.ImportExclusion{
				TmdbID:     c.TmdbID,
				MovieTitle: c.Title,
				MovieYear:  c.Year,
			}
			if err := e.radarr.AddImportExclusion(ctx, exclusion); err != nil {
				msg := fmt.Sprintf("adding import exclusion for %s: %v", c.Title, err)
				if entry.Error != "" {
					entry.Error += "; " + msg
				} else {
					entry.Error = msg
				}
				log.Error().Err(err).Str("title", c.Title).Msg("Failed to add import exclusion")
			}
		}

		entries = append(entries, entry)
	}

	if opts.DryRun {
		finished := time.Now().UTC()
		for i := range entries {
			entries[i].DeletedAt = &finished
		}
	}

	return entries, aggregateStatus(entries)
}

// aggregateStatus folds per-entry outcomes into a run status. Only when every
// delete failed is the run itself considered failed.
func aggregateStatus(entries []models.DeletedEntry) models.RunStatus {
	errored := 0
	deleted := 0
	for _, entry := range entries {
		if entry.Error != "" {
			errored++
		}
		if entry.DeletedAt != nil {
			deleted++
		}
	}

	switch {
	case errored == 0:
		return models.RunStatusOK
	case deleted == 0:
		return models.RunStatusFailed
	default:
		return models.RunStatusOKWithErrors
	}
}
