package services

import (
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/ramonskie/mediareaparr/internal/clients"
	"github.com/ramonskie/mediareaparr/internal/models"
	"github.com/rs/zerolog/log"
)

const secondsPerDay = 86400

// TagNotFoundError means the configured tag label does not exist in Radarr.
// It is a "nothing to do" condition, not a fatal run failure.
type TagNotFoundError struct {
	Label string
}

func (e *TagNotFoundError) Error() string {
	return fmt.Sprintf("tag %q not found in Radarr; create it and tag movies first", e.Label)
}

// ResolveTag resolves a tag label to its numeric identifier. The match is
// exact and case-sensitive.
func ResolveTag(tags []clients.RadarrTag, label string) (int, error) {
	for _, tag := range tags {
		if tag.Label == label {
			return tag.ID, nil
		}
	}
	return 0, &TagNotFoundError{Label: label}
}

// SelectCandidates produces the ordered list of deletion candidates from the
// full movie collection. The cutoff is computed once from now, which callers
// capture at run start so the whole run sees a consistent snapshot.
//
// A movie is a candidate iff it carries the tag, has a parseable "added"
// timestamp, and was added strictly before the cutoff. A timestamp that
// fails to parse skips that movie only; it never aborts the run.
func SelectCandidates(movies []clients.RadarrMovie, tagID int, daysOld int, now time.Time) []models.Candidate {
	now = now.UTC()
	cutoff := now.Add(-time.Duration(daysOld) * 24 * time.Hour)

	candidates := make([]models.Candidate, 0)
	for _, movie := range movies {
		if !slices.Contains(movie.Tags, tagID) {
			continue
		}
		if movie.Added == "" {
			continue
		}

		added, err := ParseAddedTime(movie.Added)
		if err != nil {
			log.Warn().
				Err(err).
				Int("movie_id", movie.ID).
				Str("title", movie.Title).
				Str("added", movie.Added).
				Msg("Skipping movie with unparseable added timestamp")
			continue
		}

		if !added.Before(cutoff) {
			continue
		}

		ageDays := int(now.Sub(added).Seconds()) / secondsPerDay
		candidates = append(candidates, models.Candidate{
			ID:      movie.ID,
			Title:   movie.Title,
			Year:    movie.Year,
			TmdbID:  movie.TmdbID,
			Added:   movie.Added,
			AddedAt: added,
			AgeDays: ageDays,
			Path:    movie.Path,
		})
	}

	// Oldest first; stable so equal ages keep collection order
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].AgeDays > candidates[j].AgeDays
	})

	log.Info().
		Int("total_movies", len(movies)).
		Int("candidates", len(candidates)).
		Int("days_old", daysOld).
		Time("cutoff", cutoff).
		Msg("Selected deletion candidates")

	return candidates
}

// ParseAddedTime parses a Radarr "added" timestamp. A trailing Z is a UTC
// offset; a timestamp with no offset at all is treated as UTC. The result is
// always in UTC.
func ParseAddedTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}

	t, err := time.Parse("2006-01-02T15:04:05", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing added timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}
