package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ramonskie/mediareaparr/internal/config"
	"github.com/rs/zerolog/log"
)

// RadarrClient handles communication with the Radarr v3 API
type RadarrClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewRadarrClient creates a new Radarr client
func NewRadarrClient(cfg config.RadarrConfig) *RadarrClient {
	timeout := 30 * time.Second
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}

	return &RadarrClient{
		baseURL: cfg.URL,
		apiKey:  cfg.APIKey,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// ListTags fetches all tags from Radarr
func (c *RadarrClient) ListTags(ctx context.Context) ([]RadarrTag, error) {
	var tags []RadarrTag
	if err := c.get(ctx, "/api/v3/tag", &tags); err != nil {
		return nil, err
	}

	log.Debug().Int("count", len(tags)).Msg("Fetched tags from Radarr")
	return tags, nil
}

// ListMovies fetches all movies from Radarr
func (c *RadarrClient) ListMovies(ctx context.Context) ([]RadarrMovie, error) {
	var movies []RadarrMovie
	if err := c.get(ctx, "/api/v3/movie", &movies); err != nil {
		return nil, err
	}

	log.Debug().Int("count", len(movies)).Msg("Fetched movies from Radarr")
	return movies, nil
}

// DeleteMovie deletes a movie from Radarr and optionally removes its files
func (c *RadarrClient) DeleteMovie(ctx context.Context, id int, deleteFiles bool) error {
	url := fmt.Sprintf("%s/api/v3/movie/%d?deleteFiles=%t", c.baseURL, id, deleteFiles)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return classifyTransportError(url, err)
	}
	defer resp.Body.Close()

	if err := classifyStatus(resp.StatusCode); err != nil {
		return err
	}

	log.Info().Int("movie_id", id).Bool("delete_files", deleteFiles).Msg("Deleted movie from Radarr")
	return nil
}

// AddImportExclusion registers an import-list exclusion so Radarr does not
// re-import a deleted title.
func (c *RadarrClient) AddImportExclusion(ctx context.Context, exclusion ImportExclusion) error {
	url := fmt.Sprintf("%s/api/v3/exclusions", c.baseURL)

	body, err := json.Marshal(exclusion)
	if err != nil {
		return fmt.Errorf("encoding exclusion: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return classifyTransportError(url, err)
	}
	defer resp.Body.Close()

	if err := classifyStatus(resp.StatusCode); err != nil {
		return err
	}

	log.Info().
		Int("tmdb_id", exclusion.TmdbID).
		Str("title", exclusion.MovieTitle).
		Msg("Added import exclusion to Radarr")
	return nil
}

// TestConnection hits the system status endpoint. It performs a read only
// and is used to gate configuration changes and live runs.
func (c *RadarrClient) TestConnection(ctx context.Context) error {
	var status RadarrSystemStatus
	if err := c.get(ctx, "/api/v3/system/status", &status); err != nil {
		return err
	}

	log.Debug().Str("version", status.Version).Msg("Radarr connection test succeeded")
	return nil
}

// get issues an authenticated GET and decodes the JSON response into out.
func (c *RadarrClient) get(ctx context.Context, path string, out any) error {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return classifyTransportError(url, err)
	}
	defer resp.Body.Close()

	if err := classifyStatus(resp.StatusCode); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}
