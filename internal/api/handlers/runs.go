package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/ramonskie/mediareaparr/internal/config"
	"github.com/ramonskie/mediareaparr/internal/services"
	"github.com/ramonskie/mediareaparr/internal/storage"
	"github.com/rs/zerolog/log"
)

// RunsHandler handles run trigger and history requests
type RunsHandler struct {
	runner *services.Runner
	store  *storage.RunStore
}

// NewRunsHandler creates a new RunsHandler
func NewRunsHandler(runner *services.Runner, store *storage.RunStore) *RunsHandler {
	return &RunsHandler{
		runner: runner,
		store:  store,
	}
}

// Trigger handles POST /api/runs/trigger. The run executes synchronously so
// clients get the full result back. A concurrent request gets 409.
func (h *RunsHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	result, err := h.runner.RunOnce(r.Context())
	if err != nil {
		if errors.Is(err, services.ErrRunInProgress) {
			respondError(w, http.StatusConflict, "A cleanup run is already in progress")
			return
		}
		// The run itself is the error report; the persisted result carries
		// the failure details.
		log.Error().Err(err).Msg("Manual cleanup run failed")
	}

	respondJSON(w, http.StatusOK, result)
}

// Latest handles GET /api/runs/latest
func (h *RunsHandler) Latest(w http.ResponseWriter, r *http.Request) {
	result := h.store.LastRun()
	if result == nil {
		respondError(w, http.StatusNotFound, "No runs recorded yet")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// List handles GET /api/runs
func (h *RunsHandler) List(w http.ResponseWriter, r *http.Request) {
	history := h.store.History()

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"runs":  history,
		"total": len(history),
	})
}

// Summary handles GET /api/runs/summary
func (h *RunsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary := services.Summarize(h.store.LastRun(), config.Snapshot(), time.Now().UTC())
	respondJSON(w, http.StatusOK, summary)
}

// Preview handles GET /api/runs/preview. It lists what the rule would delete
// right now without deleting anything.
func (h *RunsHandler) Preview(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.runner.Preview(r.Context())
	if err != nil {
		var tagErr *services.TagNotFoundError
		var cfgErr *config.ConfigError
		switch {
		case errors.As(err, &tagErr):
			respondJSON(w, http.StatusOK, map[string]interface{}{
				"candidates": []interface{}{},
				"total":      0,
				"warning":    tagErr.Error(),
			})
		case errors.As(err, &cfgErr):
			respondError(w, http.StatusBadRequest, cfgErr.Error())
		default:
			log.Error().Err(err).Msg("Candidate preview failed")
			respondError(w, http.StatusBadGateway, err.Error())
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"candidates": candidates,
		"total":      len(candidates),
	})
}
