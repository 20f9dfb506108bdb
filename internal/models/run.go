package models

import (
	"time"
)

// RunStatus represents the outcome of a cleanup run
type RunStatus string

const (
	RunStatusRunning      RunStatus = "running"
	RunStatusOK           RunStatus = "ok"
	RunStatusOKWithErrors RunStatus = "ok_with_errors"
	RunStatusFailed       RunStatus = "failed"
	RunStatusSkipped      RunStatus = "skipped"
)

// Candidate represents a movie eligible for deletion under the current
// tag+age rule. Candidates are computed fresh each run and never persisted
// individually.
type Candidate struct {
	ID      int       `json:"id"`
	Title   string    `json:"title"`
	Year    int       `json:"year"`
	TmdbID  int       `json:"tmdb_id"`
	Added   string    `json:"added"`
	AddedAt time.Time `json:"added_at"`
	AgeDays int       `json:"age_days"`
	Path    string    `json:"path"`
}

// DeletedEntry records the per-candidate outcome of a run. DeletedAt is nil
// when the deletion failed; Error is empty when it succeeded.
type DeletedEntry struct {
	ID        int        `json:"id"`
	Title     string     `json:"title"`
	Year      int        `json:"year"`
	Added     string     `json:"added"`
	AgeDays   int        `json:"age_days"`
	Path      string     `json:"path"`
	DeletedAt *time.Time `json:"deleted_at"`
	Error     string     `json:"error,omitempty"`
	DryRun    bool       `json:"dry_run"`
}

// RunResult is the persisted record of one cleanup run. It is written to the
// run-state store at the end of each run, fully replacing the previous
// latest-run slot.
type RunResult struct {
	ID              string         `json:"id"`
	StartedAt       time.Time      `json:"started_at"`
	FinishedAt      time.Time      `json:"finished_at"`
	DurationSeconds int            `json:"duration_seconds"`
	Status          RunStatus      `json:"status"`
	CandidatesFound int            `json:"candidates_found"`
	DeletedCount    int            `json:"deleted_count"`
	Deleted         []DeletedEntry `json:"deleted"`
	Errors          []string       `json:"errors"`

	// Echo of the rule parameters the run was executed with.
	TagLabel           string `json:"tag_label"`
	DaysOld            int    `json:"days_old"`
	DryRun             bool   `json:"dry_run"`
	DeleteFiles        bool   `json:"delete_files"`
	AddImportExclusion bool   `json:"add_import_exclusion"`
}
