package services

import (
	"fmt"
	"time"

	"github.com/ramonskie/mediareaparr/internal/config"
	"github.com/ramonskie/mediareaparr/internal/models"
)

// RunSummary is the dashboard view of the latest run plus the active rule.
type RunSummary struct {
	Status       models.RunStatus `json:"status"`
	StatusDetail string           `json:"status_detail,omitempty"`
	LastRunAt    *time.Time       `json:"last_run_at"`
	LastRunAgo   string           `json:"last_run_ago"`

	CandidatesFound int `json:"candidates_found"`
	DeletedCount    int `json:"deleted_count"`
	ErrorCount      int `json:"error_count"`

	Rule    string `json:"rule"`
	DryRun  bool   `json:"dry_run"`
	Theme   string `json:"theme"`
	HasRuns bool   `json:"has_runs"`
}

// Summarize turns the latest run and the live settings into the summary the
// UI renders. A nil result means no run has ever happened.
func Summarize(result *models.RunResult, cfg config.Config, now time.Time) RunSummary {
	summary := RunSummary{
		LastRunAgo: "never",
		Rule:       describeRule(cfg.Rule),
		DryRun:     cfg.Rule.DryRun,
		Theme:      cfg.App.Theme,
	}

	if result == nil {
		return summary
	}

	summary.HasRuns = true
	summary.Status = result.Status
	summary.CandidatesFound = result.CandidatesFound
	summary.DeletedCount = result.DeletedCount
	summary.ErrorCount = len(result.Errors)

	if result.Status != models.RunStatusRunning {
		finished := result.FinishedAt
		summary.LastRunAt = &finished
		summary.LastRunAgo = relativeTime(finished, now)
	} else {
		summary.LastRunAgo = "running now"
	}

	if len(result.Errors) > 0 {
		summary.StatusDetail = result.Errors[0]
	}

	return summary
}

func describeRule(rule config.RuleConfig) string {
	mode := "live"
	if rule.DryRun {
		mode = "dry run"
	}
	return fmt.Sprintf("delete movies tagged %q older than %d days (%s)", rule.TagLabel, rule.DaysOld, mode)
}

// relativeTime renders t relative to now, e.g. "3 hours ago".
func relativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hour")
	default:
		return plural(int(d.Hours())/24, "day")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
