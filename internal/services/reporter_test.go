package services

import (
	"testing"
	"time"

	"github.com/ramonskie/mediareaparr/internal/config"
	"github.com/ramonskie/mediareaparr/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	cfg := *config.DefaultConfig()
	cfg.Rule.TagLabel = "autodelete30"
	cfg.Rule.DaysOld = 30
	cfg.Rule.DryRun = true

	t.Run("no runs yet", func(t *testing.T) {
		summary := Summarize(nil, cfg, now)

		assert.False(t, summary.HasRuns)
		assert.Equal(t, "never", summary.LastRunAgo)
		assert.Nil(t, summary.LastRunAt)
		assert.Contains(t, summary.Rule, "autodelete30")
		assert.Contains(t, summary.Rule, "30 days")
		assert.Contains(t, summary.Rule, "dry run")
		assert.True(t, summary.DryRun)
	})

	t.Run("completed run", func(t *testing.T) {
		result := &models.RunResult{
			Status:          models.RunStatusOKWithErrors,
			FinishedAt:      now.Add(-3 * time.Hour),
			CandidatesFound: 5,
			DeletedCount:    4,
			Errors:          []string{"deleting movie 9: boom"},
		}

		summary := Summarize(result, cfg, now)

		assert.True(t, summary.HasRuns)
		assert.Equal(t, models.RunStatusOKWithErrors, summary.Status)
		assert.Equal(t, "3 hours ago", summary.LastRunAgo)
		assert.Equal(t, 5, summary.CandidatesFound)
		assert.Equal(t, 4, summary.DeletedCount)
		assert.Equal(t, 1, summary.ErrorCount)
		assert.Equal(t, "deleting movie 9: boom", summary.StatusDetail)
	})

	t.Run("in-flight run", func(t *testing.T) {
		result := &models.RunResult{Status: models.RunStatusRunning}

		summary := Summarize(result, cfg, now)

		assert.Equal(t, "running now", summary.LastRunAgo)
		assert.Nil(t, summary.LastRunAt)
	})
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"seconds", now.Add(-30 * time.Second), "just now"},
		{"one minute", now.Add(-90 * time.Second), "1 minute ago"},
		{"minutes", now.Add(-45 * time.Minute), "45 minutes ago"},
		{"one hour", now.Add(-1 * time.Hour), "1 hour ago"},
		{"hours", now.Add(-7 * time.Hour), "7 hours ago"},
		{"one day", now.Add(-30 * time.Hour), "1 day ago"},
		{"days", now.Add(-10 * 24 * time.Hour), "10 days ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, relativeTime(tt.t, now))
		})
	}
}
