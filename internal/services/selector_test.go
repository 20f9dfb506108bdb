package services

import (
	"testing"
	"time"

	"github.com/ramonskie/mediareaparr/internal/clients"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTag(t *testing.T) {
	tags := []clients.RadarrTag{
		{ID: 1, Label: "keep"},
		{ID: 7, Label: "autodelete30"},
	}

	t.Run("finds exact match", func(t *testing.T) {
		id, err := ResolveTag(tags, "autodelete30")
		require.NoError(t, err)
		assert.Equal(t, 7, id)
	})

	t.Run("match is case-sensitive", func(t *testing.T) {
		_, err := ResolveTag(tags, "AutoDelete30")

		var tagErr *TagNotFoundError
		require.ErrorAs(t, err, &tagErr)
		assert.Equal(t, "AutoDelete30", tagErr.Label)
	})

	t.Run("missing tag returns TagNotFoundError", func(t *testing.T) {
		_, err := ResolveTag(tags, "nope")

		var tagErr *TagNotFoundError
		require.ErrorAs(t, err, &tagErr)
	})
}

func TestSelectCandidates(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	const tagID = 7

	movie := func(id int, title, added string, tags ...int) clients.RadarrMovie {
		return clients.RadarrMovie{
			ID:    id,
			Title: title,
			Added: added,
			Tags:  tags,
		}
	}

	t.Run("only tagged movies older than cutoff qualify", func(t *testing.T) {
		movies := []clients.RadarrMovie{
			movie(1, "old and tagged", "2024-04-01T00:00:00Z", tagID),
			movie(2, "old but untagged", "2024-04-01T00:00:00Z", 1),
			movie(3, "fresh and tagged", "2024-06-14T00:00:00Z", tagID),
		}

		candidates := SelectCandidates(movies, tagID, 30, now)

		require.Len(t, candidates, 1)
		assert.Equal(t, 1, candidates[0].ID)
	})

	t.Run("movie added exactly at cutoff is not a candidate", func(t *testing.T) {
		cutoff := now.Add(-30 * 24 * time.Hour)
		movies := []clients.RadarrMovie{
			movie(1, "at cutoff", cutoff.Format(time.RFC3339), tagID),
			movie(2, "one second older", cutoff.Add(-time.Second).Format(time.RFC3339), tagID),
		}

		candidates := SelectCandidates(movies, tagID, 30, now)

		require.Len(t, candidates, 1)
		assert.Equal(t, 2, candidates[0].ID)
	})

	t.Run("age is whole days rounded down", func(t *testing.T) {
		// 30 days and 12 hours old
		added := now.Add(-30*24*time.Hour - 12*time.Hour)
		movies := []clients.RadarrMovie{
			movie(1, "thirty and a half", added.Format(time.RFC3339), tagID),
		}

		candidates := SelectCandidates(movies, tagID, 30, now)

		require.Len(t, candidates, 1)
		assert.Equal(t, 30, candidates[0].AgeDays)
	})

	t.Run("sorted oldest first, ties keep collection order", func(t *testing.T) {
		movies := []clients.RadarrMovie{
			movie(1, "40 days", now.Add(-40*24*time.Hour).Format(time.RFC3339), tagID),
			movie(2, "90 days", now.Add(-90*24*time.Hour).Format(time.RFC3339), tagID),
			movie(3, "40 days too", now.Add(-40*24*time.Hour).Format(time.RFC3339), tagID),
		}

		candidates := SelectCandidates(movies, tagID, 30, now)

		require.Len(t, candidates, 3)
		assert.Equal(t, []int{2, 1, 3}, []int{candidates[0].ID, candidates[1].ID, candidates[2].ID})
	})

	t.Run("unparseable added skips only that movie", func(t *testing.T) {
		movies := []clients.RadarrMovie{
			movie(1, "broken", "not-a-timestamp", tagID),
			movie(2, "fine", "2024-01-01T00:00:00Z", tagID),
			movie(3, "empty", "", tagID),
		}

		candidates := SelectCandidates(movies, tagID, 30, now)

		require.Len(t, candidates, 1)
		assert.Equal(t, 2, candidates[0].ID)
	})

	t.Run("selection is idempotent for a fixed now", func(t *testing.T) {
		movies := []clients.RadarrMovie{
			movie(1, "a", "2024-01-05T00:00:00Z", tagID),
			movie(2, "b", "2024-02-10T00:00:00Z", tagID),
			movie(3, "c", "2024-03-20T00:00:00Z", tagID),
		}

		first := SelectCandidates(movies, tagID, 30, now)
		second := SelectCandidates(movies, tagID, 30, now)

		assert.Equal(t, first, second)
	})

	t.Run("no movies yields empty non-nil slice", func(t *testing.T) {
		candidates := SelectCandidates(nil, tagID, 30, now)
		assert.NotNil(t, candidates)
		assert.Empty(t, candidates)
	})
}

func TestParseAddedTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "utc with trailing Z",
			input: "2024-01-02T03:04:05Z",
			want:  time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		},
		{
			name:  "explicit offset is normalized to utc",
			input: "2024-01-02T05:04:05+02:00",
			want:  time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		},
		{
			name:  "naive timestamp is treated as utc",
			input: "2024-01-02T03:04:05",
			want:  time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		},
		{
			name:  "fractional seconds",
			input: "2024-01-02T03:04:05.123Z",
			want:  time.Date(2024, 1, 2, 3, 4, 5, 123000000, time.UTC),
		},
		{
			name:    "garbage",
			input:   "yesterday",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAddedTime(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %s want %s", got, tt.want)
		})
	}
}
