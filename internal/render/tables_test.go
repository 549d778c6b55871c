package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/readme-activity/internal/domain"
)

func TestPRTable(t *testing.T) {
	date := time.Date(2026, 7, 31, 10, 0, 0, 0, time.UTC)

	t.Run("renders one row per record", func(t *testing.T) {
		rows := []domain.PullRequestRow{
			{
				RepoName: "org/repo",
				RepoURL:  "https://github.com/org/repo",
				Title:    "Add <new> parser",
				URL:      "https://github.com/org/repo/pull/1",
				Status:   domain.StatusMerged,
				Date:     date,
			},
			{
				RepoName: "Unknown",
				Title:    "No repo link",
				URL:      "https://github.com/org/repo/pull/2",
				Status:   domain.StatusOpen,
				Date:     date,
			},
		}
		out, err := PRTable(rows)
		require.NoError(t, err)

		assert.Equal(t, 3, strings.Count(out, "<tr>"), "header plus one row per record")
		assert.Contains(t, out, "2026-07-31")
		assert.Contains(t, out, "Add &lt;new&gt; parser")
		assert.Contains(t, out, "Merged")
		assert.Contains(t, out, `<a href="https://github.com/org/repo">org/repo</a>`)
		// A record without a repository URL renders plain text.
		assert.Contains(t, out, "<td>Unknown</td>")
	})

	t.Run("empty input renders the placeholder comment", func(t *testing.T) {
		out, err := PRTable(nil)
		require.NoError(t, err)
		assert.Equal(t, "<!-- no recent pull requests -->", out)
	})
}

func TestCommitTable(t *testing.T) {
	date := time.Date(2026, 7, 30, 9, 0, 0, 0, time.UTC)

	t.Run("renders message link and short identifier", func(t *testing.T) {
		rows := []domain.CommitRow{
			{
				RepoName: "org/repo",
				RepoURL:  "https://github.com/org/repo",
				Message:  "Fix & polish",
				URL:      "https://github.com/org/repo/commit/abc1234567890",
				SHA:      "abc1234567890",
				Date:     date,
			},
		}
		out, err := CommitTable(rows)
		require.NoError(t, err)

		assert.Equal(t, 2, strings.Count(out, "<tr>"))
		assert.Contains(t, out, "2026-07-30")
		assert.Contains(t, out, "Fix &amp; polish")
		assert.Contains(t, out, "<code>abc1234</code>")
	})

	t.Run("empty input renders the placeholder comment", func(t *testing.T) {
		out, err := CommitTable(nil)
		require.NoError(t, err)
		assert.Equal(t, "<!-- no recent commits -->", out)
	})
}
