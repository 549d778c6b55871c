package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"

	"github.com/naka-gawa/readme-activity/internal/domain"
	"github.com/naka-gawa/readme-activity/internal/gateway"
)

// CommitOptions controls one commit report run.
type CommitOptions struct {
	User         string
	Limit        int
	LookbackDays int
	PerPage      int
	MaxPages     int
}

// commitDetail is the resolved form of a commit looked up by head reference.
type commitDetail struct {
	Message string
	URL     string
	Date    time.Time
}

// CommitReport builds the recent commits table from the user's event feed.
// Push events usually carry their commits inline; events that only carry a
// head reference trigger a single-commit lookup, cached for the run so a
// head recurring across pages is resolved at most once.
type CommitReport struct {
	fetcher gateway.Fetcher
	logger  *log.Logger
	cache   map[string]*commitDetail
	now     func() time.Time
}

// NewCommitReport creates a new CommitReport instance. The detail cache is
// scoped to this instance, i.e. to one run.
func NewCommitReport(fetcher gateway.Fetcher, logger *log.Logger) *CommitReport {
	return &CommitReport{
		fetcher: fetcher,
		logger:  logger,
		cache:   make(map[string]*commitDetail),
		now:     time.Now,
	}
}

// Collect scans the event feed for push events inside the lookback window
// and returns up to opts.Limit commit rows in feed order. Inline commits and
// head-reference fallbacks share one dedup set keyed by full SHA.
func (r *CommitReport) Collect(ctx context.Context, opts CommitOptions) ([]domain.CommitRow, error) {
	if opts.Limit <= 0 {
		return nil, nil
	}
	cutoff := r.now().AddDate(0, 0, -opts.LookbackDays)
	seen := make(map[string]struct{})
	rows := make([]domain.CommitRow, 0, opts.Limit)

	err := r.fetcher.ForEachEvent(ctx, opts.User, opts.PerPage, opts.MaxPages, func(ev *github.Event) bool {
		if ev.GetType() != "PushEvent" {
			return true
		}
		created := ev.GetCreatedAt().Time
		if created.IsZero() || created.Before(cutoff) {
			return true
		}
		payload, err := ev.ParsePayload()
		if err != nil {
			return true
		}
		push, ok := payload.(*github.PushEvent)
		if !ok {
			return true
		}
		repoName := ev.GetRepo().GetName()
		if repoName == "" {
			return true
		}

		if len(push.Commits) > 0 {
			for _, c := range push.Commits {
				sha := c.GetSHA()
				if sha == "" {
					continue
				}
				if _, dup := seen[sha]; dup {
					continue
				}
				seen[sha] = struct{}{}
				rows = append(rows, domain.CommitRow{
					RepoName: repoName,
					RepoURL:  "https://github.com/" + repoName,
					Message:  firstLine(c.GetMessage()),
					URL:      fmt.Sprintf("https://github.com/%s/commit/%s", repoName, sha),
					SHA:      sha,
					Date:     created,
				})
				if len(rows) >= opts.Limit {
					return false
				}
			}
			return true
		}

		// No inline commit list; fall back to the head reference.
		head := push.GetHead()
		if head == "" {
			return true
		}
		if _, dup := seen[head]; dup {
			return true
		}
		detail := r.resolve(ctx, repoName, head)
		if detail == nil {
			return true
		}
		seen[head] = struct{}{}
		date := detail.Date
		if date.IsZero() {
			date = created
		}
		rows = append(rows, domain.CommitRow{
			RepoName: repoName,
			RepoURL:  "https://github.com/" + repoName,
			Message:  detail.Message,
			URL:      detail.URL,
			SHA:      head,
			Date:     date,
		})
		return len(rows) < opts.Limit
	})
	if err != nil {
		return nil, err
	}
	r.logger.Printf("Collected %d commit rows.", len(rows))
	return rows, nil
}

// resolve looks up a single commit, consulting the run cache first. Lookup
// failures are logged as warnings, cached, and reported as nil so the
// caller drops the candidate and keeps scanning.
func (r *CommitReport) resolve(ctx context.Context, repoName, sha string) *commitDetail {
	key := repoName + "@" + sha
	if detail, ok := r.cache[key]; ok {
		return detail
	}
	owner, name, ok := strings.Cut(repoName, "/")
	if !ok {
		r.cache[key] = nil
		return nil
	}
	rc, err := r.fetcher.FetchCommit(ctx, owner, name, sha)
	if err != nil {
		r.logger.Printf("warning: could not resolve commit %s: %v", key, err)
		r.cache[key] = nil
		return nil
	}

	detail := &commitDetail{
		Message: firstLine(rc.GetCommit().GetMessage()),
		URL:     rc.GetHTMLURL(),
	}
	if detail.URL == "" {
		detail.URL = fmt.Sprintf("https://github.com/%s/commit/%s", repoName, sha)
	}
	if ts := rc.GetCommit().GetAuthor().GetDate(); !ts.Time.IsZero() {
		detail.Date = ts.Time
	} else if ts := rc.GetCommit().GetCommitter().GetDate(); !ts.Time.IsZero() {
		detail.Date = ts.Time
	}
	r.cache[key] = detail
	return detail
}

func firstLine(message string) string {
	line, _, _ := strings.Cut(message, "\n")
	return strings.TrimSpace(line)
}
