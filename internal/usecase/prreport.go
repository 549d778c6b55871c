// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"

	"github.com/naka-gawa/readme-activity/internal/domain"
	"github.com/naka-gawa/readme-activity/internal/gateway"
)

// PROptions controls one pull request report run.
type PROptions struct {
	User          string
	Limit         int
	LookbackDays  int
	IncludeDrafts bool
	PerPage       int
	MaxPages      int
}

// PRReport builds the recent pull requests table from the user's event feed.
type PRReport struct {
	fetcher gateway.Fetcher
	logger  *log.Logger
	now     func() time.Time
}

// NewPRReport creates a new PRReport instance.
func NewPRReport(fetcher gateway.Fetcher, logger *log.Logger) *PRReport {
	return &PRReport{
		fetcher: fetcher,
		logger:  logger,
		now:     time.Now,
	}
}

// Collect scans the event feed for pull request events inside the lookback
// window and returns up to opts.Limit display rows in feed order. Each pull
// request appears at most once, keyed by its canonical URL.
func (r *PRReport) Collect(ctx context.Context, opts PROptions) ([]domain.PullRequestRow, error) {
	if opts.Limit <= 0 {
		return nil, nil
	}
	cutoff := r.now().AddDate(0, 0, -opts.LookbackDays)
	seen := make(map[string]struct{})
	rows := make([]domain.PullRequestRow, 0, opts.Limit)

	err := r.fetcher.ForEachEvent(ctx, opts.User, opts.PerPage, opts.MaxPages, func(ev *github.Event) bool {
		if ev.GetType() != "PullRequestEvent" {
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
		pe, ok := payload.(*github.PullRequestEvent)
		if !ok {
			return true
		}
		pr := pe.GetPullRequest()
		url := pr.GetHTMLURL()
		if url == "" {
			return true
		}
		if pr.GetDraft() && !opts.IncludeDrafts {
			return true
		}
		if _, dup := seen[url]; dup {
			return true
		}
		seen[url] = struct{}{}

		repoName, repoURL := resolveRepo(ev, pr)
		rows = append(rows, domain.PullRequestRow{
			RepoName: repoName,
			RepoURL:  repoURL,
			Title:    pr.GetTitle(),
			URL:      url,
			Status:   prStatus(pr),
			Date:     created,
		})
		return len(rows) < opts.Limit
	})
	if err != nil {
		return nil, err
	}
	r.logger.Printf("Collected %d pull request rows.", len(rows))
	return rows, nil
}

// prStatus derives the display status by priority: a merged timestamp beats
// everything, then a closed state, then the draft flag.
func prStatus(pr *github.PullRequest) domain.PRStatus {
	switch {
	case pr.MergedAt != nil:
		return domain.StatusMerged
	case pr.GetState() == "closed":
		return domain.StatusClosed
	case pr.GetDraft():
		return domain.StatusDraft
	default:
		return domain.StatusOpen
	}
}

// resolveRepo resolves the repository name and URL for a pull request event
// through an ordered chain of extraction attempts, first match wins.
func resolveRepo(ev *github.Event, pr *github.PullRequest) (string, string) {
	attempts := []func() string{
		func() string { return pr.GetHead().GetRepo().GetFullName() },
		func() string { return ev.GetRepo().GetName() },
		func() string { return pr.GetBase().GetRepo().GetFullName() },
		func() string { return repoNameFromAPIURL(ev.GetRepo().GetURL()) },
	}
	for _, attempt := range attempts {
		if name := attempt(); name != "" {
			return name, "https://github.com/" + name
		}
	}
	return "Unknown", ""
}

// repoNameFromAPIURL extracts "owner/repo" from an API URL such as
// https://api.github.com/repos/owner/repo.
func repoNameFromAPIURL(url string) string {
	_, after, ok := strings.Cut(url, "/repos/")
	if !ok {
		return ""
	}
	parts := strings.Split(after, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return ""
	}
	return parts[0] + "/" + parts[1]
}
