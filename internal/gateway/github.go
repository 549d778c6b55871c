// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
)

// LanguageEdge is one language slice of a repository: its name, display
// color, and byte size within that repository.
type LanguageEdge struct {
	Name  string
	Color string
	Size  int
}

// RepoLanguages holds the top languages of a single repository.
type RepoLanguages struct {
	Name      string
	Languages []LanguageEdge
}

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	// ForEachEvent walks the user's public event feed page by page, newest
	// first, invoking fn for each event. Traversal stops when fn returns
	// false, a page comes back empty, or maxPages pages have been fetched.
	// Any non-success response aborts the traversal with an error.
	ForEachEvent(ctx context.Context, user string, perPage, maxPages int, fn func(*github.Event) bool) error
	// FetchCommit resolves a single commit by repository and SHA.
	FetchCommit(ctx context.Context, owner, repo, sha string) (*github.RepositoryCommit, error)
	// FetchLanguages returns the top languages of up to repoLimit
	// repositories the user recently pushed commits to.
	FetchLanguages(ctx context.Context, login string, repoLimit, perRepoLangs int) ([]RepoLanguages, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        *log.Logger
}

// contributedLanguagesQuery fetches, for recently-pushed-to repositories the
// user contributed commits to, each repository's top languages by byte size.
type contributedLanguagesQuery struct {
	User struct {
		RepositoriesContributedTo struct {
			Nodes []struct {
				NameWithOwner string
				Languages     struct {
					Edges []struct {
						Size int
						Node struct {
							Name  string
							Color string
						}
					}
				} `graphql:"languages(first: $perRepo, orderBy: {field: SIZE, direction: DESC})"`
			}
		} `graphql:"repositoriesContributedTo(first: $repoLimit, orderBy: {field: PUSHED_AT, direction: DESC}, includeUserRepositories: true, contributionTypes: [COMMIT])"`
	} `graphql:"user(login: $login)"`
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
// The token is optional: without it requests go out unauthenticated, which is
// enough for the public REST endpoints but not for GraphQL.
func NewGitHubGateway(token string, logger *log.Logger) (Fetcher, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	httpClient := &http.Client{Transport: rateLimitWaiter}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient.Transport = &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		}
	}
	return &GitHubGateway{
		restClient:    github.NewClient(httpClient),
		graphqlClient: githubv4.NewClient(httpClient),
		logger:        logger,
	}, nil
}

func (g *GitHubGateway) ForEachEvent(ctx context.Context, user string, perPage, maxPages int, fn func(*github.Event) bool) error {
	g.logger.Printf("Fetching public events for %s...", user)
	opts := &github.ListOptions{PerPage: perPage}
	for page := 0; maxPages <= 0 || page < maxPages; page++ {
		events, resp, err := g.restClient.Activity.ListEventsPerformedByUser(ctx, user, true, opts)
		if err != nil {
			return fmt.Errorf("failed to list events for %s: %w", user, err)
		}
		if len(events) == 0 {
			return nil
		}
		for _, ev := range events {
			if !fn(ev) {
				return nil
			}
		}
		if resp.NextPage == 0 {
			return nil
		}
		opts.Page = resp.NextPage
		g.logger.Println("  Fetching next page of events...")
	}
	return nil
}

func (g *GitHubGateway) FetchCommit(ctx context.Context, owner, repo, sha string) (*github.RepositoryCommit, error) {
	commit, _, err := g.restClient.Repositories.GetCommit(ctx, owner, repo, sha, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch commit %s/%s@%s: %w", owner, repo, sha, err)
	}
	return commit, nil
}

func (g *GitHubGateway) FetchLanguages(ctx context.Context, login string, repoLimit, perRepoLangs int) ([]RepoLanguages, error) {
	g.logger.Printf("Fetching language data for %s via GraphQL...", login)
	variables := map[string]interface{}{
		"login":     githubv4.String(login),
		"repoLimit": githubv4.Int(repoLimit),
		"perRepo":   githubv4.Int(perRepoLangs),
	}

	var q contributedLanguagesQuery
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return nil, fmt.Errorf("failed to execute GraphQL query for languages: %w", err)
	}

	repos := make([]RepoLanguages, 0, len(q.User.RepositoriesContributedTo.Nodes))
	for _, node := range q.User.RepositoriesContributedTo.Nodes {
		rl := RepoLanguages{Name: node.NameWithOwner}
		for _, edge := range node.Languages.Edges {
			rl.Languages = append(rl.Languages, LanguageEdge{
				Name:  edge.Node.Name,
				Color: edge.Node.Color,
				Size:  edge.Size,
			})
		}
		repos = append(repos, rl)
	}
	g.logger.Printf("Completed fetching language data for %d repositories.", len(repos))
	return repos, nil
}
