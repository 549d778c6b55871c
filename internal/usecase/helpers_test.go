package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/readme-activity/internal/gateway"
)

// fakeFetcher is a hand-rolled gateway.Fetcher that replays a fixed event
// slice through the ForEachEvent callback and serves canned commit lookups.
// The callback-driven traversal does not map well onto testify/mock, so the
// event-based tests use this fake instead.
type fakeFetcher struct {
	events    []*github.Event
	eventsErr error

	commits     map[string]*github.RepositoryCommit
	commitErrs  map[string]error
	commitCalls map[string]int

	langs    []gateway.RepoLanguages
	langsErr error
}

func (f *fakeFetcher) ForEachEvent(ctx context.Context, user string, perPage, maxPages int, fn func(*github.Event) bool) error {
	if f.eventsErr != nil {
		return f.eventsErr
	}
	for _, ev := range f.events {
		if !fn(ev) {
			return nil
		}
	}
	return nil
}

func (f *fakeFetcher) FetchCommit(ctx context.Context, owner, repo, sha string) (*github.RepositoryCommit, error) {
	key := owner + "/" + repo + "@" + sha
	if f.commitCalls == nil {
		f.commitCalls = make(map[string]int)
	}
	f.commitCalls[key]++
	if err := f.commitErrs[key]; err != nil {
		return nil, err
	}
	commit, ok := f.commits[key]
	if !ok {
		return nil, errors.New("commit not found")
	}
	return commit, nil
}

func (f *fakeFetcher) FetchLanguages(ctx context.Context, login string, repoLimit, perRepoLangs int) ([]gateway.RepoLanguages, error) {
	return f.langs, f.langsErr
}

// newEvent builds an event with a marshaled payload the way the events API
// delivers it: type string, created_at, repo stub, raw JSON payload.
func newEvent(t *testing.T, eventType string, created time.Time, repoName string, payload interface{}) *github.Event {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	rawPayload := json.RawMessage(raw)

	ev := &github.Event{
		Type:       github.String(eventType),
		CreatedAt:  &github.Timestamp{Time: created},
		RawPayload: &rawPayload,
	}
	if repoName != "" {
		ev.Repo = &github.Repository{Name: github.String(repoName)}
	}
	return ev
}

func prEvent(t *testing.T, created time.Time, repoName string, pr *github.PullRequest) *github.Event {
	t.Helper()
	return newEvent(t, "PullRequestEvent", created, repoName, &github.PullRequestEvent{PullRequest: pr})
}

func pushEvent(t *testing.T, created time.Time, repoName string, push *github.PushEvent) *github.Event {
	t.Helper()
	return newEvent(t, "PushEvent", created, repoName, push)
}
