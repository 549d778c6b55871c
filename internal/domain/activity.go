// Package domain contains the core data structures for the application.
package domain

import "time"

// PRStatus is the display status of a pull request.
type PRStatus string

const (
	StatusOpen   PRStatus = "Open"
	StatusDraft  PRStatus = "Draft"
	StatusMerged PRStatus = "Merged"
	StatusClosed PRStatus = "Closed"
)

// PullRequestRow is one row of the recent pull requests table.
// Rows keep feed order (newest event first) and are truncated to the
// configured limit before rendering.
type PullRequestRow struct {
	RepoName string
	RepoURL  string
	Title    string
	URL      string
	Status   PRStatus
	Date     time.Time
}

// CommitRow is one row of the recent commits table.
type CommitRow struct {
	RepoName string
	RepoURL  string
	Message  string
	URL      string
	SHA      string
	Date     time.Time
}

// ShortSHA returns the 7-character commit identifier shown in the table.
func (c CommitRow) ShortSHA() string {
	if len(c.SHA) <= 7 {
		return c.SHA
	}
	return c.SHA[:7]
}

// LanguageStat is the cumulative byte size of one language across the
// sampled repositories, with its display color.
type LanguageStat struct {
	Name  string
	Size  int
	Color string
}
