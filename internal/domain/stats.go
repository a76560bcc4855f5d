// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

// RepositoryIdentity names the repository being analyzed.
// It is derived once from the repository URL and never changes afterwards.
type RepositoryIdentity struct {
	Owner   string `json:"owner"`
	Project string `json:"project"`
}

// FullName returns the "owner/project" form used by the API.
func (r RepositoryIdentity) FullName() string {
	return r.Owner + "/" + r.Project
}

// DateWindow is an optional inclusive range on record creation time.
// A nil bound is open. Both bounds are UTC.
type DateWindow struct {
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

// Contains reports whether ts falls inside the window.
func (w DateWindow) Contains(ts time.Time) bool {
	if w.From != nil && ts.Before(*w.From) {
		return false
	}
	if w.To != nil && ts.After(*w.To) {
		return false
	}
	return true
}

// ContributorCount is one entry of a contributor ranking.
type ContributorCount struct {
	Login   string `json:"login"`
	Commits int    `json:"commits"`
}

// CommitDistribution describes how commits spread over all ranked contributors,
// computed before any truncation of the ranking.
type CommitDistribution struct {
	Contributors int     `json:"contributors"`
	TotalCommits int     `json:"total_commits"`
	Mean         float64 `json:"mean"`
	Median       float64 `json:"median"`
}

// ContributorRanking is ordered by commit count, highest first.
// Contributors with equal counts keep the order in which they were first seen.
type ContributorRanking struct {
	Entries      []ContributorCount `json:"entries"`
	Distribution CommitDistribution `json:"distribution"`
}

// ActivitySummary counts pull requests or issues inside the date window.
// Stale items are also counted in Opened.
type ActivitySummary struct {
	Opened int `json:"opened"`
	Closed int `json:"closed"`
	Stale  int `json:"stale"`
}

// Report is everything a single run prints.
type Report struct {
	Repository   RepositoryIdentity `json:"repository"`
	Branch       string             `json:"branch"`
	Window       DateWindow         `json:"window"`
	Contributors ContributorRanking `json:"contributors"`
	PullRequests ActivitySummary    `json:"pull_requests"`
	Issues       ActivitySummary    `json:"issues"`
}
