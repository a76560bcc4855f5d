package domain

import "time"

// CommitRecord carries the commit fields the analyzer reads.
// HasAuthor is false when the commit is not linked to an account.
type CommitRecord struct {
	SHA         string
	AuthorLogin string
	HasAuthor   bool
}

// ContributorRecord is one row of the contributors endpoint.
// Anonymous contributors have no Login, only Name and Email.
type ContributorRecord struct {
	Login         string
	Name          string
	Email         string
	Type          string
	Contributions int
}

// PullRequestRecord carries the pull request fields the analyzer reads.
type PullRequestRecord struct {
	Number    int
	State     string
	CreatedAt time.Time
}

// IssueRecord carries the issue fields the analyzer reads.
type IssueRecord struct {
	Number    int
	State     string
	CreatedAt time.Time
}

// Activity is a record that can be classified as opened, closed or stale.
type Activity interface {
	ActivityState() string
	Created() time.Time
}

func (p PullRequestRecord) ActivityState() string { return p.State }
func (p PullRequestRecord) Created() time.Time    { return p.CreatedAt }
func (i IssueRecord) ActivityState() string       { return i.State }
func (i IssueRecord) Created() time.Time          { return i.CreatedAt }
