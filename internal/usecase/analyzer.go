// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/naka-gawa/repo-analyzer/internal/domain"
	"github.com/naka-gawa/repo-analyzer/internal/gateway"
	"github.com/rs/zerolog"
)

const (
	// StalePullRequestDays is the age after which an open pull request is stale.
	StalePullRequestDays = 30
	// StaleIssueDays is the age after which an open issue is stale.
	StaleIssueDays = 14

	// DefaultBranch is used when no branch is given.
	DefaultBranch = "master"
)

// Connector builds the repository client once the repository is known.
type Connector func(repo domain.RepositoryIdentity, branch string) (gateway.Fetcher, error)

// Options configures an Analyzer. Dates use the YYYY-MM-DD layout and may be empty.
type Options struct {
	RepoURL  string
	Branch   string
	DateFrom string
	DateTo   string
	// Now defaults to time.Now.
	Now func() time.Time
}

// Analyzer turns the records of one repository into activity statistics.
// Its configuration is fixed at construction.
type Analyzer struct {
	repo    domain.RepositoryIdentity
	branch  string
	window  domain.DateWindow
	fetcher gateway.Fetcher
	now     func() time.Time
	logger  zerolog.Logger
}

// NewAnalyzer parses the repository URL and date bounds, then connects a client.
func NewAnalyzer(opts Options, connect Connector, logger zerolog.Logger) (*Analyzer, error) {
	from, err := ParseDate(opts.DateFrom, SourceInput)
	if err != nil {
		return nil, err
	}
	to, err := ParseDate(opts.DateTo, SourceInput)
	if err != nil {
		return nil, err
	}
	repo, err := ParseRepositoryURL(opts.RepoURL)
	if err != nil {
		return nil, err
	}

	branch := opts.Branch
	if branch == "" {
		branch = DefaultBranch
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	fetcher, err := connect(repo, branch)
	if err != nil {
		return nil, fmt.Errorf("failed to create repository client: %w", err)
	}

	return &Analyzer{
		repo:    repo,
		branch:  branch,
		window:  domain.DateWindow{From: from, To: to},
		fetcher: fetcher,
		now:     now,
		logger:  logger,
	}, nil
}

// Owner returns the repository owner.
func (a *Analyzer) Owner() string { return a.repo.Owner }

// Project returns the repository name.
func (a *Analyzer) Project() string { return a.repo.Project }

// Branch returns the branch pull requests are filtered by.
func (a *Analyzer) Branch() string { return a.branch }

// Window returns the date window records are counted in.
func (a *Analyzer) Window() domain.DateWindow { return a.window }

// Contributors ranks commit authors inside the date window across all branches.
// A nonzero limit keeps only the top entries.
func (a *Analyzer) Contributors(ctx context.Context, limit int) (domain.ContributorRanking, error) {
	a.logger.Debug().Str("repo", a.repo.FullName()).Msg("Usecase: ranking contributors by commits...")

	commits, err := a.fetcher.FetchCommits(ctx, a.window.From, a.window.To)
	if err != nil {
		return domain.ContributorRanking{}, fmt.Errorf("failed to fetch commits: %w", err)
	}

	ranking := newRanking(rankCommits(commits), limit)
	a.logger.Debug().Int("commits", len(commits)).Int("contributors", ranking.Distribution.Contributors).Msg("Usecase: ranking complete.")
	return ranking, nil
}

// LifetimeContributors ranks contributors by the all-time contribution counts the
// API keeps. The date window does not apply. Every contributor is fetched so the
// distribution covers all of them; limit only trims the entries.
func (a *Analyzer) LifetimeContributors(ctx context.Context, limit int, includeAnonymous bool) (domain.ContributorRanking, error) {
	a.logger.Debug().Str("repo", a.repo.FullName()).Bool("anon", includeAnonymous).Msg("Usecase: ranking lifetime contributors...")

	records, err := a.fetcher.FetchContributors(ctx, 0, includeAnonymous)
	if err != nil {
		return domain.ContributorRanking{}, fmt.Errorf("failed to fetch contributors: %w", err)
	}
	return newRanking(rankContributors(records), limit), nil
}

// PullRequestsStat summarizes pull requests targeting the configured branch.
func (a *Analyzer) PullRequestsStat(ctx context.Context) (domain.ActivitySummary, error) {
	deadline := a.deadline(StalePullRequestDays)

	pulls, err := a.fetcher.FetchPullRequests(ctx, gateway.StateAll, gateway.SortCreated)
	if err != nil {
		return domain.ActivitySummary{}, fmt.Errorf("failed to fetch pull requests: %w", err)
	}

	summary := summarize(pulls, a.window, deadline)
	a.logger.Debug().Int("records", len(pulls)).Interface("summary", summary).Msg("Usecase: pull requests summarized.")
	return summary, nil
}

// IssuesStat summarizes the repository issues.
func (a *Analyzer) IssuesStat(ctx context.Context) (domain.ActivitySummary, error) {
	deadline := a.deadline(StaleIssueDays)

	issues, err := a.fetcher.FetchIssues(ctx, gateway.StateAll, gateway.SortCreated)
	if err != nil {
		return domain.ActivitySummary{}, fmt.Errorf("failed to fetch issues: %w", err)
	}

	summary := summarize(issues, a.window, deadline)
	a.logger.Debug().Int("records", len(issues)).Interface("summary", summary).Msg("Usecase: issues summarized.")
	return summary, nil
}

// ReportOptions selects how contributors are ranked in a Report.
type ReportOptions struct {
	Top              int
	Lifetime         bool
	IncludeAnonymous bool
}

// Report gathers every statistic, one after another.
func (a *Analyzer) Report(ctx context.Context, opts ReportOptions) (*domain.Report, error) {
	var (
		ranking domain.ContributorRanking
		err     error
	)
	if opts.Lifetime {
		ranking, err = a.LifetimeContributors(ctx, opts.Top, opts.IncludeAnonymous)
	} else {
		ranking, err = a.Contributors(ctx, opts.Top)
	}
	if err != nil {
		return nil, err
	}

	pulls, err := a.PullRequestsStat(ctx)
	if err != nil {
		return nil, err
	}
	issues, err := a.IssuesStat(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.Report{
		Repository:   a.repo,
		Branch:       a.branch,
		Window:       a.window,
		Contributors: ranking,
		PullRequests: pulls,
		Issues:       issues,
	}, nil
}

func (a *Analyzer) deadline(staleDays int) time.Time {
	return a.now().UTC().Add(-time.Duration(staleDays) * 24 * time.Hour)
}
