// Package gateway provides a gateway to the GitHub REST API,
// abstracting away the underlying client and its pagination.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/naka-gawa/repo-analyzer/internal/config"
	"github.com/naka-gawa/repo-analyzer/internal/domain"
	"github.com/rs/zerolog"
)

// States accepted by the pulls and issues endpoints.
const (
	StateOpen   = "open"
	StateClosed = "closed"
	StateAll    = "all"
)

// Sort orders accepted by the pulls and issues endpoints.
// Popularity and long-running apply to pulls only, comments to issues only.
const (
	SortCreated     = "created"
	SortUpdated     = "updated"
	SortPopularity  = "popularity"
	SortLongRunning = "long-running"
	SortComments    = "comments"
)

// Fetcher defines the behavior of a gateway for fetching repository records from GitHub.
type Fetcher interface {
	FetchCommits(ctx context.Context, since, until *time.Time) ([]domain.CommitRecord, error)
	FetchContributors(ctx context.Context, count int, includeAnonymous bool) ([]domain.ContributorRecord, error)
	FetchPullRequests(ctx context.Context, state, sortBy string) ([]domain.PullRequestRecord, error)
	FetchIssues(ctx context.Context, state, sortBy string) ([]domain.IssueRecord, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface
// for a single repository and branch.
type GitHubGateway struct {
	restClient *github.Client
	repo       domain.RepositoryIdentity
	branch     string
	pageSize   int
	maxPages   int
	logger     zerolog.Logger
}

// NewGitHubGateway creates a gateway authenticating with the login/token pair in cfg.
func NewGitHubGateway(repo domain.RepositoryIdentity, branch string, cfg config.Config, logger zerolog.Logger) (*GitHubGateway, error) {
	if cfg.Login == "" || cfg.Token == "" {
		return nil, fmt.Errorf("%w: login and token are required", domain.ErrConfiguration)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = config.DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid API base URL %q: %v", domain.ErrConfiguration, cfg.BaseURL, err)
	}

	transport := &github.BasicAuthTransport{Username: cfg.Login, Password: cfg.Token}
	httpClient := &http.Client{
		Transport: transport,
		Timeout:   cfg.Timeout,
	}
	restClient := github.NewClient(httpClient)
	restClient.BaseURL = u

	pageSize := cfg.PageSize
	if pageSize <= 0 || pageSize > config.DefaultPageSize {
		pageSize = config.DefaultPageSize
	}
	maxPages := cfg.MaxPages
	if maxPages <= 0 {
		maxPages = config.DefaultMaxPages
	}

	return &GitHubGateway{
		restClient: restClient,
		repo:       repo,
		branch:     branch,
		pageSize:   pageSize,
		maxPages:   maxPages,
		logger:     logger.With().Str("repo", repo.FullName()).Logger(),
	}, nil
}

// FetchCommits returns the commits created between since and until on every branch.
// Either bound may be nil.
func (g *GitHubGateway) FetchCommits(ctx context.Context, since, until *time.Time) ([]domain.CommitRecord, error) {
	opts := &github.CommitsListOptions{}
	if since != nil {
		opts.Since = since.UTC()
	}
	if until != nil {
		opts.Until = until.UTC()
	}

	commits, err := collectPages(ctx, g, "commits", 0, func(ctx context.Context, lo github.ListOptions) ([]*github.RepositoryCommit, *github.Response, error) {
		opts.ListOptions = lo
		return g.restClient.Repositories.ListCommits(ctx, g.repo.Owner, g.repo.Project, opts)
	})
	if err != nil {
		return nil, err
	}

	records := make([]domain.CommitRecord, 0, len(commits))
	for _, c := range commits {
		rec := domain.CommitRecord{SHA: c.GetSHA()}
		if c.Author != nil {
			rec.HasAuthor = true
			rec.AuthorLogin = c.Author.GetLogin()
		}
		records = append(records, rec)
	}
	return records, nil
}

// FetchContributors returns contributors ordered by contribution count.
// A nonzero count caps the number of records returned.
func (g *GitHubGateway) FetchContributors(ctx context.Context, count int, includeAnonymous bool) ([]domain.ContributorRecord, error) {
	opts := &github.ListContributorsOptions{Anon: "0"}
	if includeAnonymous {
		opts.Anon = "1"
	}

	contributors, err := collectPages(ctx, g, "contributors", count, func(ctx context.Context, lo github.ListOptions) ([]*github.Contributor, *github.Response, error) {
		opts.ListOptions = lo
		return g.restClient.Repositories.ListContributors(ctx, g.repo.Owner, g.repo.Project, opts)
	})
	if err != nil {
		return nil, err
	}

	records := make([]domain.ContributorRecord, 0, len(contributors))
	for _, c := range contributors {
		records = append(records, domain.ContributorRecord{
			Login:         c.GetLogin(),
			Name:          c.GetName(),
			Email:         c.GetEmail(),
			Type:          c.GetType(),
			Contributions: c.GetContributions(),
		})
	}
	return records, nil
}

// FetchPullRequests returns pull requests whose base is the configured branch.
func (g *GitHubGateway) FetchPullRequests(ctx context.Context, state, sortBy string) ([]domain.PullRequestRecord, error) {
	opts := &github.PullRequestListOptions{State: state, Base: g.branch, Sort: sortBy}

	pulls, err := collectPages(ctx, g, "pulls", 0, func(ctx context.Context, lo github.ListOptions) ([]*github.PullRequest, *github.Response, error) {
		opts.ListOptions = lo
		return g.restClient.PullRequests.List(ctx, g.repo.Owner, g.repo.Project, opts)
	})
	if err != nil {
		return nil, err
	}

	records := make([]domain.PullRequestRecord, 0, len(pulls))
	for _, p := range pulls {
		if p.CreatedAt == nil {
			return nil, fmt.Errorf("%w: pulls: pull request #%d has no created_at", domain.ErrQuery, p.GetNumber())
		}
		records = append(records, domain.PullRequestRecord{
			Number:    p.GetNumber(),
			State:     p.GetState(),
			CreatedAt: p.CreatedAt.UTC(),
		})
	}
	return records, nil
}

// FetchIssues returns the repository issues. The endpoint also lists pull requests,
// and they are kept.
func (g *GitHubGateway) FetchIssues(ctx context.Context, state, sortBy string) ([]domain.IssueRecord, error) {
	opts := &github.IssueListByRepoOptions{State: state, Sort: sortBy}

	issues, err := collectPages(ctx, g, "issues", 0, func(ctx context.Context, lo github.ListOptions) ([]*github.Issue, *github.Response, error) {
		opts.ListOptions = lo
		return g.restClient.Issues.ListByRepo(ctx, g.repo.Owner, g.repo.Project, opts)
	})
	if err != nil {
		return nil, err
	}

	records := make([]domain.IssueRecord, 0, len(issues))
	for _, i := range issues {
		if i.CreatedAt == nil {
			return nil, fmt.Errorf("%w: issues: issue #%d has no created_at", domain.ErrQuery, i.GetNumber())
		}
		records = append(records, domain.IssueRecord{
			Number:    i.GetNumber(),
			State:     i.GetState(),
			CreatedAt: i.CreatedAt.UTC(),
		})
	}
	return records, nil
}
