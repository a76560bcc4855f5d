package usecase

import (
	"testing"
	"time"

	"github.com/naka-gawa/repo-analyzer/internal/domain"
	"github.com/stretchr/testify/assert"
)

func commit(login string) domain.CommitRecord {
	return domain.CommitRecord{AuthorLogin: login, HasAuthor: true}
}

func TestRankCommits(t *testing.T) {
	testCases := []struct {
		name     string
		commits  []domain.CommitRecord
		expected []domain.ContributorCount
	}{
		{
			name:    "sorted by commit count, highest first",
			commits: []domain.CommitRecord{commit("A"), commit("B"), commit("A"), commit("C"), commit("B"), commit("A")},
			expected: []domain.ContributorCount{
				{Login: "A", Commits: 3},
				{Login: "B", Commits: 2},
				{Login: "C", Commits: 1},
			},
		},
		{
			name:     "commits without an author are skipped",
			commits:  []domain.CommitRecord{{SHA: "x"}, commit("A")},
			expected: []domain.ContributorCount{{Login: "A", Commits: 1}},
		},
		{
			name:    "ties keep first-seen order",
			commits: []domain.CommitRecord{commit("Z"), commit("Y"), commit("X"), commit("Y")},
			expected: []domain.ContributorCount{
				{Login: "Y", Commits: 2},
				{Login: "Z", Commits: 1},
				{Login: "X", Commits: 1},
			},
		},
		{
			name:     "no commits",
			commits:  nil,
			expected: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, rankCommits(tc.commits))
		})
	}
}

func TestRankContributors_AnonymousFallback(t *testing.T) {
	records := []domain.ContributorRecord{
		{Name: "Jane", Contributions: 2},
		{Login: "octocat", Contributions: 10},
		{Email: "anon@example.com", Name: "Anon", Contributions: 5},
	}

	assert.Equal(t, []domain.ContributorCount{
		{Login: "octocat", Commits: 10},
		{Login: "anon@example.com", Commits: 5},
		{Login: "Jane", Commits: 2},
	}, rankContributors(records))
}

func TestNewRanking(t *testing.T) {
	entries := []domain.ContributorCount{
		{Login: "A", Commits: 6},
		{Login: "B", Commits: 3},
		{Login: "C", Commits: 2},
		{Login: "D", Commits: 1},
	}

	ranking := newRanking(entries, 2)

	assert.Equal(t, []domain.ContributorCount{{Login: "A", Commits: 6}, {Login: "B", Commits: 3}}, ranking.Entries)
	assert.Equal(t, domain.CommitDistribution{Contributors: 4, TotalCommits: 12, Mean: 3, Median: 2.5}, ranking.Distribution)

	empty := newRanking(nil, 30)
	assert.Empty(t, empty.Entries)
	assert.NotNil(t, empty.Entries)
	assert.Equal(t, domain.CommitDistribution{}, empty.Distribution)
}

func TestSummarize(t *testing.T) {
	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)
	deadline := now.Add(-30 * 24 * time.Hour)
	day := func(m time.Month, d int) time.Time { return time.Date(2024, m, d, 9, 0, 0, 0, time.UTC) }
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	records := []domain.PullRequestRecord{
		{Number: 1, State: "open", CreatedAt: day(time.March, 10)}, // stale
		{Number: 2, State: "open", CreatedAt: day(time.June, 1)},   // after "to" midnight
		{Number: 3, State: "closed", CreatedAt: day(time.April, 2)},
		{Number: 4, State: "open", CreatedAt: day(time.February, 1)}, // before "from"
		{Number: 5, State: "closed", CreatedAt: day(time.January, 5)},
		{Number: 6, State: "merged", CreatedAt: day(time.May, 20)},
	}

	testCases := []struct {
		name     string
		window   domain.DateWindow
		expected domain.ActivitySummary
	}{
		{
			name:     "open window counts everything",
			expected: domain.ActivitySummary{Opened: 3, Closed: 3, Stale: 2},
		},
		{
			name:     "records outside the window are ignored",
			window:   domain.DateWindow{From: &from, To: &to},
			expected: domain.ActivitySummary{Opened: 1, Closed: 2, Stale: 1},
		},
		{
			name:     "lower bound only",
			window:   domain.DateWindow{From: &from},
			expected: domain.ActivitySummary{Opened: 2, Closed: 2, Stale: 1},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			summary := summarize(records, tc.window, deadline)

			assert.Equal(t, tc.expected, summary)
			assert.LessOrEqual(t, summary.Stale, summary.Opened)

			inWindow := 0
			for _, r := range records {
				if tc.window.Contains(r.CreatedAt) {
					inWindow++
				}
			}
			assert.Equal(t, inWindow, summary.Opened+summary.Closed)
		})
	}
}

func TestSummarize_StaleNeedsOpenState(t *testing.T) {
	deadline := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	old := deadline.Add(-time.Hour)

	issues := []domain.IssueRecord{
		{Number: 1, State: "closed", CreatedAt: old},
		{Number: 2, State: "open", CreatedAt: deadline},
	}

	assert.Equal(t, domain.ActivitySummary{Opened: 1, Closed: 1, Stale: 0}, summarize(issues, domain.DateWindow{}, deadline))
}
