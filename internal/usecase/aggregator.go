package usecase

import (
	"sort"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/naka-gawa/repo-analyzer/internal/domain"
	"github.com/naka-gawa/repo-analyzer/internal/gateway"
)

// rankCommits counts commits per author login. Commits without an author are
// skipped. Equal counts keep first-seen order.
func rankCommits(commits []domain.CommitRecord) []domain.ContributorCount {
	index := make(map[string]int)
	var entries []domain.ContributorCount

	for _, c := range commits {
		if !c.HasAuthor {
			continue
		}
		i, ok := index[c.AuthorLogin]
		if !ok {
			i = len(entries)
			index[c.AuthorLogin] = i
			entries = append(entries, domain.ContributorCount{Login: c.AuthorLogin})
		}
		entries[i].Commits++
	}

	sortByCommits(entries)
	return entries
}

// rankContributors turns contributors endpoint rows into ranking entries.
// Anonymous rows are keyed by e-mail, or by name when the e-mail is missing.
func rankContributors(records []domain.ContributorRecord) []domain.ContributorCount {
	entries := make([]domain.ContributorCount, 0, len(records))
	for _, r := range records {
		login := r.Login
		if login == "" {
			login = r.Email
		}
		if login == "" {
			login = r.Name
		}
		entries = append(entries, domain.ContributorCount{Login: login, Commits: r.Contributions})
	}

	sortByCommits(entries)
	return entries
}

func sortByCommits(entries []domain.ContributorCount) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Commits > entries[j].Commits
	})
}

// newRanking computes the distribution over all entries, then keeps the first
// limit of them when limit is nonzero.
func newRanking(entries []domain.ContributorCount, limit int) domain.ContributorRanking {
	ranking := domain.ContributorRanking{
		Entries:      entries,
		Distribution: distribution(entries),
	}
	if ranking.Entries == nil {
		ranking.Entries = []domain.ContributorCount{}
	}
	if limit > 0 && len(ranking.Entries) > limit {
		ranking.Entries = ranking.Entries[:limit]
	}
	return ranking
}

func distribution(entries []domain.ContributorCount) domain.CommitDistribution {
	if len(entries) == 0 {
		return domain.CommitDistribution{}
	}

	data := make(stats.Float64Data, 0, len(entries))
	total := 0
	for _, e := range entries {
		data = append(data, float64(e.Commits))
		total += e.Commits
	}
	// Both only fail on empty input, which is ruled out above.
	mean, _ := data.Mean()
	median, _ := data.Median()

	return domain.CommitDistribution{
		Contributors: len(entries),
		TotalCommits: total,
		Mean:         mean,
		Median:       median,
	}
}

// summarize counts in-window records as opened or closed. An open record created
// before deadline is also counted as stale.
func summarize[T domain.Activity](records []T, window domain.DateWindow, deadline time.Time) domain.ActivitySummary {
	var summary domain.ActivitySummary
	for _, r := range records {
		created := r.Created()
		if !window.Contains(created) {
			continue
		}
		if r.ActivityState() == gateway.StateOpen {
			summary.Opened++
			if created.Before(deadline) {
				summary.Stale++
			}
			continue
		}
		summary.Closed++
	}
	return summary
}
