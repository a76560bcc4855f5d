package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/naka-gawa/repo-analyzer/internal/domain"
)

const labelWidth = 50

// just left-aligns s, padding it with underscores up to labelWidth.
func just(s string) string {
	if len(s) >= labelWidth {
		return s
	}
	return s + strings.Repeat("_", labelWidth-len(s))
}

func renderText(w io.Writer, r *domain.Report) error {
	var b strings.Builder

	color.New(color.FgCyan, color.Bold).Fprintf(&b, "%s (branch %s)\n\n", r.Repository.FullName(), r.Branch)

	entries := r.Contributors.Entries
	if len(entries) == 0 {
		fmt.Fprintln(&b, "No contributors")
	} else {
		fmt.Fprintf(&b, "Top %d contributors\n", len(entries))
		for _, c := range entries {
			fmt.Fprintln(&b, just(c.Login), c.Commits)
		}
		d := r.Contributors.Distribution
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, just("Total commits:"), d.TotalCommits)
		fmt.Fprintln(&b, just("Contributors:"), d.Contributors)
		fmt.Fprintf(&b, "%s %.1f\n", just("Mean commits per contributor:"), d.Mean)
		fmt.Fprintf(&b, "%s %.1f\n", just("Median commits per contributor:"), d.Median)
	}

	writeSummary(&b, "pull requests", r.PullRequests)
	writeSummary(&b, "issues", r.Issues)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeSummary(b *strings.Builder, noun string, s domain.ActivitySummary) {
	fmt.Fprintln(b)
	fmt.Fprintln(b, just("Number of open "+noun+":"), s.Opened)
	fmt.Fprintln(b, just("Number of closed "+noun+":"), s.Closed)
	fmt.Fprintln(b, just("Number of stale "+noun+":"), s.Stale)
}

func renderJSON(w io.Writer, r *domain.Report) error {
	jsonData, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report to JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(jsonData))
	return err
}
