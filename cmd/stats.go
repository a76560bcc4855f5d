package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/naka-gawa/repo-analyzer/internal/config"
	"github.com/naka-gawa/repo-analyzer/internal/domain"
	"github.com/naka-gawa/repo-analyzer/internal/gateway"
	"github.com/naka-gawa/repo-analyzer/internal/usecase"
	"github.com/spf13/cobra"
)

const (
	outputText = "text"
	outputJSON = "json"
)

var statsFlags struct {
	dateFrom string
	dateTo   string
	branch   string
	top      int
	lifetime bool
	anon     bool
	output   string
	apiURL   string
	timeout  time.Duration
	envFile  string
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := newLogger(cmd.ErrOrStderr(), verbose)

	if statsFlags.output != outputText && statsFlags.output != outputJSON {
		return fmt.Errorf("%w: unknown output format %q", domain.ErrInput, statsFlags.output)
	}

	// Credentials are checked before anything touches the network.
	cfg, err := config.Load(statsFlags.envFile, os.Getenv)
	if err != nil {
		return err
	}
	cfg.BaseURL = statsFlags.apiURL
	cfg.Timeout = statsFlags.timeout

	connect := func(repo domain.RepositoryIdentity, branch string) (gateway.Fetcher, error) {
		gw, err := gateway.NewGitHubGateway(repo, branch, cfg, logger)
		if err != nil {
			return nil, err
		}
		return gw, nil
	}

	analyzer, err := usecase.NewAnalyzer(usecase.Options{
		RepoURL:  args[0],
		Branch:   statsFlags.branch,
		DateFrom: statsFlags.dateFrom,
		DateTo:   statsFlags.dateTo,
	}, connect, logger)
	if err != nil {
		return err
	}

	report, err := analyzer.Report(ctx, usecase.ReportOptions{
		Top:              statsFlags.top,
		Lifetime:         statsFlags.lifetime,
		IncludeAnonymous: statsFlags.anon,
	})
	if err != nil {
		return err
	}

	if statsFlags.output == outputJSON {
		return renderJSON(cmd.OutOrStdout(), report)
	}
	return renderText(cmd.OutOrStdout(), report)
}

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&statsFlags.dateFrom, "date-from", "s", "", "Start date of the analyzed period (YYYY-MM-DD)")
	f.StringVarP(&statsFlags.dateTo, "date-to", "e", "", "End date of the analyzed period (YYYY-MM-DD)")
	f.StringVarP(&statsFlags.branch, "branch", "b", usecase.DefaultBranch, "Branch pull requests are filtered by")
	f.IntVarP(&statsFlags.top, "top", "n", 30, "Number of contributors to list (0 lists all)")
	f.BoolVar(&statsFlags.lifetime, "lifetime", false, "Rank contributors by all-time contributions instead of commits in the period")
	f.BoolVar(&statsFlags.anon, "anon", false, "Include anonymous contributors (with --lifetime)")
	f.StringVarP(&statsFlags.output, "output", "o", outputText, "Output format: text or json")
	f.StringVar(&statsFlags.apiURL, "api-url", config.DefaultBaseURL, "GitHub REST API base URL")
	f.DurationVar(&statsFlags.timeout, "timeout", config.DefaultTimeout, "Timeout for each API request")
	f.StringVar(&statsFlags.envFile, "env-file", ".env", "Dotenv file with GITHUB_LOGIN and GITHUB_TOKEN, ignored when missing")
}
