package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/naka-gawa/ktrawler/internal/config"
	"github.com/naka-gawa/ktrawler/internal/domain"
	"github.com/naka-gawa/ktrawler/internal/gateway"
	"github.com/naka-gawa/ktrawler/internal/syntax/kotlin"
	"github.com/naka-gawa/ktrawler/internal/usecase"
)

// runSurvey discovers, synchronizes and analyzes the corpus, then prints the report.
func runSurvey(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := newLogger(cmd)

	// A .env file is optional; it only provides GITHUB_TOKEN for convenience.
	_ = godotenv.Load()

	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	local, _ := cmd.Flags().GetBool("local")
	statsOnly, _ := cmd.Flags().GetBool("stats-only")
	onlyAnalyze, _ := cmd.Flags().GetBool("only-analyze")
	colored, _ := cmd.Flags().GetBool("color")
	corpusDir := args[0]

	reporter, err := usecase.NewReporter(cfg.Report.Format, colored)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	session := domain.NewSession(statsOnly)
	crawler := usecase.NewCrawler(kotlin.NewParser(), session, cfg.Analysis.TestDataDir, logger)

	if onlyAnalyze {
		err = crawler.Analyze(ctx, corpusDir)
	} else {
		err = survey(ctx, cfg, corpusDir, local, crawler, logger)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := reporter.Write(os.Stdout, session); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write report: %v\n", err)
		os.Exit(1)
	}
}

func survey(ctx context.Context, cfg *config.Config, corpusDir string, local bool, crawler *usecase.Crawler, logger *slog.Logger) error {
	source, err := newRepositorySource(cfg, logger)
	if err != nil {
		return err
	}

	excluded, err := usecase.ReadList(cfg.Analysis.ExcludedReposFile)
	if err != nil {
		return err
	}

	private, err := usecase.ReadList(cfg.Analysis.PrivateReposFile)
	if err != nil {
		return err
	}

	corpus := usecase.NewCorpus(corpusDir, source, gateway.NewGitCLI(cfg.Corpus.GitBinary), usecase.CorpusOptions{
		CloneCooldown:          cfg.Corpus.CloneCooldown,
		UpdateCooldown:         cfg.Corpus.UpdateCooldown,
		ContinueOnCloneFailure: cfg.Corpus.ContinueOnCloneFailure,
	}, logger)

	return usecase.NewSurvey(corpus, crawler, logger).Run(ctx, usecase.SurveyOptions{
		Query:        cfg.GitHub.Query,
		Local:        local,
		MaxRepoCount: cfg.Analysis.MaxRepoCount,
		Excluded:     excluded,
		PrivateRepos: private,
	})
}

// newRepositorySource picks the discovery backend named by github.api.
func newRepositorySource(cfg *config.Config, logger *slog.Logger) (gateway.RepositorySource, error) {
	httpClient, err := gateway.NewHTTPClient(cfg.GitHub.Token)
	if err != nil {
		return nil, err
	}

	if cfg.GitHub.API == config.APIGraphQL {
		return gateway.NewGraphQLSearcher(httpClient, cfg.GitHub.BaseURL, cfg.GitHub.PageSize, logger), nil
	}

	searcher, err := gateway.NewGitHubSearcher(httpClient, cfg.GitHub.BaseURL, cfg.GitHub.PageSize, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub searcher: %w", err)
	}

	return searcher, nil
}
