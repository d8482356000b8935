package usecase

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
)

// SurveyOptions controls one survey run.
type SurveyOptions struct {
	Query string
	// Local analyzes existing working copies without contacting the remote host.
	Local bool
	// MaxRepoCount stops discovery once this many repositories were analyzed.
	MaxRepoCount int
	// Excluded holds repository name suffixes that are neither synchronized nor analyzed.
	Excluded []string
	// PrivateRepos are local project paths analyzed after discovery.
	PrivateRepos []string
}

// Survey is the use case for surveying a discovered corpus.
// It orchestrates discovery, synchronization and analysis.
type Survey struct {
	corpus  *Corpus
	crawler *Crawler
	logger  *slog.Logger
}

// NewSurvey creates a new Survey instance.
func NewSurvey(corpus *Corpus, crawler *Crawler, logger *slog.Logger) *Survey {
	return &Survey{
		corpus:  corpus,
		crawler: crawler,
		logger:  logger,
	}
}

// Run discovers, synchronizes and analyzes repositories, then analyzes the
// private repositories. Results accumulate in the crawler's session.
func (s *Survey) Run(ctx context.Context, opts SurveyOptions) error {
	s.logger.Debug("Usecase: starting survey", "query", opts.Query, "local", opts.Local, "max_repo_count", opts.MaxRepoCount)

	processed := 0

	var analyzeErr error

	err := s.corpus.Update(ctx, opts.Query, opts.Local, Excluded(opts.Excluded), func(path string) bool {
		analyzed, err := s.analyze(ctx, path)
		if err != nil {
			analyzeErr = err
			return false
		}

		if analyzed {
			processed++
		}

		return processed < opts.MaxRepoCount
	})
	if err != nil {
		return err
	}

	if analyzeErr != nil {
		return analyzeErr
	}

	for _, path := range opts.PrivateRepos {
		s.logger.Info("analyzing private repository", "path", path)

		if _, err := s.analyze(ctx, path); err != nil {
			return err
		}
	}

	s.logger.Debug("Usecase: survey finished", "repositories", s.crawler.Session().RepositoriesAnalyzed)

	return nil
}

// analyze runs the crawler on path. A root that is missing or not a
// directory is reported and skipped.
func (s *Survey) analyze(ctx context.Context, path string) (bool, error) {
	err := s.crawler.Analyze(ctx, path)
	if errors.Is(err, ErrNotDirectory) || errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn("skipping project", "path", path, "error", err)
		return false, nil
	}

	return err == nil, err
}
