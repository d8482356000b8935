// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/naka-gawa/ktrawler/internal/domain"
	"github.com/naka-gawa/ktrawler/internal/gateway"
)

// AnalyzeFunc analyzes one local project and reports whether discovery should go on.
type AnalyzeFunc func(path string) bool

// SkipFunc reports whether a repository is excluded from the survey.
type SkipFunc func(path string) bool

// CorpusOptions tunes how a Corpus talks to the remote host.
type CorpusOptions struct {
	CloneCooldown          time.Duration
	UpdateCooldown         time.Duration
	ContinueOnCloneFailure bool
}

// Corpus keeps one local working copy per discovered repository under baseDir,
// laid out as baseDir/owner/name.
type Corpus struct {
	baseDir string
	source  gateway.RepositorySource
	git     gateway.Git
	opts    CorpusOptions
	logger  *slog.Logger
	sleep   func(ctx context.Context, d time.Duration) error
}

// NewCorpus creates a new Corpus instance.
func NewCorpus(baseDir string, source gateway.RepositorySource, git gateway.Git, opts CorpusOptions, logger *slog.Logger) *Corpus {
	return &Corpus{
		baseDir: baseDir,
		source:  source,
		git:     git,
		opts:    opts,
		logger:  logger,
		sleep:   sleepContext,
	}
}

// PathTo returns where the working copy of repo lives.
func (c *Corpus) PathTo(repo domain.RepoDescriptor) string {
	return filepath.Join(c.baseDir, repo.Owner(), repo.Name())
}

// EnsureLocal clones repo when it has no working copy yet, or pulls it
// otherwise. Only a failed clone reports false; a failed pull leaves the
// previous copy in place.
func (c *Corpus) EnsureLocal(ctx context.Context, repo domain.RepoDescriptor) (bool, error) {
	path := c.PathTo(repo)

	if _, err := os.Stat(path); err == nil {
		c.logger.Info("updating repository", "repo", repo.FullName)

		if err := c.git.Pull(ctx, path); err != nil {
			c.logger.Warn("repository update failed",
				"repo", repo.FullName, "exit_code", gateway.ExitCode(err), "error", err)
		}

		if err := c.sleep(ctx, c.opts.UpdateCooldown); err != nil {
			return false, err
		}

		return true, nil
	}

	ownerDir := filepath.Join(c.baseDir, repo.Owner())
	if err := os.MkdirAll(ownerDir, 0o755); err != nil {
		return false, fmt.Errorf("failed to create owner directory %s: %w", ownerDir, err)
	}

	c.logger.Info("cloning repository", "repo", repo.FullName)

	if err := c.git.Clone(ctx, repo.CloneURL, ownerDir); err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}

		c.logger.Warn("repository clone failed",
			"repo", repo.FullName, "exit_code", gateway.ExitCode(err), "error", err)

		return false, nil
	}

	if err := c.sleep(ctx, c.opts.CloneCooldown); err != nil {
		return false, err
	}

	return true, nil
}

// Update walks every repository matching query, synchronizes it unless local
// is set, and hands its path to analyze. Whatever analyze returns decides
// whether discovery continues. A failed clone stops discovery unless
// ContinueOnCloneFailure is set.
func (c *Corpus) Update(ctx context.Context, query string, local bool, skip SkipFunc, analyze AnalyzeFunc) error {
	var ctxErr error

	err := c.source.ForEachRepository(ctx, query, func(repo domain.RepoDescriptor, index, total int) bool {
		path := c.PathTo(repo)
		c.logger.Info(fmt.Sprintf("[%d/%d]", index, total), "repo", repo.FullName)

		if skip != nil && skip(path) {
			c.logger.Info("skipping excluded repository", "repo", repo.FullName)
			return true
		}

		if local {
			if _, err := os.Stat(path); err != nil {
				c.logger.Info("skipping repository without local copy", "repo", repo.FullName)
				return true
			}

			return analyze(path)
		}

		ok, err := c.EnsureLocal(ctx, repo)
		if err != nil {
			ctxErr = err
			return false
		}

		if !ok {
			return c.opts.ContinueOnCloneFailure
		}

		return analyze(path)
	})
	if err != nil {
		return fmt.Errorf("failed to discover repositories: %w", err)
	}

	return ctxErr
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
