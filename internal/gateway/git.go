package gateway

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Git runs the two repository operations the corpus needs.
type Git interface {
	// Clone clones url into a new directory inside parentDir.
	Clone(ctx context.Context, url, parentDir string) error
	// Pull updates the working copy in dir.
	Pull(ctx context.Context, dir string) error
}

// GitCLI implements Git by running the git binary.
type GitCLI struct {
	binary string
}

// NewGitCLI creates a runner for the given git binary.
func NewGitCLI(binary string) *GitCLI {
	if binary == "" {
		binary = "git"
	}

	return &GitCLI{binary: binary}
}

// Clone implements Git.
func (g *GitCLI) Clone(ctx context.Context, url, parentDir string) error {
	return g.run(ctx, parentDir, "clone", url)
}

// Pull implements Git.
func (g *GitCLI) Pull(ctx context.Context, dir string) error {
	return g.run(ctx, dir, "pull")
}

func (g *GitCLI) run(ctx context.Context, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, g.binary, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}

	return nil
}

// ExitCode extracts the process exit code from a Git error, or -1 when the
// command never produced one.
func ExitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}

	return -1
}
