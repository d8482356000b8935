package usecase

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/ktrawler/internal/domain"
	"github.com/naka-gawa/ktrawler/internal/gateway"
	"github.com/naka-gawa/ktrawler/internal/syntax"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// mockSource is a mock implementation of the gateway.RepositorySource interface.
// It yields the configured repositories until the callback asks it to stop.
type mockSource struct {
	mock.Mock
}

func (m *mockSource) ForEachRepository(ctx context.Context, query string, fn gateway.RepoFunc) error {
	args := m.Called(ctx, query)

	repos, _ := args.Get(0).([]domain.RepoDescriptor)
	for i, repo := range repos {
		if !fn(repo, i+1, len(repos)) {
			break
		}
	}

	return args.Error(1)
}

// mockGit is a mock implementation of the gateway.Git interface.
type mockGit struct {
	mock.Mock
}

func (m *mockGit) Clone(ctx context.Context, url, parentDir string) error {
	return m.Called(ctx, url, parentDir).Error(0)
}

func (m *mockGit) Pull(ctx context.Context, dir string) error {
	return m.Called(ctx, dir).Error(0)
}

// cloneCreates makes a Clone expectation create the working copy the way
// git would.
func cloneCreates(t *testing.T, name string) func(mock.Arguments) {
	return func(args mock.Arguments) {
		require.NoError(t, os.MkdirAll(filepath.Join(args.String(2), name), 0o755))
	}
}

// recordingSleep replaces the corpus cooldown with a recorder.
func recordingSleep(c *Corpus) *[]time.Duration {
	var slept []time.Duration
	c.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}

	return &slept
}

func repo(fullName string) domain.RepoDescriptor {
	return domain.RepoDescriptor{
		FullName: fullName,
		CloneURL: "https://github.com/" + fullName + ".git",
	}
}

// stubParser returns prebuilt trees keyed by file base name.
type stubParser map[string]*syntax.Node

func (p stubParser) Parse(_ context.Context, path string, src []byte) (*syntax.File, error) {
	root, ok := p[filepath.Base(path)]
	if !ok {
		root = syntax.NewNode(syntax.KindFile, 0, 0, len(src))
	}

	return &syntax.File{Path: path, Root: root, Lines: syntax.NewLineIndex(src)}, nil
}

// node builds an in-memory node at offset 0.
func node(kind syntax.Kind, attrs syntax.Attr, children ...*syntax.Node) *syntax.Node {
	return syntax.NewNode(kind, attrs, 0, 0, children...)
}

// nodeAt builds an in-memory node starting at offset.
func nodeAt(offset int, kind syntax.Kind, attrs syntax.Attr, children ...*syntax.Node) *syntax.Node {
	return syntax.NewNode(kind, attrs, offset, offset, children...)
}

func parsedFile(root *syntax.Node, src string) *syntax.File {
	return &syntax.File{Path: "Sample.kt", Root: root, Lines: syntax.NewLineIndex([]byte(src))}
}

// writeFiles creates files below root; keys are slash-separated relative paths.
func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func countLines(report, prefix string) int {
	count := 0
	for _, line := range strings.Split(report, "\n") {
		if strings.HasPrefix(line, prefix) {
			count++
		}
	}

	return count
}

func newSession() *domain.Session {
	return domain.NewSession(false)
}
