package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/ktrawler/internal/domain"
)

var testCorpusOptions = CorpusOptions{CloneCooldown: 15 * time.Second, UpdateCooldown: 5 * time.Second}

func TestCorpus_EnsureLocal(t *testing.T) {
	testCases := []struct {
		name        string
		existing    bool
		cloneErr    error
		pullErr     error
		expectOK    bool
		expectSlept []time.Duration
	}{
		{
			name:        "missing copy is cloned into the owner directory",
			expectOK:    true,
			expectSlept: []time.Duration{15 * time.Second},
		},
		{
			name:     "failed clone reports failure without cooldown",
			cloneErr: errors.New("exit status 128"),
			expectOK: false,
		},
		{
			name:        "existing copy is pulled",
			existing:    true,
			expectOK:    true,
			expectSlept: []time.Duration{5 * time.Second},
		},
		{
			name:        "failed pull keeps the stale copy usable",
			existing:    true,
			pullErr:     errors.New("exit status 1"),
			expectOK:    true,
			expectSlept: []time.Duration{5 * time.Second},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// --- Arrange ---
			base := t.TempDir()
			git := new(mockGit)
			corpus := NewCorpus(base, new(mockSource), git, testCorpusOptions, discardLogger)
			slept := recordingSleep(corpus)
			target := repo("jetbrains/kotlin")
			path := filepath.Join(base, "jetbrains", "kotlin")

			if tc.existing {
				require.NoError(t, os.MkdirAll(path, 0o755))
				git.On("Pull", mock.Anything, path).Return(tc.pullErr)
			} else {
				call := git.On("Clone", mock.Anything, target.CloneURL, filepath.Join(base, "jetbrains")).Return(tc.cloneErr)
				if tc.cloneErr == nil {
					call.Run(cloneCreates(t, "kotlin"))
				}
			}

			// --- Act ---
			ok, err := corpus.EnsureLocal(context.Background(), target)

			// --- Assert ---
			require.NoError(t, err)
			assert.Equal(t, tc.expectOK, ok)
			assert.Equal(t, tc.expectSlept, *slept)
			assert.DirExists(t, filepath.Join(base, "jetbrains"))
			if tc.expectOK {
				assert.DirExists(t, path)
			}

			git.AssertExpectations(t)
			if tc.existing {
				git.AssertNotCalled(t, "Clone", mock.Anything, mock.Anything, mock.Anything)
			} else {
				git.AssertNotCalled(t, "Pull", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestCorpus_EnsureLocal_CancelledCooldown(t *testing.T) {
	base := t.TempDir()
	git := new(mockGit)
	git.On("Clone", mock.Anything, mock.Anything, mock.Anything).Return(nil).Run(cloneCreates(t, "b"))

	corpus := NewCorpus(base, new(mockSource), git, testCorpusOptions, discardLogger)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ok, err := corpus.EnsureLocal(ctx, repo("a/b"))
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCorpus_PathTo(t *testing.T) {
	corpus := NewCorpus("/corpus", nil, nil, CorpusOptions{}, discardLogger)
	assert.Equal(t, filepath.Join("/corpus", "square", "okhttp"), corpus.PathTo(repo("square/okhttp")))
}

func TestCorpus_Update(t *testing.T) {
	repos := []domain.RepoDescriptor{repo("a/one"), repo("b/two"), repo("c/three")}

	testCases := []struct {
		name            string
		local           bool
		existing        []string
		failClone       string
		continueOnFail  bool
		excluded        []string
		stopAfter       int
		sourceErr       error
		expectAnalyzed  []string
		expectClones    int
		expectErrSubstr string
	}{
		{
			name:           "every repository is cloned and analyzed",
			expectAnalyzed: []string{"a/one", "b/two", "c/three"},
			expectClones:   3,
		},
		{
			name:           "failed clone stops discovery",
			failClone:      "b/two",
			expectAnalyzed: []string{"a/one"},
			expectClones:   2,
		},
		{
			name:           "failed clone is skipped when configured",
			failClone:      "b/two",
			continueOnFail: true,
			expectAnalyzed: []string{"a/one", "c/three"},
			expectClones:   3,
		},
		{
			name:           "local mode analyzes existing copies only",
			local:          true,
			existing:       []string{"a/one", "c/three"},
			expectAnalyzed: []string{"a/one", "c/three"},
		},
		{
			name:           "excluded repository is neither synchronized nor analyzed",
			excluded:       []string{"two"},
			expectAnalyzed: []string{"a/one", "c/three"},
			expectClones:   2,
		},
		{
			name:           "analysis callback stops discovery",
			stopAfter:      2,
			expectAnalyzed: []string{"a/one", "b/two"},
			expectClones:   2,
		},
		{
			name:            "discovery error is fatal",
			sourceErr:       errors.New("search failed"),
			expectErrSubstr: "failed to discover repositories",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// --- Arrange ---
			base := t.TempDir()
			for _, name := range tc.existing {
				require.NoError(t, os.MkdirAll(filepath.Join(base, filepath.FromSlash(name)), 0o755))
			}

			source := new(mockSource)
			if tc.sourceErr != nil {
				source.On("ForEachRepository", mock.Anything, "language:kotlin").Return(nil, tc.sourceErr)
			} else {
				source.On("ForEachRepository", mock.Anything, "language:kotlin").Return(repos, nil)
			}

			git := new(mockGit)
			for _, r := range repos {
				call := git.On("Clone", mock.Anything, r.CloneURL, filepath.Join(base, r.Owner())).Maybe()
				if r.FullName == tc.failClone {
					call.Return(errors.New("exit status 128"))
				} else {
					call.Return(nil).Run(cloneCreates(t, r.Name()))
				}
			}

			opts := testCorpusOptions
			opts.ContinueOnCloneFailure = tc.continueOnFail
			corpus := NewCorpus(base, source, git, opts, discardLogger)
			recordingSleep(corpus)

			var analyzed []string
			analyze := func(path string) bool {
				rel, err := filepath.Rel(base, path)
				require.NoError(t, err)
				analyzed = append(analyzed, filepath.ToSlash(rel))

				return tc.stopAfter == 0 || len(analyzed) < tc.stopAfter
			}

			// --- Act ---
			err := corpus.Update(context.Background(), "language:kotlin", tc.local, Excluded(tc.excluded), analyze)

			// --- Assert ---
			if tc.expectErrSubstr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectErrSubstr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expectAnalyzed, analyzed)
			git.AssertNumberOfCalls(t, "Clone", tc.expectClones)
			git.AssertNotCalled(t, "Pull", mock.Anything, mock.Anything)
			source.AssertExpectations(t)
		})
	}
}
