package gateway

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGitCLI_ExitStatus(t *testing.T) {
	for _, bin := range []string{"true", "false"} {
		if _, err := exec.LookPath(bin); err != nil {
			t.Skipf("%s not available: %v", bin, err)
		}
	}

	testCases := []struct {
		name         string
		binary       string
		expectError  bool
		wantExitCode int
	}{
		{name: "zero exit is success", binary: "true"},
		{name: "non-zero exit is reported", binary: "false", expectError: true, wantExitCode: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			git := NewGitCLI(tc.binary)
			dir := t.TempDir()

			cloneErr := git.Clone(context.Background(), "https://example.com/a/b.git", dir)
			pullErr := git.Pull(context.Background(), dir)

			if tc.expectError {
				require.Error(t, cloneErr)
				require.Error(t, pullErr)
				assert.Contains(t, cloneErr.Error(), "git clone https://example.com/a/b.git")
				assert.Equal(t, tc.wantExitCode, ExitCode(cloneErr))
				assert.Equal(t, tc.wantExitCode, ExitCode(pullErr))
			} else {
				assert.NoError(t, cloneErr)
				assert.NoError(t, pullErr)
			}
		})
	}
}

func TestExitCode_WithoutProcess(t *testing.T) {
	assert.Equal(t, -1, ExitCode(errors.New("boom")))
	assert.Equal(t, "git", NewGitCLI("").binary)
}
