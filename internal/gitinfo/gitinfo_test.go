package gitinfo

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"
)

func initRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	dir := t.TempDir()
	run := func(args ...string) {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		cmd.Env = append(cmd.Env,
			"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
			"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com",
			"HOME=/tmp",
		)
		require.NoError(t, cmd.Run(), "git %v", args)
	}
	run("init", "-b", "main")
	run("commit", "--allow-empty", "-m", "initial")
	run("remote", "add", "origin", "https://example.test/repo.git")
	return dir
}

func TestProbeReadsCommitAndBranch(t *testing.T) {
	dir := initRepo(t)

	url, kind, commit, branch, err := New().Probe(context.Background(), dir)
	require.NoError(t, err)
	require.Equal(t, "git", kind)
	require.Equal(t, "https://example.test/repo.git", url)
	require.Equal(t, "main", branch)
	require.Len(t, commit, 40)
}

func TestProbeNonRepositoryFails(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	dir := t.TempDir()

	_, _, _, _, err := New().Probe(context.Background(), dir)
	require.Error(t, err)
}
