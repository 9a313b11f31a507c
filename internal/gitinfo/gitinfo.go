// Package gitinfo implements ports.SourceControlProber by shelling out
// to the git binary, adapted from the teacher's
// internal/history.ResolveGitMetadata/runGit pair: same "run git, trim
// stdout, empty string on any failure" shape, extended to also resolve
// a remote URL and branch name for the Source vertex.
package gitinfo

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
)

// Prober runs git against a workspace root. The zero value is usable.
type Prober struct{}

// New returns a ready Prober.
func New() Prober {
	return Prober{}
}

// Probe reports workspaceRoot's remote URL, "git", HEAD commit, and
// current branch. If git is missing or HEAD does not resolve to a
// commit (not a repository, no commits yet), the probe fails with an
// error. Once a commit is found, a failing remote or branch lookup (no
// configured remote, detached HEAD) degrades only its own field to the
// empty string rather than failing the whole probe.
func (Prober) Probe(ctx context.Context, workspaceRoot string) (repoURL, kind, commit, branch string, err error) {
	if _, lookErr := exec.LookPath("git"); lookErr != nil {
		return "", "", "", "", errors.New("gitinfo: git not found in PATH")
	}

	commit = runGit(ctx, workspaceRoot, "rev-parse", "HEAD")
	if commit == "" {
		return "", "", "", "", errors.New("gitinfo: " + workspaceRoot + " is not inside a git commit")
	}

	repoURL = runGit(ctx, workspaceRoot, "remote", "get-url", "origin")
	branch = runGit(ctx, workspaceRoot, "rev-parse", "--abbrev-ref", "HEAD")
	if branch == "HEAD" {
		// Detached HEAD (a CI checkout of a tag or bare commit): no
		// branch name exists, so report none rather than the literal
		// "HEAD" sentinel git's own plumbing uses internally.
		branch = ""
	}
	return repoURL, "git", commit, branch, nil
}

func runGit(ctx context.Context, workspaceRoot string, args ...string) string {
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", workspaceRoot}, args...)...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return ""
	}
	return strings.TrimSpace(stdout.String())
}
