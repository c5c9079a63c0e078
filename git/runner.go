// Package git provides access to git operations via shell commands.
package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/fwojciec/diffcard"
)

// Compile-time interface verification.
var _ diffcard.GitRunner = (*Runner)(nil)

// ErrPathNotFound is returned by Show when the path does not exist at the
// requested revision.
var ErrPathNotFound = errors.New("path not found at revision")

// Runner executes git commands via shell.
type Runner struct{}

// NewRunner creates a new git runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Show returns the content of path at rev. Paths are relative to the
// repository root.
func (r *Runner) Show(ctx context.Context, repoPath, rev, path string) (string, error) {
	args := []string{"-C", repoPath, "show", rev + ":" + path}
	cmd := exec.CommandContext(ctx, "git", args...)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			stderr := strings.TrimSpace(string(exitErr.Stderr))
			if isMissingPath(stderr) {
				return "", fmt.Errorf("%w: %s", ErrPathNotFound, stderr)
			}
			return "", fmt.Errorf("git show failed: %s", stderr)
		}
		return "", fmt.Errorf("git show failed: %w", err)
	}
	return string(output), nil
}

// ChangedFiles returns the paths that differ between rev and the working
// tree, relative to the repository root.
func (r *Runner) ChangedFiles(ctx context.Context, repoPath, rev string) ([]string, error) {
	args := []string{"-C", repoPath, "diff", "--name-only", "-z", rev, "--"}
	cmd := exec.CommandContext(ctx, "git", args...)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("git diff failed: %s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("git diff failed: %w", err)
	}

	var paths []string
	for _, p := range strings.Split(string(output), "\x00") {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths, nil
}

func isMissingPath(stderr string) bool {
	return strings.Contains(stderr, "does not exist in") ||
		strings.Contains(stderr, "exists on disk, but not in")
}
