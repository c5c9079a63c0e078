package mock

import (
	"context"

	"github.com/fwojciec/diffcard"
)

// Compile-time interface verification.
var _ diffcard.GitRunner = (*GitRunner)(nil)

// GitRunner is a mock implementation of diffcard.GitRunner.
type GitRunner struct {
	ShowFn         func(ctx context.Context, repoPath, rev, path string) (string, error)
	ChangedFilesFn func(ctx context.Context, repoPath, rev string) ([]string, error)
}

func (g *GitRunner) Show(ctx context.Context, repoPath, rev, path string) (string, error) {
	return g.ShowFn(ctx, repoPath, rev, path)
}

func (g *GitRunner) ChangedFiles(ctx context.Context, repoPath, rev string) ([]string, error) {
	return g.ChangedFilesFn(ctx, repoPath, rev)
}
