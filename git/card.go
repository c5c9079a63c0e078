package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/diffcard"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the number of git processes run at once.
const DefaultConcurrency = 8

// OldContents reads every path at rev concurrently. Paths that do not exist
// at rev map to empty content.
func OldContents(ctx context.Context, runner diffcard.GitRunner, repoPath, rev string, paths []string, limit int) (map[string]string, error) {
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	contents := make([]string, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, path := range paths {
		g.Go(func() error {
			content, err := runner.Show(ctx, repoPath, rev, path)
			if err != nil && !errors.Is(err, ErrPathNotFound) {
				return fmt.Errorf("read %s at %s: %w", path, rev, err)
			}
			contents[i] = content
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make(map[string]string, len(paths))
	for i, path := range paths {
		result[path] = contents[i]
	}
	return result, nil
}

// RelPath returns path relative to repoPath when it is absolute and inside
// the repository; other paths are returned cleaned.
func RelPath(repoPath, path string) string {
	if !filepath.IsAbs(path) {
		return filepath.ToSlash(filepath.Clean(path))
	}
	absRepo, err := filepath.Abs(repoPath)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(absRepo, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return filepath.ToSlash(rel)
}

// CardFromJobs builds a card from refactor jobs whose old content is read
// from rev in repoPath. Job paths may be absolute paths inside the
// repository.
func CardFromJobs(ctx context.Context, runner diffcard.GitRunner, repoPath, rev, link string, jobs []diffcard.RefactorJob) (*diffcard.Card, error) {
	if len(jobs) == 0 {
		return nil, diffcard.ErrEmptyCard
	}
	rel := make([]diffcard.RefactorJob, len(jobs))
	paths := make([]string, len(jobs))
	for i, job := range jobs {
		job.Path = RelPath(repoPath, job.Path)
		rel[i] = job
		paths[i] = job.Path
	}
	old, err := OldContents(ctx, runner, repoPath, rev, paths, DefaultConcurrency)
	if err != nil {
		return nil, err
	}
	return diffcard.CardFromJobs(ctx, rel, link, func(_ context.Context, path string) (string, error) {
		return old[path], nil
	})
}

// CardFromWorkingTree builds a card with one comparison per file changed
// between rev and the working tree of repoPath.
func CardFromWorkingTree(ctx context.Context, runner diffcard.GitRunner, repoPath, rev, link string) (*diffcard.Card, error) {
	paths, err := runner.ChangedFiles(ctx, repoPath, rev)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, diffcard.ErrEmptyCard
	}
	old, err := OldContents(ctx, runner, repoPath, rev, paths, DefaultConcurrency)
	if err != nil {
		return nil, err
	}

	card := &diffcard.Card{Link: link, Comparisons: make([]diffcard.Comparison, 0, len(paths))}
	for _, path := range paths {
		data, err := os.ReadFile(filepath.Join(repoPath, filepath.FromSlash(path)))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		card.Comparisons = append(card.Comparisons, diffcard.Comparison{
			ID:  path,
			Old: diffcard.CodeFile{Name: path, Content: old[path]},
			New: diffcard.CodeFile{Name: path, Content: string(data)},
		})
	}
	return card, nil
}
