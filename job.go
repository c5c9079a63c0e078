package diffcard

import "context"

// RefactorJob is one rewritten file produced by an automated refactoring run.
// Path is relative to the repository root.
type RefactorJob struct {
	Path       string `json:"path"`
	NewContent string `json:"new_content"`
	Comments   string `json:"comments"`
}

// JobLoader loads refactor jobs from a source (a JSONL file, usually).
type JobLoader interface {
	Load(path string) ([]RefactorJob, error)
}

// CardFromJobs builds a card from refactor jobs. The old side of each
// comparison is read through oldContent; the job's comments become the
// description shown above the diff.
func CardFromJobs(ctx context.Context, jobs []RefactorJob, link string, oldContent func(ctx context.Context, path string) (string, error)) (*Card, error) {
	if len(jobs) == 0 {
		return nil, ErrEmptyCard
	}
	card := &Card{
		Comparisons: make([]Comparison, 0, len(jobs)),
		Link:        link,
	}
	for _, job := range jobs {
		old, err := oldContent(ctx, job.Path)
		if err != nil {
			return nil, err
		}
		card.Comparisons = append(card.Comparisons, Comparison{
			ID:  job.Path,
			Old: CodeFile{Name: job.Path, Content: old, Description: job.Comments},
			New: CodeFile{Name: job.Path, Content: job.NewContent, Description: job.Comments},
		})
	}
	return card, nil
}
