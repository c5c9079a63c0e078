package diffcard

import (
	"context"
	"io"
)

// Diff is parsed unified diff text.
type Diff struct {
	Files []FileDiff
}

// FileDiff is the line diff of one comparison. A FileDiff without hunks
// means both sides are identical.
type FileDiff struct {
	OldPath string
	NewPath string
	Hunks   []Hunk
}

// Stats counts added and deleted lines across all hunks.
func (f FileDiff) Stats() (added, deleted int) {
	for _, hunk := range f.Hunks {
		for _, line := range hunk.Lines {
			switch line.Type {
			case LineAdded:
				added++
			case LineDeleted:
				deleted++
			}
		}
	}
	return added, deleted
}

// Hunk is one "@@ -OldStart,OldCount +NewStart,NewCount @@ Section" block.
type Hunk struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Section  string
	Lines    []Line
}

// Line is one line of a hunk. A line number is zero on the side the line
// does not exist on.
type Line struct {
	Type       LineType
	Content    string
	OldLineNum int
	NewLineNum int

	// NoNewline marks the last line of a side that lacks a final newline.
	NoNewline bool
}

// LineType tells which side(s) a line belongs to.
type LineType int

// Line types.
const (
	LineContext LineType = iota
	LineAdded
	LineDeleted
)

// Segment is a run of a line's text that either changed or did not.
type Segment struct {
	Text    string
	Changed bool
}

// WordDiffer splits a replaced line and its replacement into segments,
// marking the words that differ.
type WordDiffer interface {
	Diff(old, new string) (oldSegs, newSegs []Segment)
}

// Parser parses unified diff text.
type Parser interface {
	Parse(r io.Reader) (*Diff, error)
}

// GitRunner provides the git reads needed to build cards from a repository.
type GitRunner interface {
	// Show returns the content of path at rev.
	Show(ctx context.Context, repoPath, rev, path string) (string, error)
	// ChangedFiles returns the paths that differ between rev and the working tree.
	ChangedFiles(ctx context.Context, repoPath, rev string) ([]string, error)
}
