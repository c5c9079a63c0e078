// Package gitdiff reads unified diff text into diffcard hunks using
// bluekeyes/go-gitdiff.
package gitdiff

import (
	"fmt"
	"io"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
	"github.com/fwojciec/diffcard"
)

// Compile-time interface verification.
var _ diffcard.Parser = (*Parser)(nil)

// Parser parses unified diff content using go-gitdiff.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads diff text and returns one FileDiff per file in it. Binary
// files have no text fragments and come back without hunks.
func (p *Parser) Parse(r io.Reader) (*diffcard.Diff, error) {
	files, _, err := gitdiff.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("gitdiff: %w", err)
	}

	diff := &diffcard.Diff{Files: make([]diffcard.FileDiff, len(files))}
	for i, f := range files {
		fd := diffcard.FileDiff{OldPath: f.OldName, NewPath: f.NewName}
		for _, frag := range f.TextFragments {
			fd.Hunks = append(fd.Hunks, toHunk(frag))
		}
		diff.Files[i] = fd
	}
	return diff, nil
}

// toHunk numbers each fragment line on the side(s) it belongs to.
func toHunk(frag *gitdiff.TextFragment) diffcard.Hunk {
	h := diffcard.Hunk{
		OldStart: int(frag.OldPosition),
		OldCount: int(frag.OldLines),
		NewStart: int(frag.NewPosition),
		NewCount: int(frag.NewLines),
		Section:  frag.Comment,
		Lines:    make([]diffcard.Line, len(frag.Lines)),
	}

	oldNum, newNum := h.OldStart, h.NewStart
	for i, l := range frag.Lines {
		line := diffcard.Line{Content: l.Line, NoNewline: l.NoEOL()}
		if l.Op != gitdiff.OpAdd {
			line.OldLineNum = oldNum
			oldNum++
		}
		if l.Op != gitdiff.OpDelete {
			line.NewLineNum = newNum
			newNum++
		}
		switch l.Op {
		case gitdiff.OpAdd:
			line.Type = diffcard.LineAdded
		case gitdiff.OpDelete:
			line.Type = diffcard.LineDeleted
		default:
			line.Type = diffcard.LineContext
		}
		h.Lines[i] = line
	}
	return h
}
