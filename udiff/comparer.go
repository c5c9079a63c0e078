// Package udiff computes line diffs between the two sides of a comparison
// using aymanbagabas/go-udiff.
package udiff

import (
	"fmt"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	"github.com/fwojciec/diffcard"
)

// Compile-time interface verification.
var _ diffcard.Comparer = (*Comparer)(nil)

// DefaultContextLines is the number of unchanged lines kept around each change.
const DefaultContextLines = udiff.DefaultContextLines

// Comparer turns old/new content into a FileDiff by producing a unified
// diff and handing it to a Parser.
type Comparer struct {
	parser       diffcard.Parser
	contextLines int
}

// NewComparer creates a Comparer. A negative contextLines falls back to
// DefaultContextLines.
func NewComparer(parser diffcard.Parser, contextLines int) *Comparer {
	if contextLines < 0 {
		contextLines = DefaultContextLines
	}
	return &Comparer{parser: parser, contextLines: contextLines}
}

// Compare returns the line diff of c.Old.Content against c.New.Content.
// Identical contents yield a FileDiff without hunks.
func (c *Comparer) Compare(cmp diffcard.Comparison) (*diffcard.FileDiff, error) {
	oldPath := cmp.Old.Name
	newPath := cmp.New.Name
	if newPath == "" {
		newPath = oldPath
	}
	result := &diffcard.FileDiff{OldPath: oldPath, NewPath: newPath}

	edits := udiff.Strings(cmp.Old.Content, cmp.New.Content)
	if len(edits) == 0 {
		return result, nil
	}

	// Fixed labels keep go-gitdiff's header parsing away from names with
	// spaces or quotes; the real paths are set on the result instead.
	unified, err := udiff.ToUnified("a/file", "b/file", cmp.Old.Content, edits, c.contextLines)
	if err != nil {
		return nil, fmt.Errorf("udiff: %s: %w", cmp.Key(), err)
	}
	if unified == "" {
		return result, nil
	}

	diff, err := c.parser.Parse(strings.NewReader("diff --git a/file b/file\n" + unified))
	if err != nil {
		return nil, fmt.Errorf("udiff: parse %s: %w", cmp.Key(), err)
	}
	if len(diff.Files) > 0 {
		result.Hunks = diff.Files[0].Hunks
	}
	return result, nil
}
