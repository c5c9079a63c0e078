// Package dmp computes word-level diffs using sergi/go-diff's diff-match-patch.
package dmp

import (
	"github.com/fwojciec/diffcard"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Compile-time interface verification.
var _ diffcard.WordDiffer = (*Differ)(nil)

// Differ computes changed spans between a deleted line and its replacement.
type Differ struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

// NewDiffer creates a new Differ.
func NewDiffer() *Differ {
	return &Differ{dmp: diffmatchpatch.New()}
}

// Diff returns segments for both the old and new strings,
// marking which portions changed between them.
func (d *Differ) Diff(old, new string) (oldSegs, newSegs []diffcard.Segment) {
	if old == "" && new == "" {
		return nil, nil
	}
	if old == "" {
		return nil, []diffcard.Segment{{Text: new, Changed: true}}
	}
	if new == "" {
		return []diffcard.Segment{{Text: old, Changed: true}}, nil
	}
	if old == new {
		seg := diffcard.Segment{Text: old}
		return []diffcard.Segment{seg}, []diffcard.Segment{seg}
	}

	diffs := d.dmp.DiffMain(old, new, false)
	// Semantic cleanup widens character-level edits to word boundaries.
	diffs = d.dmp.DiffCleanupSemantic(diffs)

	for _, diff := range diffs {
		switch diff.Type {
		case diffmatchpatch.DiffEqual:
			oldSegs = appendSegment(oldSegs, diff.Text, false)
			newSegs = appendSegment(newSegs, diff.Text, false)
		case diffmatchpatch.DiffDelete:
			oldSegs = appendSegment(oldSegs, diff.Text, true)
		case diffmatchpatch.DiffInsert:
			newSegs = appendSegment(newSegs, diff.Text, true)
		}
	}
	return oldSegs, newSegs
}

// appendSegment adds text to segs, merging it into the last segment when the
// changed flag matches.
func appendSegment(segs []diffcard.Segment, text string, changed bool) []diffcard.Segment {
	if text == "" {
		return segs
	}
	if n := len(segs); n > 0 && segs[n-1].Changed == changed {
		segs[n-1].Text += text
		return segs
	}
	return append(segs, diffcard.Segment{Text: text, Changed: changed})
}
