// Package mock provides test doubles for diffcard interfaces.
package mock

import (
	"io"

	"github.com/fwojciec/diffcard"
)

// Compile-time interface verification.
var (
	_ diffcard.Parser   = (*Parser)(nil)
	_ diffcard.Comparer = (*Comparer)(nil)
)

// Parser is a mock implementation of diffcard.Parser.
type Parser struct {
	ParseFn func(r io.Reader) (*diffcard.Diff, error)
}

func (p *Parser) Parse(r io.Reader) (*diffcard.Diff, error) {
	return p.ParseFn(r)
}

// Comparer is a mock implementation of diffcard.Comparer.
type Comparer struct {
	CompareFn func(c diffcard.Comparison) (*diffcard.FileDiff, error)
}

func (c *Comparer) Compare(cmp diffcard.Comparison) (*diffcard.FileDiff, error) {
	return c.CompareFn(cmp)
}
