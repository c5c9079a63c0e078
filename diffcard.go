// Package diffcard provides domain types for a tabbed before/after code
// changes card: a list of file comparisons, a summary of the changes, and a
// link to where the changes live (usually a pull request).
package diffcard

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrEmptyCard is returned when a card has no comparisons.
	ErrEmptyCard = errors.New("card has no file comparisons")
	// ErrDuplicateKey is returned when two comparisons share a key.
	ErrDuplicateKey = errors.New("duplicate comparison key")
	// ErrNoLink is returned when an action needs a link and the card has none.
	ErrNoLink = errors.New("card has no link")
)

// CodeFile is one version of a source file.
type CodeFile struct {
	Name        string `json:"name" yaml:"name" toml:"name"`
	Content     string `json:"content" yaml:"content" toml:"content"`
	Description string `json:"description" yaml:"description" toml:"description"`
}

// Comparison pairs the before and after versions of one logical file.
type Comparison struct {
	ID  string   `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty"`
	Old CodeFile `json:"old" yaml:"old" toml:"old"`
	New CodeFile `json:"new" yaml:"new" toml:"new"`
}

// Key returns the stable identity of the comparison.
// ID wins when set; otherwise the old file's name is used.
// The new file's name never participates in identity.
func (c Comparison) Key() string {
	if c.ID != "" {
		return c.ID
	}
	return c.Old.Name
}

// Label returns the tab label for the comparison.
func (c Comparison) Label() string {
	return c.Old.Name
}

// Card is the input of the viewer: ordered comparisons plus an external link.
// A card is treated as immutable once handed to a viewer.
type Card struct {
	Comparisons []Comparison `json:"files" yaml:"files" toml:"files"`
	Link        string       `json:"link" yaml:"link" toml:"link"`
}

// Validate reports whether the card can be displayed.
// It returns ErrEmptyCard for an empty card and ErrDuplicateKey when two
// comparisons share a key.
func (c *Card) Validate() error {
	if c == nil || len(c.Comparisons) == 0 {
		return ErrEmptyCard
	}
	seen := make(map[string]int, len(c.Comparisons))
	for i, cmp := range c.Comparisons {
		key := cmp.Key()
		if first, ok := seen[key]; ok {
			return fmt.Errorf("%w: %q at positions %d and %d", ErrDuplicateKey, key, first, i)
		}
		seen[key] = i
	}
	return nil
}

// CardLoader loads a card from a named source (a path, usually).
type CardLoader interface {
	Load(ctx context.Context, source string) (*Card, error)
}

// CardWatcher reloads a card source whenever it changes, calling fn with
// the new card or the load error. Watch blocks until ctx is done.
type CardWatcher interface {
	Watch(ctx context.Context, source string, fn func(*Card, error)) error
}

// Viewer displays a card and blocks until the user exits.
type Viewer interface {
	View(ctx context.Context, card *Card) error
}

// LinkOpener asks the host environment to open a link in a new context.
type LinkOpener interface {
	Open(ctx context.Context, link string) error
}

// Clipboard provides system clipboard access.
type Clipboard interface {
	Copy(content string) error
}

// Comparer computes the line diff between the old and new content of a
// comparison. It returns a FileDiff with no hunks when nothing changed.
type Comparer interface {
	Compare(c Comparison) (*FileDiff, error)
}

// Describer writes a short description of what changed in a comparison.
type Describer interface {
	Describe(ctx context.Context, c Comparison) (string, error)
}
