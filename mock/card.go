package mock

import (
	"context"
	"sync"

	"github.com/fwojciec/diffcard"
)

// Compile-time interface verification.
var (
	_ diffcard.CardLoader  = (*CardLoader)(nil)
	_ diffcard.JobLoader   = (*JobLoader)(nil)
	_ diffcard.LinkOpener  = (*LinkOpener)(nil)
	_ diffcard.Clipboard   = (*Clipboard)(nil)
	_ diffcard.Describer   = (*Describer)(nil)
	_ diffcard.CardWatcher = (*CardWatcher)(nil)
	_ diffcard.Viewer      = (*Viewer)(nil)
)

// CardLoader is a mock implementation of diffcard.CardLoader.
type CardLoader struct {
	LoadFn func(ctx context.Context, source string) (*diffcard.Card, error)
}

func (l *CardLoader) Load(ctx context.Context, source string) (*diffcard.Card, error) {
	return l.LoadFn(ctx, source)
}

// JobLoader is a mock implementation of diffcard.JobLoader.
type JobLoader struct {
	LoadFn func(path string) ([]diffcard.RefactorJob, error)
}

func (l *JobLoader) Load(path string) ([]diffcard.RefactorJob, error) {
	return l.LoadFn(path)
}

// LinkOpener is a mock implementation of diffcard.LinkOpener.
// It records every link it is asked to open.
type LinkOpener struct {
	OpenFn func(ctx context.Context, link string) error

	mu     sync.Mutex
	opened []string
}

func (o *LinkOpener) Open(ctx context.Context, link string) error {
	o.mu.Lock()
	o.opened = append(o.opened, link)
	o.mu.Unlock()
	if o.OpenFn == nil {
		return nil
	}
	return o.OpenFn(ctx, link)
}

// Opened returns the links passed to Open, in call order.
func (o *LinkOpener) Opened() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.opened...)
}

// Clipboard is a mock implementation of diffcard.Clipboard.
type Clipboard struct {
	CopyFn func(content string) error
}

func (c *Clipboard) Copy(content string) error {
	return c.CopyFn(content)
}

// Describer is a mock implementation of diffcard.Describer.
type Describer struct {
	DescribeFn func(ctx context.Context, c diffcard.Comparison) (string, error)
}

func (d *Describer) Describe(ctx context.Context, c diffcard.Comparison) (string, error) {
	return d.DescribeFn(ctx, c)
}

// CardWatcher is a mock implementation of diffcard.CardWatcher.
type CardWatcher struct {
	WatchFn func(ctx context.Context, source string, fn func(*diffcard.Card, error)) error
}

func (w *CardWatcher) Watch(ctx context.Context, source string, fn func(*diffcard.Card, error)) error {
	return w.WatchFn(ctx, source, fn)
}

// Viewer is a mock implementation of diffcard.Viewer.
type Viewer struct {
	ViewFn func(ctx context.Context, card *diffcard.Card) error
}

func (v *Viewer) View(ctx context.Context, card *diffcard.Card) error {
	return v.ViewFn(ctx, card)
}
