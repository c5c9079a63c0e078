// Package browser opens links with the host's default handler.
package browser

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/fwojciec/diffcard"
	pkgbrowser "github.com/pkg/browser"
)

// Compile-time interface verification.
var _ diffcard.LinkOpener = (*Opener)(nil)

func init() {
	// The handler's output would land on the TUI's screen.
	pkgbrowser.Stdout = io.Discard
	pkgbrowser.Stderr = io.Discard
}

// OpenFunc hands a URL to the platform.
type OpenFunc func(link string) error

// Opener implements diffcard.LinkOpener on github.com/pkg/browser, which
// picks the platform's URL handler.
type Opener struct {
	open OpenFunc
}

// NewOpener creates an Opener for the current platform.
func NewOpener() *Opener {
	return &Opener{open: pkgbrowser.OpenURL}
}

// NewOpenerWithFunc creates an Opener that hands links to open.
func NewOpenerWithFunc(open OpenFunc) *Opener {
	return &Opener{open: open}
}

// Open asks the platform to open link. It returns diffcard.ErrNoLink for an
// empty link and rejects links without a scheme.
func (o *Opener) Open(ctx context.Context, link string) error {
	if link == "" {
		return diffcard.ErrNoLink
	}
	u, err := url.Parse(link)
	if err != nil {
		return fmt.Errorf("browser: parse link: %w", err)
	}
	if u.Scheme == "" {
		return fmt.Errorf("browser: link %q has no scheme", link)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := o.open(link); err != nil {
		return fmt.Errorf("browser: open %s: %w", link, err)
	}
	return nil
}
