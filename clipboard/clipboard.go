// Package clipboard provides system clipboard access via atotto/clipboard.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/fwojciec/diffcard"
)

// Ensure System implements the Clipboard interface.
var _ diffcard.Clipboard = (*System)(nil)

// System implements diffcard.Clipboard using the platform clipboard
// (pbcopy, xclip/xsel/wl-copy, or the Windows API).
type System struct {
	write func(string) error
}

// NewSystem returns a clipboard backed by the system clipboard.
func NewSystem() *System {
	return &System{write: clipboard.WriteAll}
}

// NewSystemWithWriter returns a clipboard that writes through write.
func NewSystemWithWriter(write func(string) error) *System {
	return &System{write: write}
}

// Supported reports whether a system clipboard utility is available.
func Supported() bool {
	return !clipboard.Unsupported
}

// Copy writes content to the clipboard.
func (s *System) Copy(content string) error {
	if err := s.write(content); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	return nil
}
