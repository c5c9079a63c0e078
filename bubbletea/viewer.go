// Package bubbletea provides a terminal UI for code change cards using the
// Bubble Tea framework.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/diffcard"
	dv "github.com/fwojciec/diffcard/lipgloss"
)

// Compile-time interface verification.
var _ diffcard.Viewer = (*Viewer)(nil)

// Viewer implements diffcard.Viewer using a Bubble Tea TUI.
type Viewer struct {
	opts []Option
}

// NewViewer creates a new Viewer. The options apply to every card it shows.
func NewViewer(opts ...Option) *Viewer {
	return &Viewer{opts: opts}
}

// View displays the card and blocks until the user exits or ctx is done.
func (v *Viewer) View(ctx context.Context, card *diffcard.Card) error {
	if err := card.Validate(); err != nil {
		return err
	}
	opts := append([]Option{WithContext(ctx)}, v.opts...)
	m, err := NewCardModel(card, opts...)
	if err != nil {
		return err
	}
	cfg := &modelConfig{}
	for _, opt := range v.opts {
		opt(cfg)
	}
	programOpts := append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	}, cfg.programOpts...)
	p := tea.NewProgram(m, programOpts...)
	_, err = p.Run()
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

func defaultStyles() diffcard.Styles {
	return dv.DefaultTheme().Styles()
}

func defaultPalette() diffcard.Palette {
	return dv.DefaultTheme().Palette()
}
