// Package lipgloss provides theme implementations using the Lipgloss styling library.
package lipgloss

import (
	"fmt"
	"strings"

	"github.com/fwojciec/diffcard"
)

// Compile-time interface verification.
var _ diffcard.Theme = (*Theme)(nil)

// Theme implements diffcard.Theme with Lipgloss-compatible colors.
type Theme struct {
	styles  diffcard.Styles
	palette diffcard.Palette
}

// Styles returns the color styles for this theme.
func (t *Theme) Styles() diffcard.Styles {
	return t.styles
}

// Palette returns the semantic color palette for this theme.
func (t *Theme) Palette() diffcard.Palette {
	return t.palette
}

// DefaultTheme returns the default theme (dark background optimized).
func DefaultTheme() *Theme {
	return DarkTheme()
}

// ThemeByName returns the theme called name ("dark" or "light").
func ThemeByName(name string) (*Theme, error) {
	switch strings.ToLower(name) {
	case "", "dark":
		return DarkTheme(), nil
	case "light":
		return LightTheme(), nil
	default:
		return nil, fmt.Errorf("unknown theme %q (want dark or light)", name)
	}
}

// DarkTheme returns a theme for dark terminals modeled on a zinc card surface.
// Diff backgrounds stay very dark so syntax colors remain readable.
func DarkTheme() *Theme {
	p := diffcard.Palette{
		Background: "#27272a", // zinc-800
		Foreground: "#f3f4f6", // gray-100

		Added:    "#a6e3a1",
		Deleted:  "#f38ba8",
		Modified: "#f9e2af",
		Context:  "#9ca3af", // gray-400

		Keyword:     "#cba6f7",
		String:      "#a6e3a1",
		Number:      "#fab387",
		Comment:     "#6c7086",
		Operator:    "#89dceb",
		Function:    "#89b4fa",
		Type:        "#f9e2af",
		Constant:    "#fab387",
		Punctuation: "#9399b2",

		UIBackground: "#3f3f46", // zinc-700
		UIForeground: "#d1d5db",
		UIAccent:     "#16a34a", // green-600
	}
	return &Theme{
		palette: p,
		styles: diffcard.Styles{
			Added:            diffcard.ColorPair{Foreground: "#a6e3a1", Background: "#004000"},
			Deleted:          diffcard.ColorPair{Foreground: "#f38ba8", Background: "#3f0001"},
			Context:          diffcard.ColorPair{Foreground: string(p.Context)},
			HunkHeader:       diffcard.ColorPair{Foreground: "#89b4fa"},
			FileHeader:       diffcard.ColorPair{Foreground: "#f9e2af", Background: "#313244"},
			LineNumber:       diffcard.ColorPair{Foreground: "#6c7086"},
			AddedGutter:      diffcard.ColorPair{Foreground: "#a6e3a1", Background: "#002800"},
			DeletedGutter:    diffcard.ColorPair{Foreground: "#f38ba8", Background: "#2a0001"},
			AddedHighlight:   diffcard.ColorPair{Foreground: "#1e1e2e", Background: "#a6e3a1"},
			DeletedHighlight: diffcard.ColorPair{Foreground: "#1e1e2e", Background: "#f38ba8"},

			Title:       diffcard.ColorPair{Foreground: string(p.Foreground)},
			ActiveTab:   diffcard.ColorPair{Foreground: "#ffffff", Background: string(p.UIBackground)},
			InactiveTab: diffcard.ColorPair{Foreground: string(p.Context)},
			Description: diffcard.ColorPair{Foreground: string(p.Context)},
			StatValue:   diffcard.ColorPair{Foreground: string(p.Foreground)},
			StatLabel:   diffcard.ColorPair{Foreground: string(p.Context)},
			Button:      diffcard.ColorPair{Foreground: "#ffffff", Background: string(p.UIAccent)},
		},
	}
}

// LightTheme returns a theme optimized for light terminal backgrounds.
func LightTheme() *Theme {
	p := diffcard.Palette{
		Background: "#f4f4f5", // zinc-100
		Foreground: "#27272a",

		Added:    "#40a02b",
		Deleted:  "#d20f39",
		Modified: "#df8e1d",
		Context:  "#71717a", // zinc-500

		Keyword:     "#8839ef",
		String:      "#40a02b",
		Number:      "#fe640b",
		Comment:     "#9ca0b0",
		Operator:    "#04a5e5",
		Function:    "#1e66f5",
		Type:        "#df8e1d",
		Constant:    "#fe640b",
		Punctuation: "#6c6f85",

		UIBackground: "#e4e4e7", // zinc-200
		UIForeground: "#52525b",
		UIAccent:     "#16a34a",
	}
	return &Theme{
		palette: p,
		styles: diffcard.Styles{
			Added:            diffcard.ColorPair{Foreground: "#40a02b", Background: "#d4f4d4"},
			Deleted:          diffcard.ColorPair{Foreground: "#d20f39", Background: "#f4d4d4"},
			Context:          diffcard.ColorPair{Foreground: string(p.Context)},
			HunkHeader:       diffcard.ColorPair{Foreground: "#1e66f5"},
			FileHeader:       diffcard.ColorPair{Foreground: "#df8e1d", Background: "#e6e9ef"},
			LineNumber:       diffcard.ColorPair{Foreground: "#9ca0b0"},
			AddedGutter:      diffcard.ColorPair{Foreground: "#40a02b", Background: "#e3f7e3"},
			DeletedGutter:    diffcard.ColorPair{Foreground: "#d20f39", Background: "#f7e3e3"},
			AddedHighlight:   diffcard.ColorPair{Foreground: "#ffffff", Background: "#40a02b"},
			DeletedHighlight: diffcard.ColorPair{Foreground: "#ffffff", Background: "#d20f39"},

			Title:       diffcard.ColorPair{Foreground: string(p.Foreground)},
			ActiveTab:   diffcard.ColorPair{Foreground: "#18181b", Background: string(p.UIBackground)},
			InactiveTab: diffcard.ColorPair{Foreground: string(p.Context)},
			Description: diffcard.ColorPair{Foreground: string(p.Context)},
			StatValue:   diffcard.ColorPair{Foreground: string(p.Foreground)},
			StatLabel:   diffcard.ColorPair{Foreground: string(p.Context)},
			Button:      diffcard.ColorPair{Foreground: "#ffffff", Background: string(p.UIAccent)},
		},
	}
}
