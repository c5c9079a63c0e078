package bubbletea

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the card viewer.
type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding
	GotoTop      key.Binding
	GotoBottom   key.Binding
	NextTab      key.Binding
	PrevTab      key.Binding
	SelectTab    key.Binding
	ToggleLayout key.Binding
	OpenLink     key.Binding
	CopyLink     key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the default vim-style key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "half page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "half page down"),
		),
		GotoTop: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("gg", "top"),
		),
		GotoBottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "bottom"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "]", "l", "right"),
			key.WithHelp("tab/]", "next file"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "[", "h", "left"),
			key.WithHelp("shift+tab/[", "prev file"),
		),
		SelectTab: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "jump to file"),
		),
		ToggleLayout: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "split/unified"),
		),
		OpenLink: key.NewBinding(
			key.WithKeys("o", "enter"),
			key.WithHelp("o", "open link"),
		),
		CopyLink: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy link"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.SelectTab, k.Down, k.ToggleLayout, k.OpenLink, k.CopyLink, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.SelectTab},
		{k.Up, k.Down, k.HalfPageUp, k.HalfPageDown, k.GotoTop, k.GotoBottom},
		{k.ToggleLayout, k.OpenLink, k.CopyLink, k.Quit},
	}
}
