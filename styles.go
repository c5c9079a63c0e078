package diffcard

// ColorPair represents a foreground and background color combination.
// Colors should be hex strings in "#RRGGBB" format (e.g., "#ff0000" for red).
// Empty strings are valid and indicate no color override (use terminal default).
type ColorPair struct {
	Foreground string
	Background string
}

// Styles contains color pairs for every visual element of the card.
type Styles struct {
	// Diff panel
	Added            ColorPair // Added lines (+)
	Deleted          ColorPair // Deleted lines (-)
	Context          ColorPair // Unchanged lines
	HunkHeader       ColorPair // @@ ... @@
	FileHeader       ColorPair // ── file ─── +N -M ──
	LineNumber       ColorPair // Gutter for context lines
	AddedGutter      ColorPair // Gutter for added lines
	DeletedGutter    ColorPair // Gutter for deleted lines
	AddedHighlight   ColorPair // Changed text within added lines (word-level diff)
	DeletedHighlight ColorPair // Changed text within deleted lines (word-level diff)

	// Card chrome
	Title       ColorPair // "Code Changes"
	ActiveTab   ColorPair
	InactiveTab ColorPair
	Description ColorPair // Caption above the diff
	StatValue   ColorPair // Footer numbers
	StatLabel   ColorPair // Footer labels
	Button      ColorPair // "View Pull Request"
}

// Color is a hex color string such as "#cdd6f4".
type Color string

// Palette holds semantic colors used for syntax highlighting and UI chrome.
type Palette struct {
	Background Color
	Foreground Color

	Added    Color
	Deleted  Color
	Modified Color
	Context  Color

	Keyword     Color
	String      Color
	Number      Color
	Comment     Color
	Operator    Color
	Function    Color
	Type        Color
	Constant    Color
	Punctuation Color

	UIBackground Color
	UIForeground Color
	UIAccent     Color
}

// Theme provides styles and palette for rendering a card.
// Different implementations can provide light/dark variants.
type Theme interface {
	Styles() Styles
	Palette() Palette
}
