package bubbletea

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// TabStop is the column distance between tab stops in code panes.
const TabStop = 8

// ExpandTabs replaces each tab with spaces up to the next tab stop. col is
// the display column s starts at; a newline starts again at column zero.
// Wide runes count by their display width.
func ExpandTabs(s string, col int) string {
	if strings.IndexByte(s, '\t') < 0 {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s) + TabStop)
	for _, r := range s {
		switch r {
		case '\t':
			n := TabStop - col%TabStop
			sb.WriteString(strings.Repeat(" ", n))
			col += n
		case '\n':
			sb.WriteRune(r)
			col = 0
		default:
			sb.WriteRune(r)
			col += ansi.StringWidth(string(r))
		}
	}
	return sb.String()
}
