package bubbletea

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/fwojciec/diffcard"
)

// linePair is one row of the split layout. A nil side renders blank.
type linePair struct {
	left  *diffcard.Line
	right *diffcard.Line
}

// pairLines pairs deleted lines with the added lines that follow them and
// mirrors context lines to both sides.
func pairLines(lines []diffcard.Line) []linePair {
	var pairs []linePair
	var deleted []*diffcard.Line

	flush := func() {
		for _, d := range deleted {
			pairs = append(pairs, linePair{left: d})
		}
		deleted = nil
	}

	for i := range lines {
		l := &lines[i]
		switch l.Type {
		case diffcard.LineDeleted:
			deleted = append(deleted, l)
		case diffcard.LineAdded:
			if len(deleted) > 0 {
				pairs = append(pairs, linePair{left: deleted[0], right: l})
				deleted = deleted[1:]
			} else {
				pairs = append(pairs, linePair{right: l})
			}
		default:
			flush()
			pairs = append(pairs, linePair{left: l, right: l})
		}
	}
	flush()
	return pairs
}

// splitSeparator divides the before and after panes.
const splitSeparator = "│"

// renderSplit draws the file as before and after panes side by side.
func renderSplit(cfg renderConfig) string {
	file := cfg.file
	if file == nil {
		return ""
	}

	var sb strings.Builder
	if !renderPreamble(&sb, cfg) {
		return sb.String()
	}

	gutterWidth := calculateGutterWidth(file)
	paneWidth := max((cfg.width-lipgloss.Width(splitSeparator))/2, gutterWidth+4)
	hunkStyle := styleFromColorPair(cfg.styles.HunkHeader, cfg.renderer)
	separator := styleFromColorPair(cfg.styles.LineNumber, cfg.renderer).Render(splitSeparator)

	for _, hunk := range file.Hunks {
		sb.WriteString(hunkStyle.Render(formatHunkHeader(hunk)))
		sb.WriteString("\n")
		segments := wordSegments(hunk.Lines, cfg.wordDiffer)
		for _, pair := range pairLines(hunk.Lines) {
			sb.WriteString(renderPane(cfg, pair.left, true, segments, gutterWidth, paneWidth))
			sb.WriteString(separator)
			sb.WriteString(renderPane(cfg, pair.right, false, segments, gutterWidth, paneWidth))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// renderPane draws one side of a split row, clipped and padded to width.
// A nil line leaves the pane blank.
func renderPane(cfg renderConfig, line *diffcard.Line, old bool, segments map[*diffcard.Line][]diffcard.Segment, gutterWidth, width int) string {
	if line == nil {
		return strings.Repeat(" ", width)
	}

	look := lookFor(line.Type, cfg.styles, cfg.renderer)
	num := line.NewLineNum
	if old {
		num = line.OldLineNum
	}
	gutter := look.gutter.Render(formatLineNum(num, gutterWidth) + " ")
	codeWidth := width - gutterWidth - 1

	var code string
	if segs, ok := segments[line]; ok {
		code = renderLineWithSegments("", segs, 0, look.text, look.highlight, 0)
	} else if tokens := cfg.tokens.forLine(line, old); tokens != nil {
		code = renderLineWithTokens("", tokens, 0, look.colors, cfg.renderer, 0)
	} else {
		code = look.text.Render(ExpandTabs(trimEOL(line.Content), 0))
	}

	if lipgloss.Width(code) > codeWidth {
		code = ansi.Truncate(code, codeWidth-1, "") + look.text.Render("…")
	}
	if w := lipgloss.Width(code); w < codeWidth {
		code += look.text.Render(strings.Repeat(" ", codeWidth-w))
	}
	return gutter + code
}
