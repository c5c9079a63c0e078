package bubbletea

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/diffcard"
)

// renderConfig holds everything needed to draw the diff panel of one
// comparison.
type renderConfig struct {
	file       *diffcard.FileDiff
	styles     diffcard.Styles
	renderer   *lipgloss.Renderer
	width      int
	tokens     sideTokens
	wordDiffer diffcard.WordDiffer
}

// minGutterWidth is the minimum width of each line number column.
const minGutterWidth = 4

// sideTokens holds the syntax tokens of every line of both sides of a
// comparison, indexed by line number minus one. Whole files are tokenized so
// that multi-line strings and comments keep their colors inside hunks.
type sideTokens struct {
	old, new [][]diffcard.Token
}

func tokenizeSides(t diffcard.Tokenizer, language string, c diffcard.Comparison) sideTokens {
	if t == nil || language == "" {
		return sideTokens{}
	}
	return sideTokens{
		old: t.TokenizeLines(language, c.Old.Content),
		new: t.TokenizeLines(language, c.New.Content),
	}
}

// forLine returns the tokens of line as it appears on the old or new side,
// or nil when none are known.
func (s sideTokens) forLine(line *diffcard.Line, old bool) []diffcard.Token {
	lines, num := s.new, line.NewLineNum
	if old {
		lines, num = s.old, line.OldLineNum
	}
	if num < 1 || num > len(lines) {
		return nil
	}
	return lines[num-1]
}

// lineLook is the set of styles a line of one type is drawn with.
type lineLook struct {
	colors    diffcard.ColorPair
	text      lipgloss.Style
	gutter    lipgloss.Style
	highlight lipgloss.Style
}

func lookFor(t diffcard.LineType, styles diffcard.Styles, renderer *lipgloss.Renderer) lineLook {
	switch t {
	case diffcard.LineAdded:
		return lineLook{
			colors:    styles.Added,
			text:      styleFromColorPair(styles.Added, renderer),
			gutter:    styleFromColorPair(styles.AddedGutter, renderer),
			highlight: styleFromColorPair(styles.AddedHighlight, renderer),
		}
	case diffcard.LineDeleted:
		return lineLook{
			colors:    styles.Deleted,
			text:      styleFromColorPair(styles.Deleted, renderer),
			gutter:    styleFromColorPair(styles.DeletedGutter, renderer),
			highlight: styleFromColorPair(styles.DeletedHighlight, renderer),
		}
	default:
		text := styleFromColorPair(styles.Context, renderer)
		return lineLook{
			colors:    styles.Context,
			text:      text,
			gutter:    styleFromColorPair(styles.LineNumber, renderer),
			highlight: text,
		}
	}
}

// renderUnified draws the file as one column of lines with an old/new line
// number gutter.
func renderUnified(cfg renderConfig) string {
	file := cfg.file
	if file == nil {
		return ""
	}

	var sb strings.Builder
	if !renderPreamble(&sb, cfg) {
		return sb.String()
	}

	gutterWidth := calculateGutterWidth(file)
	hunkStyle := styleFromColorPair(cfg.styles.HunkHeader, cfg.renderer)
	looks := map[diffcard.LineType]lineLook{}
	// The prefix follows both gutter columns and their separators; the code
	// text starts one column later.
	prefixCol := 2*gutterWidth + 3
	textCol := prefixCol + 1
	codeWidth := cfg.width - prefixCol

	for _, hunk := range file.Hunks {
		sb.WriteString(hunkStyle.Render(formatHunkHeader(hunk)))
		sb.WriteString("\n")

		segments := wordSegments(hunk.Lines, cfg.wordDiffer)
		for i := range hunk.Lines {
			line := &hunk.Lines[i]
			look, ok := looks[line.Type]
			if !ok {
				look = lookFor(line.Type, cfg.styles, cfg.renderer)
				looks[line.Type] = look
			}

			sb.WriteString(formatGutter(line.OldLineNum, line.NewLineNum, gutterWidth, look.gutter))
			sb.WriteString(look.text.Render(" "))

			prefix := linePrefixFor(line.Type)
			var code string
			if segs, ok := segments[line]; ok {
				code = renderLineWithSegments(prefix, segs, textCol, look.text, look.highlight, codeWidth)
			} else if tokens := cfg.tokens.forLine(line, line.Type == diffcard.LineDeleted); tokens != nil {
				code = renderLineWithTokens(prefix, tokens, textCol, look.colors, cfg.renderer, codeWidth)
			} else {
				text := prefix + ExpandTabs(trimEOL(line.Content), textCol)
				if line.Type != diffcard.LineContext {
					text = padLine(text, codeWidth)
				}
				code = look.text.Render(text)
			}
			sb.WriteString(code)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// renderPreamble writes the file header, plus a note when nothing changed.
// It reports whether hunks follow.
func renderPreamble(sb *strings.Builder, cfg renderConfig) bool {
	sb.WriteString(renderFileHeader(cfg.file, cfg.styles, cfg.renderer, cfg.width))
	sb.WriteString("\n")
	if len(cfg.file.Hunks) > 0 {
		return true
	}
	sb.WriteString(styleFromColorPair(cfg.styles.Context, cfg.renderer).Render("(no changes)"))
	sb.WriteString("\n")
	return false
}

// renderFileHeader renders "── path ────────── +N -M ──" across the width.
// Renamed comparisons show "old → new".
func renderFileHeader(file *diffcard.FileDiff, styles diffcard.Styles, renderer *lipgloss.Renderer, width int) string {
	path := file.OldPath
	if file.NewPath != "" && file.NewPath != file.OldPath {
		path = file.OldPath + " → " + file.NewPath
	}
	added, deleted := file.Stats()
	left := "── " + path + " "
	right := fmt.Sprintf(" +%d -%d ──", added, deleted)
	fill := max(width-lipgloss.Width(left)-lipgloss.Width(right), 3)
	return styleFromColorPair(styles.FileHeader, renderer).Render(left + strings.Repeat("─", fill) + right)
}

// wordSegments word-diffs each deleted line against the added line it is
// paired with. Pairs whose text is mostly rewritten are left out, since
// highlighting nearly every word adds nothing.
func wordSegments(lines []diffcard.Line, differ diffcard.WordDiffer) map[*diffcard.Line][]diffcard.Segment {
	if differ == nil {
		return nil
	}
	out := make(map[*diffcard.Line][]diffcard.Segment)
	for _, p := range pairLines(lines) {
		if p.left == nil || p.right == nil || p.left == p.right {
			continue
		}
		oldSegs, newSegs := differ.Diff(trimEOL(p.left.Content), trimEOL(p.right.Content))
		if hasSignificantUnchangedContent(oldSegs) && hasSignificantUnchangedContent(newSegs) {
			out[p.left] = oldSegs
			out[p.right] = newSegs
		}
	}
	return out
}

// hasSignificantUnchangedContent reports whether at least 30% of the text
// is unchanged.
func hasSignificantUnchangedContent(segments []diffcard.Segment) bool {
	var unchanged, total int
	for _, seg := range segments {
		total += len(seg.Text)
		if !seg.Changed {
			unchanged += len(seg.Text)
		}
	}
	return total > 0 && unchanged*10 >= total*3
}

// renderLineWithSegments draws a line with its changed words highlighted,
// padded to width. col is the display column the text starts at.
func renderLineWithSegments(prefix string, segments []diffcard.Segment, col int, base, highlight lipgloss.Style, width int) string {
	var sb strings.Builder
	sb.WriteString(base.Render(prefix))
	used := lipgloss.Width(prefix)
	for _, seg := range segments {
		text := ExpandTabs(seg.Text, col)
		w := lipgloss.Width(text)
		col += w
		used += w
		if seg.Changed {
			sb.WriteString(highlight.Render(text))
		} else {
			sb.WriteString(base.Render(text))
		}
	}
	if used < width {
		sb.WriteString(base.Render(strings.Repeat(" ", width-used)))
	}
	return sb.String()
}

// renderLineWithTokens draws a line in syntax colors over the line's diff
// background. Lines without a background are not padded.
func renderLineWithTokens(prefix string, tokens []diffcard.Token, col int, colors diffcard.ColorPair, renderer *lipgloss.Renderer, width int) string {
	base := styleFromColorPair(colors, renderer)
	var sb strings.Builder
	sb.WriteString(base.Render(prefix))
	used := lipgloss.Width(prefix)
	for _, tok := range tokens {
		text := ExpandTabs(trimEOL(tok.Text), col)
		w := lipgloss.Width(text)
		col += w
		used += w
		sb.WriteString(tokenStyle(tok.Style, colors, renderer).Render(text))
	}
	if colors.Background != "" && used < width {
		sb.WriteString(base.Render(strings.Repeat(" ", width-used)))
	}
	return sb.String()
}

// tokenStyle combines a token's syntax style with the line's colors. The
// line foreground applies only where the token has none.
func tokenStyle(s diffcard.Style, colors diffcard.ColorPair, renderer *lipgloss.Renderer) lipgloss.Style {
	fg := s.Foreground
	if fg == "" {
		fg = colors.Foreground
	}
	style := styleFromColorPair(diffcard.ColorPair{Foreground: fg, Background: colors.Background}, renderer)
	if s.Bold {
		style = style.Bold(true)
	}
	return style
}

// calculateGutterWidth sizes a line number column for the largest line
// number in the file.
func calculateGutterWidth(file *diffcard.FileDiff) int {
	largest := 0
	for _, hunk := range file.Hunks {
		for _, line := range hunk.Lines {
			largest = max(largest, line.OldLineNum, line.NewLineNum)
		}
	}
	return max(digitWidth(largest), minGutterWidth)
}

// formatGutter renders the old and new line numbers; zero renders blank.
func formatGutter(oldNum, newNum, width int, style lipgloss.Style) string {
	return style.Render(formatLineNum(oldNum, width) + " " + formatLineNum(newNum, width) + " ")
}

// formatLineNum right-aligns num in width, or returns blanks for zero.
func formatLineNum(num, width int) string {
	if num == 0 {
		return strings.Repeat(" ", width)
	}
	return fmt.Sprintf("%*d", width, num)
}

// newStyle creates a style bound to renderer, or to the default renderer when nil.
func newStyle(renderer *lipgloss.Renderer) lipgloss.Style {
	if renderer != nil {
		return renderer.NewStyle()
	}
	return lipgloss.NewStyle()
}

// styleFromColorPair creates a lipgloss style from a ColorPair.
func styleFromColorPair(cp diffcard.ColorPair, renderer *lipgloss.Renderer) lipgloss.Style {
	style := newStyle(renderer)
	if cp.Foreground != "" {
		style = style.Foreground(lipgloss.Color(cp.Foreground))
	}
	if cp.Background != "" {
		style = style.Background(lipgloss.Color(cp.Background))
	}
	return style
}

// formatHunkHeader formats a hunk header in standard diff format.
func formatHunkHeader(hunk diffcard.Hunk) string {
	header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", hunk.OldStart, hunk.OldCount, hunk.NewStart, hunk.NewCount)
	if hunk.Section != "" {
		header += " " + hunk.Section
	}
	return header
}

func linePrefixFor(t diffcard.LineType) string {
	switch t {
	case diffcard.LineAdded:
		return "+"
	case diffcard.LineDeleted:
		return "-"
	default:
		return " "
	}
}

// padLine pads line with spaces to width display columns.
func padLine(line string, width int) string {
	if w := lipgloss.Width(line); w < width {
		return line + strings.Repeat(" ", width-w)
	}
	return line
}

func trimEOL(s string) string {
	return strings.TrimSuffix(s, "\n")
}

// digitWidth returns the number of digits needed to display n.
func digitWidth(n int) int {
	return len(fmt.Sprint(max(n, 0)))
}
