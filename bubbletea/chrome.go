package bubbletea

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/fwojciec/diffcard"
)

const (
	cardTitle        = "Code Changes"
	buttonLabel      = "View Pull Request →"
	shortButtonLabel = "PR →"

	// Tab strip overflow markers, each followed or preceded by a space.
	moreLeft  = "‹ "
	moreRight = " ›"
)

// tabZone is the horizontal extent of a rendered tab, for mouse hit tests.
type tabZone struct {
	start, end int // [start, end) columns
	index      int
}

// tabCellWidth is the rendered width of a tab label including its padding.
func tabCellWidth(label string) int {
	return lipgloss.Width(label) + 2
}

// scrollTabs returns the first visible tab index so that the active tab fits
// in width. offset is the previous first index; the strip only moves as far
// as needed.
func scrollTabs(labels []string, active, offset, width int) int {
	if active < 0 || len(labels) == 0 {
		return 0
	}
	offset = min(max(offset, 0), len(labels)-1)
	if active < offset {
		return active
	}
	fits := func(from int) bool {
		w := 0
		if from > 0 {
			w += lipgloss.Width(moreLeft)
		}
		for i := from; i <= active; i++ {
			w += tabCellWidth(labels[i])
		}
		if active < len(labels)-1 {
			w += lipgloss.Width(moreRight)
		}
		return w <= width
	}
	for offset < active && !fits(offset) {
		offset++
	}
	return offset
}

// layoutTabs places tabs from offset onward and returns their zones.
// The active tab is always placed, even when wider than the strip.
func layoutTabs(labels []string, active, offset, width int) []tabZone {
	var zones []tabZone
	x := 0
	if offset > 0 {
		x = lipgloss.Width(moreLeft)
	}
	for i := offset; i < len(labels); i++ {
		w := tabCellWidth(labels[i])
		reserve := 0
		if i < len(labels)-1 {
			reserve = lipgloss.Width(moreRight)
		}
		if x+w+reserve > width && i != active {
			break
		}
		zones = append(zones, tabZone{start: x, end: x + w, index: i})
		x += w
	}
	return zones
}

// tabAt returns the tab index under column x, or -1.
func tabAt(zones []tabZone, x int) int {
	for _, z := range zones {
		if x >= z.start && x < z.end {
			return z.index
		}
	}
	return -1
}

// renderTabStrip renders the visible tabs with overflow markers.
func renderTabStrip(labels []string, zones []tabZone, active int, styles diffcard.Styles, renderer *lipgloss.Renderer) string {
	activeStyle := styleFromColorPair(styles.ActiveTab, renderer).Bold(true)
	inactiveStyle := styleFromColorPair(styles.InactiveTab, renderer)
	markerStyle := styleFromColorPair(styles.LineNumber, renderer)

	var sb strings.Builder
	if len(zones) > 0 && zones[0].index > 0 {
		sb.WriteString(markerStyle.Render(moreLeft))
	}
	for _, z := range zones {
		cell := " " + labels[z.index] + " "
		if z.index == active {
			sb.WriteString(activeStyle.Render(cell))
		} else {
			sb.WriteString(inactiveStyle.Render(cell))
		}
	}
	if len(zones) > 0 && zones[len(zones)-1].index < len(labels)-1 {
		sb.WriteString(markerStyle.Render(moreRight))
	}
	return sb.String()
}

// renderTitle renders the card title and the position of the active tab.
func renderTitle(active, total, width int, styles diffcard.Styles, renderer *lipgloss.Renderer) string {
	title := styleFromColorPair(styles.Title, renderer).Bold(true).Render(cardTitle)
	if active < 0 {
		return title
	}
	pos := styleFromColorPair(styles.StatLabel, renderer).Render(fmt.Sprintf("%d/%d", active+1, total))
	gap := width - lipgloss.Width(title) - lipgloss.Width(pos)
	if gap < 1 {
		return title
	}
	return title + strings.Repeat(" ", gap) + pos
}

// renderRule renders a full-width horizontal separator.
func renderRule(width int, styles diffcard.Styles, renderer *lipgloss.Renderer) string {
	return styleFromColorPair(styles.LineNumber, renderer).Render(strings.Repeat("─", max(width, 0)))
}

// footerLayout is the rendered footer plus the button's column range.
type footerLayout struct {
	view        string
	buttonStart int
	buttonEnd   int // exclusive; zero when the button is hidden
}

// renderFooter renders the summary stats on the left and the link button on
// the right. The button is omitted when there is no link. On narrow screens
// the button switches to its short label and then truncates the stats, so it
// always ends at the right edge.
func renderFooter(summary diffcard.Summary, link string, width int, styles diffcard.Styles, renderer *lipgloss.Renderer) footerLayout {
	valueStyle := styleFromColorPair(styles.StatValue, renderer).Bold(true)
	labelStyle := styleFromColorPair(styles.StatLabel, renderer)

	stats := valueStyle.Render(fmt.Sprint(summary.FileCount)) + labelStyle.Render(" Files Changed") +
		"   " +
		valueStyle.Render(fmt.Sprint(summary.TotalLines)) + labelStyle.Render(" Lines Written")

	if link == "" {
		return footerLayout{view: stats}
	}

	buttonStyle := styleFromColorPair(styles.Button, renderer).Bold(true)
	button := buttonStyle.Render(" " + buttonLabel + " ")
	if lipgloss.Width(stats)+1+lipgloss.Width(button) > width {
		button = buttonStyle.Render(" " + shortButtonLabel + " ")
	}
	buttonWidth := lipgloss.Width(button)
	if room := width - buttonWidth - 1; lipgloss.Width(stats) > room {
		stats = ansi.Truncate(stats, max(room, 0), "")
	}
	gap := max(width-lipgloss.Width(stats)-buttonWidth, 1)
	start := lipgloss.Width(stats) + gap
	return footerLayout{
		view:        stats + strings.Repeat(" ", gap) + button,
		buttonStart: start,
		buttonEnd:   start + buttonWidth,
	}
}

// renderStatusBar renders a transient status message, or the key help when
// there is none.
func renderStatusBar(status, helpView string, width int, palette diffcard.Palette, renderer *lipgloss.Renderer) string {
	style := newStyle(renderer).
		Background(lipgloss.Color(palette.UIBackground)).
		Foreground(lipgloss.Color(palette.UIForeground))
	content := helpView
	if status != "" {
		content = status
	}
	content = " " + content
	if w := lipgloss.Width(content); w < width {
		content += strings.Repeat(" ", width-w)
	}
	return style.MaxWidth(max(width, 0)).Render(content)
}
