package bubbletea_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/fwojciec/diffcard"
	"github.com/fwojciec/diffcard/bubbletea"
	"github.com/fwojciec/diffcard/gitdiff"
	"github.com/fwojciec/diffcard/mock"
	"github.com/fwojciec/diffcard/udiff"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testLink = "https://example.com/pr/1"

// plainRenderer creates a lipgloss renderer without colors so rendered text
// can be matched verbatim.
func plainRenderer() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	return r
}

// trueColorRenderer creates a lipgloss renderer that outputs true colors.
func trueColorRenderer() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.TrueColor)
	return r
}

func testCard() *diffcard.Card {
	return &diffcard.Card{
		Link: testLink,
		Comparisons: []diffcard.Comparison{
			{
				Old: diffcard.CodeFile{Name: "main.ts", Content: "const a = 1;\n", Description: "Rename the constant."},
				New: diffcard.CodeFile{Name: "main.ts", Content: "const b = 1;\nconst c = 2;\n"},
			},
			{
				Old: diffcard.CodeFile{Name: "foo.ts", Content: "export function foo() {}\n", Description: "Foo returns a marker."},
				New: diffcard.CodeFile{Name: "foo.ts", Content: "export function foo() { return FOO_MARKER; }\n"},
			},
			{
				Old: diffcard.CodeFile{Name: "bar.ts"},
				New: diffcard.CodeFile{Name: "bar.ts", Content: "bar"},
			},
		},
	}
}

func newModel(t *testing.T, card *diffcard.Card, opts ...bubbletea.Option) bubbletea.CardModel {
	t.Helper()
	base := []bubbletea.Option{
		bubbletea.WithRenderer(plainRenderer()),
		bubbletea.WithComparer(udiff.NewComparer(gitdiff.NewParser(), udiff.DefaultContextLines)),
	}
	m, err := bubbletea.NewCardModel(card, append(base, opts...)...)
	require.NoError(t, err)
	return m
}

func update(t *testing.T, m bubbletea.CardModel, msg tea.Msg) (bubbletea.CardModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	cm, ok := next.(bubbletea.CardModel)
	require.True(t, ok)
	return cm, cmd
}

func sized(t *testing.T, m bubbletea.CardModel) bubbletea.CardModel {
	t.Helper()
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

func press(t *testing.T, m bubbletea.CardModel, keys ...tea.KeyMsg) bubbletea.CardModel {
	t.Helper()
	for _, k := range keys {
		m, _ = update(t, m, k)
	}
	return m
}

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func TestNewCardModel(t *testing.T) {
	t.Parallel()

	t.Run("first comparison is active", func(t *testing.T) {
		t.Parallel()

		m := newModel(t, testCard())

		assert.Equal(t, "main.ts", m.ActiveKey())
	})

	t.Run("empty card is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := bubbletea.NewCardModel(&diffcard.Card{})
		require.ErrorIs(t, err, diffcard.ErrEmptyCard)

		_, err = bubbletea.NewCardModel(nil)
		require.ErrorIs(t, err, diffcard.ErrEmptyCard)
	})

	t.Run("no command without card updates", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, newModel(t, testCard()).Init())
	})
}

func TestCardModel_View(t *testing.T) {
	t.Parallel()

	t.Run("loading before first size", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Loading...", newModel(t, testCard()).View())
	})

	t.Run("renders title tabs description diff and footer", func(t *testing.T) {
		t.Parallel()

		view := sized(t, newModel(t, testCard())).View()

		assert.Contains(t, view, "Code Changes")
		assert.Contains(t, view, "1/3")
		assert.Contains(t, view, "main.ts")
		assert.Contains(t, view, "foo.ts")
		assert.Contains(t, view, "bar.ts")
		assert.Contains(t, view, "Rename the constant.")
		assert.Contains(t, view, "-const a = 1;")
		assert.Contains(t, view, "+const b = 1;")
		assert.Contains(t, view, "3 Files Changed")
		assert.Contains(t, view, "6 Lines Written")
		assert.Contains(t, view, "View Pull Request →")
	})

	t.Run("hides button without link", func(t *testing.T) {
		t.Parallel()

		card := testCard()
		card.Link = ""

		view := sized(t, newModel(t, card)).View()

		assert.NotContains(t, view, "View Pull Request")
		assert.Contains(t, view, "3 Files Changed")
	})

	t.Run("identical contents show no changes", func(t *testing.T) {
		t.Parallel()

		card := &diffcard.Card{Comparisons: []diffcard.Comparison{{
			Old: diffcard.CodeFile{Name: "same.go", Content: "package same\n"},
			New: diffcard.CodeFile{Name: "same.go", Content: "package same\n"},
		}}}

		view := sized(t, newModel(t, card)).View()

		assert.Contains(t, view, "(no changes)")
	})

	t.Run("compare failure is shown in the panel", func(t *testing.T) {
		t.Parallel()

		comparer := &mock.Comparer{CompareFn: func(diffcard.Comparison) (*diffcard.FileDiff, error) {
			return nil, errors.New("boom")
		}}

		view := sized(t, newModel(t, testCard(), bubbletea.WithComparer(comparer))).View()

		assert.Contains(t, view, "diff unavailable: boom")
	})

	t.Run("syntax colors reach the output", func(t *testing.T) {
		t.Parallel()

		tok := &mockTokenizer{TokenizeFn: func(_, source string) []diffcard.Token {
			return []diffcard.Token{{Text: source, Style: diffcard.Style{Foreground: "#ff0000"}}}
		}}
		m := newModel(t, testCard(),
			bubbletea.WithRenderer(trueColorRenderer()),
			bubbletea.WithTokenizer(tok),
			bubbletea.WithLanguageDetector(fixedDetector("TypeScript")),
		)

		view := sized(t, m).View()

		assert.Contains(t, view, "\x1b[")
		assert.Contains(t, view, "255;0;0")
	})

	t.Run("markdown descriptions render through glamour", func(t *testing.T) {
		t.Parallel()

		card := testCard()
		card.Comparisons[0].Old.Description = "- item one\n- item two"

		view := sized(t, newModel(t, card, bubbletea.WithMarkdown("ascii"))).View()

		assert.Contains(t, view, "item one")
		assert.Contains(t, view, "item two")
	})

	t.Run("blank description is omitted", func(t *testing.T) {
		t.Parallel()

		card := testCard()
		card.Comparisons[0].Old.Description = "   \n  "

		lines := strings.Split(sized(t, newModel(t, card)).View(), "\n")

		require.Greater(t, len(lines), 3)
		assert.Contains(t, lines[3], "main.ts", "file header should be the first panel line")
	})
}

func TestCardModel_TabSelection(t *testing.T) {
	t.Parallel()

	t.Run("number keys select by position", func(t *testing.T) {
		t.Parallel()

		m := press(t, sized(t, newModel(t, testCard())), runeKey('2'))

		assert.Equal(t, "foo.ts", m.ActiveKey())
		view := m.View()
		assert.Contains(t, view, "FOO_MARKER")
		assert.Contains(t, view, "Foo returns a marker.")
		assert.NotContains(t, view, "Rename the constant.")
	})

	t.Run("out of range number is ignored", func(t *testing.T) {
		t.Parallel()

		m := press(t, sized(t, newModel(t, testCard())), runeKey('9'))

		assert.Equal(t, "main.ts", m.ActiveKey())
	})

	t.Run("selection shows the same panel regardless of history", func(t *testing.T) {
		t.Parallel()

		direct := press(t, sized(t, newModel(t, testCard())), runeKey('2'))
		wandering := press(t, sized(t, newModel(t, testCard())),
			tea.KeyMsg{Type: tea.KeyTab},
			tea.KeyMsg{Type: tea.KeyTab},
			runeKey(']'),
			runeKey('3'),
			tea.KeyMsg{Type: tea.KeyShiftTab},
		)

		assert.Equal(t, "foo.ts", wandering.ActiveKey())
		assert.Equal(t, direct.View(), wandering.View())
	})

	t.Run("next and previous wrap around", func(t *testing.T) {
		t.Parallel()

		m := sized(t, newModel(t, testCard()))

		m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
		assert.Equal(t, "bar.ts", m.ActiveKey())

		m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
		assert.Equal(t, "main.ts", m.ActiveKey())
	})

	t.Run("clicking a tab selects it", func(t *testing.T) {
		t.Parallel()

		m := sized(t, newModel(t, testCard()))
		// " main.ts " spans columns 0-8, " foo.ts " 9-16.
		m, _ = update(t, m, click(10, 1))

		assert.Equal(t, "foo.ts", m.ActiveKey())
	})

	t.Run("clicking outside the tabs does nothing", func(t *testing.T) {
		t.Parallel()

		m := sized(t, newModel(t, testCard()))
		m, _ = update(t, m, click(90, 1))

		assert.Equal(t, "main.ts", m.ActiveKey())
	})

	t.Run("tab strip scrolls to keep the active tab visible", func(t *testing.T) {
		t.Parallel()

		card := &diffcard.Card{}
		for i := 1; i <= 12; i++ {
			name := fmt.Sprintf("file%02d.go", i)
			card.Comparisons = append(card.Comparisons, diffcard.Comparison{
				Old: diffcard.CodeFile{Name: name, Content: "a\n"},
				New: diffcard.CodeFile{Name: name, Content: "b\n"},
			})
		}
		m, _ := update(t, newModel(t, card), tea.WindowSizeMsg{Width: 40, Height: 20})

		tabRow := strings.Split(m.View(), "\n")[1]
		assert.Contains(t, tabRow, "file01.go")
		assert.NotContains(t, tabRow, "file09.go")
		assert.Contains(t, tabRow, "›")

		m = press(t, m, runeKey('9'))

		tabRow = strings.Split(m.View(), "\n")[1]
		assert.Contains(t, tabRow, "file09.go")
		assert.NotContains(t, tabRow, "file01.go")
		assert.Contains(t, tabRow, "‹")
	})

	t.Run("duplicate keys resolve to the first match", func(t *testing.T) {
		t.Parallel()

		card := &diffcard.Card{Comparisons: []diffcard.Comparison{
			{ID: "dup", Old: diffcard.CodeFile{Name: "first.ts", Content: "FIRST_BODY\n"}, New: diffcard.CodeFile{Name: "first.ts"}},
			{ID: "dup", Old: diffcard.CodeFile{Name: "second.ts", Content: "SECOND_BODY\n"}, New: diffcard.CodeFile{Name: "second.ts"}},
		}}

		m := press(t, sized(t, newModel(t, card)), runeKey('2'))

		assert.Equal(t, "dup", m.ActiveKey())
		assert.Contains(t, m.View(), "FIRST_BODY")
		assert.NotContains(t, m.View(), "SECOND_BODY")
	})
}

func TestCardModel_Summary(t *testing.T) {
	t.Parallel()

	t.Run("stays the same across tab changes", func(t *testing.T) {
		t.Parallel()

		m := sized(t, newModel(t, testCard()))
		want := diffcard.Summary{FileCount: 3, TotalLines: 6}
		assert.Equal(t, want, m.Summary())

		m = press(t, m, runeKey('2'), tea.KeyMsg{Type: tea.KeyTab}, runeKey('['))

		assert.Equal(t, want, m.Summary())
		assert.Contains(t, m.View(), "6 Lines Written")
	})

	t.Run("single empty comparison counts one line", func(t *testing.T) {
		t.Parallel()

		card := &diffcard.Card{Link: testLink, Comparisons: []diffcard.Comparison{{
			Old: diffcard.CodeFile{Name: "empty.ts"},
			New: diffcard.CodeFile{Name: "empty.ts"},
		}}}

		m := sized(t, newModel(t, card))

		assert.Equal(t, diffcard.Summary{FileCount: 1, TotalLines: 1}, m.Summary())
		assert.Contains(t, m.View(), "1 Files Changed")
		assert.Contains(t, m.View(), "1 Lines Written")
	})
}

func TestCardModel_OpenLink(t *testing.T) {
	t.Parallel()

	t.Run("issues exactly one open request", func(t *testing.T) {
		t.Parallel()

		opener := &mock.LinkOpener{}
		card := &diffcard.Card{Link: testLink, Comparisons: []diffcard.Comparison{{
			Old: diffcard.CodeFile{Name: "empty.ts"},
			New: diffcard.CodeFile{Name: "empty.ts"},
		}}}
		m := sized(t, newModel(t, card, bubbletea.WithLinkOpener(opener)))

		m, cmd := update(t, m, runeKey('o'))
		require.NotNil(t, cmd)
		m, _ = update(t, m, cmd())

		assert.Equal(t, []string{testLink}, opener.Opened())
		assert.Contains(t, m.Status(), "opened")
	})

	t.Run("passes the viewer context", func(t *testing.T) {
		t.Parallel()

		type ctxKey struct{}
		ctx := context.WithValue(context.Background(), ctxKey{}, "marker")
		var got any
		opener := &mock.LinkOpener{OpenFn: func(ctx context.Context, _ string) error {
			got = ctx.Value(ctxKey{})
			return nil
		}}
		m := sized(t, newModel(t, testCard(), bubbletea.WithLinkOpener(opener), bubbletea.WithContext(ctx)))

		_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
		require.NotNil(t, cmd)
		cmd()

		assert.Equal(t, "marker", got)
	})

	t.Run("clicking the button opens the link", func(t *testing.T) {
		t.Parallel()

		opener := &mock.LinkOpener{}
		m := sized(t, newModel(t, testCard(), bubbletea.WithLinkOpener(opener)))
		// Footer sits below the panel: 3 header rows + 24 panel rows + rule.
		_, cmd := update(t, m, click(99, 28))
		require.NotNil(t, cmd)
		cmd()

		assert.Equal(t, []string{testLink}, opener.Opened())
	})

	t.Run("narrow footer keeps the button on screen", func(t *testing.T) {
		t.Parallel()

		opener := &mock.LinkOpener{}
		m := newModel(t, testCard(), bubbletea.WithLinkOpener(opener))
		m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 30})

		var footer string
		for _, line := range strings.Split(m.View(), "\n") {
			if strings.Contains(line, "Files Changed") {
				footer = line
			}
		}
		assert.Equal(t, 40, lipgloss.Width(footer))
		assert.True(t, strings.HasSuffix(strings.TrimRight(footer, " "), "PR →"), "footer: %q", footer)

		_, cmd := update(t, m, click(39, 28))
		require.NotNil(t, cmd)
		cmd()

		assert.Equal(t, []string{testLink}, opener.Opened())
	})

	t.Run("failure is reported in the status line only", func(t *testing.T) {
		t.Parallel()

		opener := &mock.LinkOpener{OpenFn: func(context.Context, string) error {
			return errors.New("no browser")
		}}
		m := sized(t, newModel(t, testCard(), bubbletea.WithLinkOpener(opener)))

		m, cmd := update(t, m, runeKey('o'))
		require.NotNil(t, cmd)
		m, next := update(t, m, cmd())

		assert.Nil(t, next)
		assert.Contains(t, m.Status(), "no browser")
		assert.Contains(t, m.View(), "no browser")

		m = press(t, m, runeKey('j'))
		assert.Empty(t, m.Status(), "status clears on the next key")
	})

	t.Run("empty link does nothing", func(t *testing.T) {
		t.Parallel()

		opener := &mock.LinkOpener{}
		card := testCard()
		card.Link = ""
		m := sized(t, newModel(t, card, bubbletea.WithLinkOpener(opener)))

		m, cmd := update(t, m, runeKey('o'))

		assert.Nil(t, cmd)
		assert.Empty(t, opener.Opened())
		assert.Equal(t, diffcard.ErrNoLink.Error(), m.Status())
	})
}

func TestCardModel_CopyLink(t *testing.T) {
	t.Parallel()

	t.Run("copies the link", func(t *testing.T) {
		t.Parallel()

		var copied string
		cb := &mock.Clipboard{CopyFn: func(content string) error {
			copied = content
			return nil
		}}
		m := sized(t, newModel(t, testCard(), bubbletea.WithClipboard(cb)))

		m, cmd := update(t, m, runeKey('y'))
		require.NotNil(t, cmd)
		m, _ = update(t, m, cmd())

		assert.Equal(t, testLink, copied)
		assert.Equal(t, "link copied", m.Status())
	})

	t.Run("reports clipboard errors", func(t *testing.T) {
		t.Parallel()

		cb := &mock.Clipboard{CopyFn: func(string) error {
			return errors.New("no clipboard utility")
		}}
		m := sized(t, newModel(t, testCard(), bubbletea.WithClipboard(cb)))

		m, cmd := update(t, m, runeKey('y'))
		require.NotNil(t, cmd)
		m, _ = update(t, m, cmd())

		assert.Contains(t, m.Status(), "no clipboard utility")
	})
}

func TestCardModel_Layout(t *testing.T) {
	t.Parallel()

	t.Run("toggles between unified and split", func(t *testing.T) {
		t.Parallel()

		m := sized(t, newModel(t, testCard()))
		assert.Equal(t, bubbletea.LayoutUnified, m.Layout())
		assert.NotContains(t, m.View(), "│")

		m = press(t, m, runeKey('v'))
		assert.Equal(t, bubbletea.LayoutSplit, m.Layout())
		assert.Contains(t, m.View(), "│")

		m = press(t, m, runeKey('v'))
		assert.Equal(t, bubbletea.LayoutUnified, m.Layout())
	})

	t.Run("split pairs old and new lines on one row", func(t *testing.T) {
		t.Parallel()

		m := sized(t, newModel(t, testCard(), bubbletea.WithLayout(bubbletea.LayoutSplit)))

		var row string
		for _, line := range strings.Split(m.View(), "\n") {
			if strings.Contains(line, "const a = 1;") {
				row = line
			}
		}
		require.NotEmpty(t, row)
		assert.Contains(t, row, "const b = 1;")
		assert.Contains(t, row, "│")
	})

	t.Run("parses names", func(t *testing.T) {
		t.Parallel()

		l, err := bubbletea.ParseLayout("split")
		require.NoError(t, err)
		assert.Equal(t, bubbletea.LayoutSplit, l)
		assert.Equal(t, "split", l.String())

		l, err = bubbletea.ParseLayout("")
		require.NoError(t, err)
		assert.Equal(t, bubbletea.LayoutUnified, l)

		_, err = bubbletea.ParseLayout("diagonal")
		assert.ErrorContains(t, err, "diagonal")
	})
}

func TestCardModel_Reload(t *testing.T) {
	t.Parallel()

	t.Run("keeps the active key when still present", func(t *testing.T) {
		t.Parallel()

		m := press(t, sized(t, newModel(t, testCard())), runeKey('2'))
		card := testCard()
		card.Comparisons = card.Comparisons[1:]

		m, _ = update(t, m, bubbletea.CardMsg{Card: card})

		assert.Equal(t, "foo.ts", m.ActiveKey())
		assert.Equal(t, diffcard.Summary{FileCount: 2, TotalLines: 3}, m.Summary())
		assert.Equal(t, "card reloaded", m.Status())
	})

	t.Run("falls back to the first comparison", func(t *testing.T) {
		t.Parallel()

		m := press(t, sized(t, newModel(t, testCard())), runeKey('2'))
		card := testCard()
		card.Comparisons = card.Comparisons[2:]

		m, _ = update(t, m, bubbletea.CardMsg{Card: card})

		assert.Equal(t, "bar.ts", m.ActiveKey())
	})

	t.Run("replaced content is rendered", func(t *testing.T) {
		t.Parallel()

		m := sized(t, newModel(t, testCard()))
		card := testCard()
		card.Comparisons[0].New.Content = "const RELOADED = 1;\n"

		m, _ = update(t, m, bubbletea.CardMsg{Card: card})

		assert.Contains(t, m.View(), "RELOADED")
	})

	t.Run("rejects failed and invalid reloads", func(t *testing.T) {
		t.Parallel()

		m := sized(t, newModel(t, testCard()))

		m, _ = update(t, m, bubbletea.CardMsg{Err: errors.New("bad yaml")})
		assert.Contains(t, m.Status(), "bad yaml")

		m, _ = update(t, m, bubbletea.CardMsg{Card: &diffcard.Card{}})
		assert.Contains(t, m.Status(), diffcard.ErrEmptyCard.Error())

		assert.Equal(t, "main.ts", m.ActiveKey())
		assert.Equal(t, diffcard.Summary{FileCount: 3, TotalLines: 6}, m.Summary())
	})
}

func TestCardModel_Program(t *testing.T) {
	t.Parallel()

	t.Run("renders and quits", func(t *testing.T) {
		t.Parallel()

		tm := teatest.NewTestModel(t, newModel(t, testCard()),
			teatest.WithInitialTermSize(100, 30),
		)

		teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
			return bytes.Contains(out, []byte("Lines Written"))
		})

		tm.Send(runeKey('q'))
		tm.WaitFinished(t, teatest.WithFinalTimeout(time.Second))
	})

	t.Run("gg and G scroll the panel", func(t *testing.T) {
		t.Parallel()

		var old, updated strings.Builder
		old.WriteString("FIRST_LINE_MARKER\n")
		updated.WriteString("FIRST_LINE_MARKER\n")
		for i := 0; i < 60; i++ {
			fmt.Fprintf(&old, "old %d\n", i)
			fmt.Fprintf(&updated, "new %d\n", i)
		}
		old.WriteString("LAST_LINE_MARKER\n")
		updated.WriteString("LAST_LINE_MARKER\n")
		card := &diffcard.Card{Comparisons: []diffcard.Comparison{{
			Old: diffcard.CodeFile{Name: "long.txt", Content: old.String()},
			New: diffcard.CodeFile{Name: "long.txt", Content: updated.String()},
		}}}

		tm := teatest.NewTestModel(t, newModel(t, card),
			teatest.WithInitialTermSize(80, 16),
		)

		teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
			return bytes.Contains(out, []byte("FIRST_LINE_MARKER"))
		})

		tm.Send(runeKey('G'))
		teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
			return bytes.Contains(out, []byte("LAST_LINE_MARKER"))
		})

		tm.Send(runeKey('g'))
		tm.Send(runeKey('g'))
		teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
			return bytes.Contains(out, []byte("FIRST_LINE_MARKER"))
		})

		tm.Send(runeKey('q'))
		tm.WaitFinished(t, teatest.WithFinalTimeout(time.Second))
	})

	t.Run("applies card updates from the channel", func(t *testing.T) {
		t.Parallel()

		updates := make(chan bubbletea.CardMsg, 1)
		tm := teatest.NewTestModel(t, newModel(t, testCard(), bubbletea.WithCardUpdates(updates)),
			teatest.WithInitialTermSize(100, 30),
		)

		teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
			return bytes.Contains(out, []byte("main.ts"))
		})

		card := testCard()
		card.Comparisons[0].New.Content = "const LIVE_UPDATE = 1;\n"
		updates <- bubbletea.CardMsg{Card: card}

		teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
			return bytes.Contains(out, []byte("LIVE_UPDATE"))
		})

		tm.Send(runeKey('q'))
		tm.WaitFinished(t, teatest.WithFinalTimeout(time.Second))
	})
}

func TestViewer_View(t *testing.T) {
	t.Parallel()

	t.Run("rejects invalid cards before starting", func(t *testing.T) {
		t.Parallel()

		viewer := bubbletea.NewViewer()

		require.ErrorIs(t, viewer.View(context.Background(), &diffcard.Card{}), diffcard.ErrEmptyCard)

		dup := &diffcard.Card{Comparisons: []diffcard.Comparison{
			{Old: diffcard.CodeFile{Name: "a.go"}},
			{Old: diffcard.CodeFile{Name: "a.go"}},
		}}
		require.ErrorIs(t, viewer.View(context.Background(), dup), diffcard.ErrDuplicateKey)
	})

	t.Run("returns context error on cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var in, out bytes.Buffer
		viewer := bubbletea.NewViewer(
			bubbletea.WithRenderer(plainRenderer()),
			bubbletea.WithProgramOptions(
				tea.WithInput(&in),
				tea.WithOutput(&out),
			),
		)

		done := make(chan error, 1)
		go func() {
			done <- viewer.View(ctx, testCard())
		}()

		time.Sleep(50 * time.Millisecond)
		cancel()

		select {
		case err := <-done:
			require.ErrorIs(t, err, context.Canceled)
		case <-time.After(time.Second):
			t.Fatal("viewer did not exit after context cancellation")
		}
	})
}

// mockTokenizer implements diffcard.Tokenizer for testing.
type mockTokenizer struct {
	TokenizeFn func(language, source string) []diffcard.Token
}

func (m *mockTokenizer) Tokenize(language, source string) []diffcard.Token {
	return m.TokenizeFn(language, source)
}

func (m *mockTokenizer) TokenizeLines(language, source string) [][]diffcard.Token {
	var out [][]diffcard.Token
	for _, line := range strings.Split(source, "\n") {
		out = append(out, m.TokenizeFn(language, line))
	}
	return out
}

// fixedDetector reports the same language for every path.
type fixedDetector string

func (d fixedDetector) DetectFromPath(string) string {
	return string(d)
}
