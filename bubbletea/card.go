package bubbletea

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/diffcard"
	"github.com/sirupsen/logrus"
)

// Layout selects how the diff panel is drawn.
type Layout int

// Layouts.
const (
	LayoutUnified Layout = iota
	LayoutSplit
)

// String returns the config name of the layout.
func (l Layout) String() string {
	if l == LayoutSplit {
		return "split"
	}
	return "unified"
}

// ParseLayout parses a layout name ("unified" or "split").
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(s) {
	case "", "unified":
		return LayoutUnified, nil
	case "split":
		return LayoutSplit, nil
	default:
		return LayoutUnified, fmt.Errorf("unknown layout %q (want unified or split)", s)
	}
}

// CardMsg delivers a replacement card, typically after the card file changed
// on disk. A non-nil Err reports a failed reload and keeps the current card.
type CardMsg struct {
	Card *diffcard.Card
	Err  error
}

type linkOpenedMsg struct {
	link string
	err  error
}

type linkCopiedMsg struct {
	err error
}

// Screen rows above and below the scrolling panel:
// title, tabs, rule on top; rule, footer, status bar below.
const (
	tabRow       = 1
	panelTop     = 3
	chromeHeight = 6
)

// CardModel displays a card: a tab per comparison, the active comparison's
// description and diff, and a footer with the summary and the link button.
type CardModel struct {
	card *diffcard.Card
	tabs *diffcard.Tabs
	memo *diffcard.SummaryMemo
	// Diffs of the current card, by comparison key.
	diffs map[string]*panel

	comparer         diffcard.Comparer
	languageDetector diffcard.LanguageDetector
	tokenizer        diffcard.Tokenizer
	wordDiffer       diffcard.WordDiffer
	opener           diffcard.LinkOpener
	clipboard        diffcard.Clipboard
	markdown         *markdownRenderer
	logger           logrus.FieldLogger
	updates          <-chan CardMsg
	ctx              context.Context

	// UI state
	layout     Layout
	viewport   viewport.Model
	help       help.Model
	keymap     KeyMap
	styles     diffcard.Styles
	palette    diffcard.Palette
	renderer   *lipgloss.Renderer
	width      int
	height     int
	ready      bool
	pendingKey string
	tabOffset  int
	status     string
}

// Option configures a CardModel.
type Option func(*modelConfig)

type modelConfig struct {
	renderer         *lipgloss.Renderer
	theme            diffcard.Theme
	comparer         diffcard.Comparer
	languageDetector diffcard.LanguageDetector
	tokenizer        diffcard.Tokenizer
	wordDiffer       diffcard.WordDiffer
	opener           diffcard.LinkOpener
	clipboard        diffcard.Clipboard
	markdownStyle    string
	logger           logrus.FieldLogger
	layout           Layout
	updates          <-chan CardMsg
	ctx              context.Context
	programOpts      []tea.ProgramOption
}

// WithRenderer sets a custom lipgloss renderer for the model.
func WithRenderer(r *lipgloss.Renderer) Option {
	return func(cfg *modelConfig) {
		cfg.renderer = r
	}
}

// WithTheme sets the theme for the model.
func WithTheme(t diffcard.Theme) Option {
	return func(cfg *modelConfig) {
		cfg.theme = t
	}
}

// WithComparer sets the comparer that produces the diff panel.
func WithComparer(c diffcard.Comparer) Option {
	return func(cfg *modelConfig) {
		cfg.comparer = c
	}
}

// WithLanguageDetector sets the language detector for syntax highlighting.
func WithLanguageDetector(d diffcard.LanguageDetector) Option {
	return func(cfg *modelConfig) {
		cfg.languageDetector = d
	}
}

// WithTokenizer sets the tokenizer for syntax highlighting.
func WithTokenizer(t diffcard.Tokenizer) Option {
	return func(cfg *modelConfig) {
		cfg.tokenizer = t
	}
}

// WithWordDiffer sets the word differ for word-level highlighting.
func WithWordDiffer(d diffcard.WordDiffer) Option {
	return func(cfg *modelConfig) {
		cfg.wordDiffer = d
	}
}

// WithLinkOpener sets the opener used by the link button.
func WithLinkOpener(o diffcard.LinkOpener) Option {
	return func(cfg *modelConfig) {
		cfg.opener = o
	}
}

// WithClipboard sets the clipboard used to copy the link.
func WithClipboard(c diffcard.Clipboard) Option {
	return func(cfg *modelConfig) {
		cfg.clipboard = c
	}
}

// WithMarkdown renders descriptions as markdown using the named glamour
// style ("dark", "light", ...). An empty style renders plain text.
func WithMarkdown(style string) Option {
	return func(cfg *modelConfig) {
		cfg.markdownStyle = style
	}
}

// WithLogger sets the logger. Logs are discarded by default.
func WithLogger(l logrus.FieldLogger) Option {
	return func(cfg *modelConfig) {
		cfg.logger = l
	}
}

// WithLayout sets the initial diff layout.
func WithLayout(l Layout) Option {
	return func(cfg *modelConfig) {
		cfg.layout = l
	}
}

// WithCardUpdates makes the model replace its card with each message
// received on ch.
func WithCardUpdates(ch <-chan CardMsg) Option {
	return func(cfg *modelConfig) {
		cfg.updates = ch
	}
}

// WithContext sets the context passed to the link opener.
func WithContext(ctx context.Context) Option {
	return func(cfg *modelConfig) {
		cfg.ctx = ctx
	}
}

// WithProgramOptions adds Bubble Tea program options used by Viewer.
func WithProgramOptions(opts ...tea.ProgramOption) Option {
	return func(cfg *modelConfig) {
		cfg.programOpts = append(cfg.programOpts, opts...)
	}
}

// NewCardModel creates a CardModel for card. The first comparison is active.
// It returns diffcard.ErrEmptyCard when the card has no comparisons.
func NewCardModel(card *diffcard.Card, opts ...Option) (CardModel, error) {
	cfg := &modelConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if card == nil {
		return CardModel{}, diffcard.ErrEmptyCard
	}
	tabs, err := diffcard.NewTabs(card.Comparisons)
	if err != nil {
		return CardModel{}, err
	}

	var styles diffcard.Styles
	var palette diffcard.Palette
	if cfg.theme != nil {
		styles = cfg.theme.Styles()
		palette = cfg.theme.Palette()
	} else {
		styles = defaultStyles()
		palette = defaultPalette()
	}

	logger := cfg.logger
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	ctx := cfg.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	var md *markdownRenderer
	if cfg.markdownStyle != "" {
		md = &markdownRenderer{style: cfg.markdownStyle}
	}

	m := CardModel{
		card:             card,
		tabs:             tabs,
		memo:             &diffcard.SummaryMemo{},
		diffs:            make(map[string]*panel),
		comparer:         cfg.comparer,
		languageDetector: cfg.languageDetector,
		tokenizer:        cfg.tokenizer,
		wordDiffer:       cfg.wordDiffer,
		opener:           cfg.opener,
		clipboard:        cfg.clipboard,
		markdown:         md,
		logger:           logger,
		updates:          cfg.updates,
		ctx:              ctx,
		layout:           cfg.layout,
		help:             help.New(),
		keymap:           DefaultKeyMap(),
		styles:           styles,
		palette:          palette,
		renderer:         cfg.renderer,
	}
	m.logCard()
	return m, nil
}

// Init implements tea.Model.
func (m CardModel) Init() tea.Cmd {
	return waitForCard(m.updates)
}

// Update implements tea.Model.
func (m CardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.status = ""

		// Handle multi-key sequences (gg for go to top)
		if m.pendingKey == "g" && key.Matches(msg, m.keymap.GotoTop) {
			m.viewport.GotoTop()
			m.pendingKey = ""
			return m, nil
		}
		if key.Matches(msg, m.keymap.GotoTop) {
			m.pendingKey = "g"
			return m, nil
		}
		m.pendingKey = ""

		switch {
		case key.Matches(msg, m.keymap.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keymap.GotoBottom):
			m.viewport.GotoBottom()
			return m, nil
		case key.Matches(msg, m.keymap.HalfPageUp):
			m.viewport.HalfPageUp()
			return m, nil
		case key.Matches(msg, m.keymap.HalfPageDown):
			m.viewport.HalfPageDown()
			return m, nil
		case key.Matches(msg, m.keymap.Up):
			m.viewport.ScrollUp(1)
			return m, nil
		case key.Matches(msg, m.keymap.Down):
			m.viewport.ScrollDown(1)
			return m, nil
		case key.Matches(msg, m.keymap.NextTab):
			prev := m.tabs.ActiveKey()
			m.tabs.Next()
			m.tabChanged(prev)
			return m, nil
		case key.Matches(msg, m.keymap.PrevTab):
			prev := m.tabs.ActiveKey()
			m.tabs.Prev()
			m.tabChanged(prev)
			return m, nil
		case key.Matches(msg, m.keymap.SelectTab):
			prev := m.tabs.ActiveKey()
			if m.tabs.SelectIndex(int(msg.Runes[0] - '1')) {
				m.tabChanged(prev)
			}
			return m, nil
		case key.Matches(msg, m.keymap.ToggleLayout):
			if m.layout == LayoutUnified {
				m.layout = LayoutSplit
			} else {
				m.layout = LayoutUnified
			}
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keymap.OpenLink):
			return m, m.openLink()
		case key.Matches(msg, m.keymap.CopyLink):
			return m, m.copyLink()
		}

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && m.ready {
			switch msg.Y {
			case tabRow:
				if i := tabAt(m.tabZones(), msg.X); i >= 0 {
					prev := m.tabs.ActiveKey()
					m.tabs.SelectIndex(i)
					m.tabChanged(prev)
				}
				return m, nil
			case m.footerRow():
				f := m.footer()
				if f.buttonEnd > 0 && msg.X >= f.buttonStart && msg.X < f.buttonEnd {
					return m, m.openLink()
				}
				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		widthChanged := m.width != msg.Width
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		panelHeight := max(msg.Height-chromeHeight, 1)

		if !m.ready {
			m.viewport = viewport.New(msg.Width, panelHeight)
			m.ready = true
			m.tabOffset = scrollTabs(m.labels(), m.tabs.ActiveIndex(), m.tabOffset, m.width)
			m.viewport.SetContent(m.renderContent())
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = panelHeight
			if widthChanged {
				m.tabOffset = scrollTabs(m.labels(), m.tabs.ActiveIndex(), m.tabOffset, m.width)
				m.viewport.SetContent(m.renderContent())
			}
		}

	case CardMsg:
		m.applyCard(msg)
		return m, waitForCard(m.updates)

	case linkOpenedMsg:
		if msg.err != nil {
			m.logger.WithError(msg.err).WithField("link", msg.link).Warn("open link failed")
			m.status = "open failed: " + msg.err.Error()
		} else {
			m.logger.WithField("link", msg.link).Info("link opened")
			m.status = "opened " + msg.link
		}
		return m, nil

	case linkCopiedMsg:
		if msg.err != nil {
			m.logger.WithError(msg.err).Warn("copy link failed")
			m.status = "copy failed: " + msg.err.Error()
		} else {
			m.status = "link copied"
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m CardModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	labels := m.labels()
	active := m.tabs.ActiveIndex()
	return lipgloss.JoinVertical(lipgloss.Left,
		renderTitle(active, len(labels), m.width, m.styles, m.renderer),
		renderTabStrip(labels, m.tabZones(), active, m.styles, m.renderer),
		renderRule(m.width, m.styles, m.renderer),
		m.viewport.View(),
		renderRule(m.width, m.styles, m.renderer),
		m.footer().view,
		renderStatusBar(m.status, m.help.View(m.keymap), m.width, m.palette, m.renderer),
	)
}

// ActiveKey returns the key of the active comparison.
func (m CardModel) ActiveKey() string {
	return m.tabs.ActiveKey()
}

// Layout returns the current diff layout.
func (m CardModel) Layout() Layout {
	return m.layout
}

// Status returns the transient status message, if any.
func (m CardModel) Status() string {
	return m.status
}

// Summary returns the footer summary of the current card.
func (m CardModel) Summary() diffcard.Summary {
	return m.memo.Summary(m.tabs.Comparisons())
}

// tabChanged refreshes the panel after a selection that moved from prev.
func (m *CardModel) tabChanged(prev string) {
	if m.tabs.ActiveKey() == prev {
		return
	}
	m.logger.WithField("key", m.tabs.ActiveKey()).Debug("tab selected")
	m.tabOffset = scrollTabs(m.labels(), m.tabs.ActiveIndex(), m.tabOffset, m.width)
	m.refresh()
	m.viewport.GotoTop()
}

// applyCard swaps in a reloaded card. The active key survives when the new
// card still contains it.
func (m *CardModel) applyCard(msg CardMsg) {
	err := msg.Err
	if err == nil {
		err = msg.Card.Validate()
	}
	if err != nil {
		m.logger.WithError(err).Warn("card reload rejected")
		m.status = "reload failed: " + err.Error()
		return
	}
	prev := m.tabs.ActiveKey()
	if err := m.tabs.Reset(msg.Card.Comparisons); err != nil {
		m.status = "reload failed: " + err.Error()
		return
	}
	m.card = msg.Card
	m.diffs = make(map[string]*panel)
	m.logCard()
	m.status = "card reloaded"
	m.tabOffset = scrollTabs(m.labels(), m.tabs.ActiveIndex(), m.tabOffset, m.width)
	m.refresh()
	if m.tabs.ActiveKey() != prev {
		m.viewport.GotoTop()
	}
}

func (m CardModel) logCard() {
	s := m.memo.Summary(m.tabs.Comparisons())
	m.logger.WithFields(logrus.Fields{
		"files":       s.FileCount,
		"total_lines": s.TotalLines,
		"link":        m.card.Link,
	}).Debug("card loaded")
}

// openLink returns a command that opens the card link, or nil with a status
// message when there is nothing to open.
func (m *CardModel) openLink() tea.Cmd {
	link := m.card.Link
	if link == "" {
		m.status = diffcard.ErrNoLink.Error()
		return nil
	}
	if m.opener == nil {
		m.status = "no link opener configured"
		return nil
	}
	opener, ctx := m.opener, m.ctx
	m.logger.WithField("link", link).Info("opening link")
	return func() tea.Msg {
		return linkOpenedMsg{link: link, err: opener.Open(ctx, link)}
	}
}

// copyLink returns a command that copies the card link to the clipboard.
func (m *CardModel) copyLink() tea.Cmd {
	link := m.card.Link
	if link == "" {
		m.status = diffcard.ErrNoLink.Error()
		return nil
	}
	if m.clipboard == nil {
		m.status = "no clipboard configured"
		return nil
	}
	cb := m.clipboard
	return func() tea.Msg {
		return linkCopiedMsg{err: cb.Copy(link)}
	}
}

// refresh re-renders the panel content for the active comparison.
func (m *CardModel) refresh() {
	if m.ready {
		m.viewport.SetContent(m.renderContent())
	}
}

func (m CardModel) labels() []string {
	comparisons := m.tabs.Comparisons()
	labels := make([]string, len(comparisons))
	for i, c := range comparisons {
		labels[i] = c.Label()
	}
	return labels
}

func (m CardModel) tabZones() []tabZone {
	return layoutTabs(m.labels(), m.tabs.ActiveIndex(), m.tabOffset, m.width)
}

func (m CardModel) footerRow() int {
	return panelTop + m.viewport.Height + 1
}

func (m CardModel) footer() footerLayout {
	return renderFooter(m.memo.Summary(m.tabs.Comparisons()), m.card.Link, m.width, m.styles, m.renderer)
}

// renderContent renders the active comparison: its description followed by
// its diff. Nothing is rendered when no comparison matches the active key.
func (m CardModel) renderContent() string {
	c, ok := m.tabs.Active()
	if !ok {
		return ""
	}
	var sb strings.Builder
	if desc := m.renderDescription(c.Old.Description); desc != "" {
		sb.WriteString(desc)
		sb.WriteString("\n\n")
	}
	sb.WriteString(m.renderDiff(c))
	return sb.String()
}

func (m CardModel) renderDescription(desc string) string {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return ""
	}
	if m.markdown != nil {
		out, err := m.markdown.render(desc, m.width)
		if err == nil {
			return out
		}
		m.logger.WithError(err).Warn("markdown render failed")
	}
	return styleFromColorPair(m.styles.Description, m.renderer).Width(max(m.width, 1)).Render(desc)
}

// panel is the computed diff and syntax tokens of one comparison, kept
// until the card is replaced.
type panel struct {
	diff   *diffcard.FileDiff
	tokens sideTokens
}

func (m CardModel) renderDiff(c diffcard.Comparison) string {
	if m.comparer == nil {
		return ""
	}
	p, ok := m.diffs[c.Key()]
	if !ok {
		fd, err := m.comparer.Compare(c)
		if err != nil {
			m.logger.WithError(err).WithField("key", c.Key()).Warn("compare failed")
			return styleFromColorPair(m.styles.Deleted, m.renderer).Render("diff unavailable: " + err.Error())
		}
		var language string
		if m.languageDetector != nil {
			language = m.languageDetector.DetectFromPath(c.Old.Name)
		}
		p = &panel{diff: fd, tokens: tokenizeSides(m.tokenizer, language, c)}
		m.diffs[c.Key()] = p
	}

	cfg := renderConfig{
		file:       p.diff,
		styles:     m.styles,
		renderer:   m.renderer,
		width:      m.width,
		tokens:     p.tokens,
		wordDiffer: m.wordDiffer,
	}
	if m.layout == LayoutSplit {
		return renderSplit(cfg)
	}
	return renderUnified(cfg)
}

// waitForCard blocks on ch and delivers the next card as a CardMsg.
func waitForCard(ch <-chan CardMsg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

// markdownRenderer renders descriptions with glamour, rebuilding the
// renderer when the wrap width changes.
type markdownRenderer struct {
	style string
	width int
	r     *glamour.TermRenderer
}

func (mr *markdownRenderer) render(s string, width int) (string, error) {
	if mr.r == nil || mr.width != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(mr.style),
			glamour.WithWordWrap(max(width-4, 20)),
		)
		if err != nil {
			return "", err
		}
		mr.r, mr.width = r, width
	}
	out, err := mr.r.Render(s)
	if err != nil {
		return "", err
	}
	return strings.Trim(out, "\n"), nil
}
