package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fwojciec/diffcard"
	"github.com/fwojciec/diffcard/browser"
	"github.com/fwojciec/diffcard/bubbletea"
	"github.com/fwojciec/diffcard/chroma"
	"github.com/fwojciec/diffcard/clipboard"
	"github.com/fwojciec/diffcard/config"
	"github.com/fwojciec/diffcard/dmp"
	"github.com/fwojciec/diffcard/fs"
	"github.com/fwojciec/diffcard/gemini"
	"github.com/fwojciec/diffcard/git"
	"github.com/fwojciec/diffcard/gitdiff"
	"github.com/fwojciec/diffcard/jsonl"
	"github.com/fwojciec/diffcard/lipgloss"
	"github.com/fwojciec/diffcard/udiff"
	"github.com/sirupsen/logrus"
)

// Build wires the production App.
func Build(ctx context.Context, cfg config.Config, log logrus.FieldLogger, stdin io.Reader) (*App, func(), error) {
	theme, err := lipgloss.ThemeByName(cfg.Theme)
	if err != nil {
		return nil, nil, err
	}
	layout, err := bubbletea.ParseLayout(cfg.Layout)
	if err != nil {
		return nil, nil, err
	}
	tokenizer, err := chroma.NewTokenizer(chroma.StyleFromPalette(theme.Palette()))
	if err != nil {
		return nil, nil, fmt.Errorf("syntax highlighting: %w", err)
	}

	updates := make(chan bubbletea.CardMsg)
	viewOpts := []bubbletea.Option{
		bubbletea.WithTheme(theme),
		bubbletea.WithLayout(layout),
		bubbletea.WithComparer(udiff.NewComparer(gitdiff.NewParser(), cfg.ContextLines)),
		bubbletea.WithLanguageDetector(languageDetector(cfg.Language)),
		bubbletea.WithTokenizer(tokenizer),
		bubbletea.WithWordDiffer(dmp.NewDiffer()),
		bubbletea.WithLinkOpener(browser.NewOpener()),
		bubbletea.WithLogger(log),
		bubbletea.WithCardUpdates(updates),
	}
	if clipboard.Supported() {
		viewOpts = append(viewOpts, bubbletea.WithClipboard(clipboard.NewSystem()))
	}
	if cfg.Markdown {
		viewOpts = append(viewOpts, bubbletea.WithMarkdown(strings.ToLower(cfg.Theme)))
	}

	loader := fs.NewLoader(stdin)
	app := &App{
		Loader:              loader,
		Jobs:                jsonl.NewLoader(),
		Git:                 git.NewRunner(),
		Viewer:              bubbletea.NewViewer(viewOpts...),
		DescribeConcurrency: cfg.Describe.Concurrency,
		Watcher:             fs.NewWatcher(loader, log, cfg.Watch.Debounce),
		Updates:             updates,
		Link:                cfg.Link,
		Logger:              log,
	}

	release := func() {}
	if cfg.Describe.Enabled {
		client, err := gemini.NewClient(ctx, os.Getenv("GEMINI_API_KEY"))
		if err != nil {
			return nil, nil, fmt.Errorf("gemini: %w", err)
		}
		release = func() { _ = client.Close() }
		app.Describer = describer(client, cfg)
	}
	return app, release, nil
}

// languageDetector forces one language for every file when language is set.
func languageDetector(language string) diffcard.LanguageDetector {
	if language != "" {
		return chroma.NewFixedDetector(language)
	}
	return chroma.NewDetector()
}

// describer returns a Gemini describer behind an on-disk cache. The model
// name salts the cache so switching models does not reuse descriptions.
func describer(client gemini.GenerativeClient, cfg config.Config) diffcard.Describer {
	d := gemini.NewDescriber(client, cfg.Describe.Model)
	if cfg.Describe.CacheDir == "" {
		return d
	}
	return fs.NewDescriber(d, cfg.Describe.CacheDir, cfg.Describe.Model)
}
