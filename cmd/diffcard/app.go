package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/fwojciec/diffcard"
	"github.com/fwojciec/diffcard/bubbletea"
	"github.com/fwojciec/diffcard/git"
	"github.com/fwojciec/diffcard/logger"
	"github.com/sirupsen/logrus"
)

// ErrWatchStdin is returned when --watch is combined with reading from stdin.
var ErrWatchStdin = errors.New("cannot watch stdin")

// App encapsulates the application logic for testing.
type App struct {
	Loader diffcard.CardLoader
	Jobs   diffcard.JobLoader
	Git    diffcard.GitRunner
	Viewer diffcard.Viewer

	// Describer fills empty descriptions when set.
	Describer           diffcard.Describer
	DescribeConcurrency int

	// Watcher and Updates enable live reload. Updates must be the channel
	// the Viewer's model listens on.
	Watcher diffcard.CardWatcher
	Updates chan<- bubbletea.CardMsg

	// Link replaces the card's link when not empty.
	Link   string
	Logger logrus.FieldLogger
}

// Show loads a card file (or stdin for "-") and displays it. With watch set
// the card is reloaded whenever the file changes.
func (a *App) Show(ctx context.Context, source string, watch bool) error {
	if watch && (source == "" || source == "-") {
		return ErrWatchStdin
	}
	card, err := a.Loader.Load(ctx, source)
	if err != nil {
		return err
	}
	card, err = a.prepare(ctx, card)
	if err != nil {
		return err
	}
	if !watch {
		return a.Viewer.View(ctx, card)
	}
	if a.Watcher == nil || a.Updates == nil {
		return fmt.Errorf("watch %s: live reload is not configured", source)
	}

	watchCtx, stop := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() {
		done <- a.Watcher.Watch(watchCtx, source, func(c *diffcard.Card, err error) {
			if err == nil {
				c, err = a.prepare(watchCtx, c)
			}
			entry := a.logger().WithField("source", source)
			if err != nil {
				entry = entry.WithError(err)
			}
			entry.Debug("card changed")
			select {
			case a.Updates <- bubbletea.CardMsg{Card: c, Err: err}:
			case <-watchCtx.Done():
			}
		})
	}()

	viewErr := a.Viewer.View(ctx, card)
	stop()
	if err := <-done; err != nil && viewErr == nil {
		return err
	}
	return viewErr
}

// ShowJobs builds a card from a refactor job file against a git revision
// and displays it.
func (a *App) ShowJobs(ctx context.Context, path, repo, rev string) error {
	jobs, err := a.Jobs.Load(path)
	if err != nil {
		return err
	}
	card, err := git.CardFromJobs(ctx, a.Git, repo, rev, a.Link, jobs)
	if err != nil {
		return err
	}
	return a.view(ctx, card)
}

// ShowGit builds a card from the working tree changes since rev and
// displays it.
func (a *App) ShowGit(ctx context.Context, repo, rev string) error {
	card, err := git.CardFromWorkingTree(ctx, a.Git, repo, rev, a.Link)
	if err != nil {
		return err
	}
	return a.view(ctx, card)
}

func (a *App) view(ctx context.Context, card *diffcard.Card) error {
	card, err := a.prepare(ctx, card)
	if err != nil {
		return err
	}
	return a.Viewer.View(ctx, card)
}

// prepare validates card, applies the link override and fills missing
// descriptions. The input card is not modified.
func (a *App) prepare(ctx context.Context, card *diffcard.Card) (*diffcard.Card, error) {
	if err := card.Validate(); err != nil {
		return nil, err
	}
	if a.Link != "" && card.Link != a.Link {
		c := *card
		c.Link = a.Link
		card = &c
	}
	if a.Describer == nil {
		return card, nil
	}
	return diffcard.FillDescriptions(ctx, card, a.Describer, a.DescribeConcurrency)
}

func (a *App) logger() logrus.FieldLogger {
	if a.Logger == nil {
		return logger.Discard()
	}
	return a.Logger
}
