package fs

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/fwojciec/diffcard"
	"github.com/sirupsen/logrus"
)

// Compile-time interface verification.
var _ diffcard.CardWatcher = (*Watcher)(nil)

// DefaultDebounce is how long a card file must stay quiet before a reload.
const DefaultDebounce = 150 * time.Millisecond

// Watcher reloads a card file whenever it changes on disk.
type Watcher struct {
	loader   diffcard.CardLoader
	logger   logrus.FieldLogger
	debounce time.Duration
}

// NewWatcher creates a Watcher that reloads through loader.
func NewWatcher(loader diffcard.CardLoader, logger logrus.FieldLogger, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{loader: loader, logger: logger, debounce: debounce}
}

// Watch blocks until ctx is done, calling fn with the reloaded card (or the
// load error) after each burst of changes to path.
//
// The parent directory is watched rather than the file so that editors which
// save by renaming a temporary file over the original keep triggering reloads.
func (w *Watcher) Watch(ctx context.Context, path string, fn func(*diffcard.Card, error)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				timer.Reset(w.debounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.WithError(err).Warn("card watcher error")

		case <-timer.C:
			card, err := w.loader.Load(ctx, path)
			if err != nil {
				w.logger.WithError(err).WithField("path", path).Warn("card reload failed")
			} else {
				w.logger.WithField("path", path).Debug("card reloaded")
			}
			fn(card, err)
		}
	}
}
