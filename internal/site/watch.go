package site

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long Watch waits after the last change before reloading
const DefaultDebounce = 300 * time.Millisecond

// Watcher reloads a content file whenever it changes on disk
type Watcher struct {
	path     string
	debounce time.Duration
	onReload func(*Page)
	onError  func(error)
}

// NewWatcher creates a watcher for the content file at path. onReload
// receives every successfully parsed version; onError receives parse and
// watcher failures. Either callback may be nil.
func NewWatcher(path string, onReload func(*Page), onError func(error)) *Watcher {
	return &Watcher{
		path:     path,
		debounce: DefaultDebounce,
		onReload: onReload,
		onError:  onError,
	}
}

// SetDebounce overrides the reload debounce interval
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Run blocks until ctx is canceled. The parent directory is watched rather
// than the file so that editors which replace the file on save are seen.
func (w *Watcher) Run(ctx context.Context) error {
	if err := validateContentPath(w.path); err != nil {
		return fmt.Errorf("invalid content path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	target := filepath.Clean(w.path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}

	var (
		timer  *time.Timer
		reload <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			reload = timer.C

		case <-reload:
			reload = nil
			w.reload()

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.fail(fmt.Errorf("watcher error: %w", err))
		}
	}
}

func (w *Watcher) reload() {
	page, err := Load(w.path)
	if err != nil {
		w.fail(err)
		return
	}
	if w.onReload != nil {
		w.onReload(page)
	}
}

func (w *Watcher) fail(err error) {
	if w.onError != nil {
		w.onError(err)
	}
}
