// Package watch rebuilds sidebars when their source files change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/util/sets"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is used when New is given a non-positive debounce.
const DefaultDebounce = 500 * time.Millisecond

// ChangeFunc is invoked after a debounced batch of changes. The names are
// the watched files that changed, in first-seen order.
type ChangeFunc func(ctx context.Context, changed []string)

// Watcher monitors a fixed set of files and calls a ChangeFunc after
// writes settle. Callbacks never run concurrently.
type Watcher struct {
	files    map[string]string // resolved path -> path reported to onChange
	debounce time.Duration
	onChange ChangeFunc
	watcher  *fsnotify.Watcher
	trigger  chan string
}

// New creates a watcher for files. Parent directories are watched rather
// than the files themselves so editors that replace files on save are seen.
// Symlinked directories are watched at their target.
func New(files []string, debounce time.Duration, onChange ChangeFunc) (*Watcher, error) {
	if len(files) == 0 {
		return nil, errors.New("watch: no files given")
	}
	if onChange == nil {
		return nil, errors.New("watch: nil change callback")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		files:    make(map[string]string, len(files)),
		debounce: debounce,
		onChange: onChange,
		watcher:  fw,
		trigger:  make(chan string, 16),
	}
	dirs := sets.New[string]()
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("failed to resolve path %s: %w", f, err)
		}
		dir := resolveDir(filepath.Dir(abs))
		w.files[filepath.Join(dir, filepath.Base(abs))] = abs
		if !dirs.Insert(dir) {
			continue
		}
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
	}
	return w, nil
}

// Run blocks until ctx is cancelled or the underlying watcher fails, then
// releases the watcher. A pending debounced batch is dropped on shutdown.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.watcher.Close() }()

	go w.dispatchLoop(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("File watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return
	}
	name, ok := w.files[filepath.Join(resolveDir(filepath.Dir(abs)), filepath.Base(abs))]
	if !ok {
		return
	}

	switch {
	case event.Has(fsnotify.Write), event.Has(fsnotify.Create), event.Has(fsnotify.Rename):
		slog.Debug("Watched file changed", logfields.File(name), slog.String("op", event.Op.String()))
		select {
		case w.trigger <- name:
		case <-ctx.Done():
		}
	case event.Has(fsnotify.Remove):
		slog.Warn("Watched file removed", logfields.File(name))
	}
}

// resolveDir follows symlinks in dir. Unresolvable directories are used as
// given so fsnotify reports the error.
func resolveDir(dir string) string {
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		return resolved
	}
	return dir
}

// dispatchLoop collects change notifications until the debounce window
// passes without a new one, then runs the callback on this goroutine.
func (w *Watcher) dispatchLoop(ctx context.Context) {
	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending []string
		seen    = sets.New[string]()
	)
	stop := func() {
		if timer != nil {
			timer.Stop()
		}
	}
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return
		case name := <-w.trigger:
			if seen.Insert(name) {
				pending = append(pending, name)
			}
			stop()
			timer = time.NewTimer(w.debounce)
			timerC = timer.C
		case <-timerC:
			batch := pending
			pending, seen, timer, timerC = nil, sets.New[string](), nil, nil
			w.onChange(ctx, batch)
		}
	}
}
