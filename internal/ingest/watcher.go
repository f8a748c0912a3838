package ingest

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 400 * time.Millisecond

// Watcher re-ingests knowledge files as they change on disk. Write bursts
// are debounced per path so a file being copied in triggers one ingest, not
// one per write.
type Watcher struct {
	roots    []string
	onChange func(path string)
	logger   *slog.Logger

	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	debounce map[string]*time.Timer
}

// NewWatcher creates a watcher over the given root directories. onChange is
// invoked with the path of every supported file that is created or modified.
func NewWatcher(roots []string, onChange func(path string), logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		roots:    roots,
		onChange: onChange,
		logger:   logger,
		debounce: make(map[string]*time.Timer),
	}
}

// Start begins watching and blocks until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	w.mu.Lock()
	w.watcher = watcher
	w.mu.Unlock()

	for _, root := range w.roots {
		if err := addTree(watcher, root); err != nil {
			return fmt.Errorf("failed to watch %s: %w", root, err)
		}
		w.logger.Info("watching directory", "path", root)
	}

	for {
		select {
		case <-ctx.Done():
			w.cancelPending()
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ev)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	switch {
	case ev.Op.Has(fsnotify.Create), ev.Op.Has(fsnotify.Write):
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			// New subdirectory: watch it too.
			w.mu.Lock()
			watcher := w.watcher
			w.mu.Unlock()
			if err := addTree(watcher, ev.Name); err != nil {
				w.logger.Warn("failed to watch new directory", "path", ev.Name, "error", err)
			}
			return
		}
		if SupportedFile(ev.Name) {
			w.scheduleIngest(ev.Name)
		}
	case ev.Op.Has(fsnotify.Remove), ev.Op.Has(fsnotify.Rename):
		w.cancelIngest(ev.Name)
	}
}

// scheduleIngest (re)arms the debounce timer for one path.
func (w *Watcher) scheduleIngest(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.debounce[path]; ok {
		t.Stop()
	}
	w.debounce[path] = time.AfterFunc(watchDebounce, func() {
		w.mu.Lock()
		delete(w.debounce, path)
		w.mu.Unlock()
		w.onChange(path)
	})
}

func (w *Watcher) cancelIngest(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.debounce[path]; ok {
		t.Stop()
		delete(w.debounce, path)
	}
}

func (w *Watcher) cancelPending() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for path, t := range w.debounce {
		t.Stop()
		delete(w.debounce, path)
	}
}

// addTree adds root and every subdirectory beneath it to the watcher.
func addTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
