// Package watch reports changes to a single file.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/grovetools/reorder/logging"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce is the quiet period after the last write before a change
// is reported.
const DefaultDebounce = 100 * time.Millisecond

// FileWatcher watches one file and calls onChange once per burst of writes.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	target   string // resolved symlink target, if path is a link
	debounce time.Duration
	onChange func(path string)
	logger   *logrus.Entry

	mu      sync.Mutex
	pending *time.Timer
}

// NewFileWatcher watches the directory containing path. fsnotify does not
// follow symlinks, so the target's directory is watched too.
func NewFileWatcher(path string, debounce time.Duration, onChange func(path string)) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	logger := logging.NewLogger("watch")

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, err
	}

	target := ""
	if resolved, err := filepath.EvalSymlinks(abs); err == nil && resolved != abs {
		target = resolved
		if filepath.Dir(resolved) != filepath.Dir(abs) {
			if err := watcher.Add(filepath.Dir(resolved)); err != nil {
				logger.WithError(err).Warnf("Failed to watch symlink target dir %s", filepath.Dir(resolved))
			} else {
				logger.Debugf("Watching symlink target directory: %s", filepath.Dir(resolved))
			}
		}
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &FileWatcher{
		watcher:  watcher,
		path:     abs,
		target:   target,
		debounce: debounce,
		onChange: onChange,
		logger:   logger,
	}, nil
}

// Start processes file events. It blocks until the context is cancelled or
// the watcher is closed.
func (w *FileWatcher) Start(ctx context.Context) {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.logger.Debugf("fsnotify event: %s op=%v", event.Name, event.Op)

			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if name := filepath.Clean(event.Name); name == w.path || (w.target != "" && name == w.target) {
				w.schedule()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Errorf("Watcher error: %v", err)
		case <-ctx.Done():
			w.stopPending()
			w.watcher.Close()
			return
		}
	}
}

// schedule restarts the debounce window.
func (w *FileWatcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = time.AfterFunc(w.debounce, func() {
		w.logger.Infof("File changed: %s", filepath.Base(w.path))
		if w.onChange != nil {
			w.onChange(w.path)
		}
	})
}

func (w *FileWatcher) stopPending() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending != nil {
		w.pending.Stop()
		w.pending = nil
	}
}

// Close stops the watcher and releases resources.
func (w *FileWatcher) Close() error {
	w.stopPending()
	return w.watcher.Close()
}
