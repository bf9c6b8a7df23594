// Package watcher reloads project indices when their snapshot files change
// on disk. Another process (or a manual edit) rewriting a snapshot becomes
// visible without restarting.
package watcher

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ReloadFunc is invoked with the project path after its snapshot settled.
type ReloadFunc func(projectPath string)

// Watcher observes snapshot files via fsnotify and debounces bursts of
// writes into a single reload per project.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	reload   ReloadFunc

	mu sync.Mutex
	// targets maps an absolute snapshot path to its project path.
	targets map[string]string
	timers  map[string]*time.Timer
	stopped bool
}

// New creates a watcher. Reloads fire after debounce of quiet time per
// snapshot; a non-positive debounce uses 250ms.
func New(debounce time.Duration, reload ReloadFunc) (*Watcher, error) {
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fsw:      fsw,
		debounce: debounce,
		reload:   reload,
		targets:  make(map[string]string),
		timers:   make(map[string]*time.Timer),
	}, nil
}

// Watch registers a project's snapshot file. The parent directory is
// watched, not the file itself, so atomic rename-into-place writes and
// snapshots that do not exist yet are both observed.
func (w *Watcher) Watch(projectPath, snapshotPath string) error {
	abs, err := filepath.Abs(snapshotPath)
	if err != nil {
		return err
	}

	w.mu.Lock()
	w.targets[abs] = projectPath
	w.mu.Unlock()

	return w.fsw.Add(filepath.Dir(abs))
}

// Start runs the event loop until ctx is cancelled or Close is called.
func (w *Watcher) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *Watcher) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			slog.Warn("watcher_error", "error", err)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return
	}

	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	projectPath, ok := w.targets[abs]
	if !ok || w.stopped {
		return
	}

	// Reset the per-snapshot timer so a burst of writes reloads once.
	if timer, ok := w.timers[abs]; ok {
		timer.Stop()
	}
	w.timers[abs] = time.AfterFunc(w.debounce, func() {
		slog.Debug("snapshot_changed", "project_path", projectPath, "path", abs)
		w.reload(projectPath)
	})
}

// Close stops the watcher and cancels pending reloads.
// Safe to call multiple times.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	for _, timer := range w.timers {
		timer.Stop()
	}
	w.mu.Unlock()

	return w.fsw.Close()
}
