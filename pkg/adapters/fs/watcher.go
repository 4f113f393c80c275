package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/softgrid/tabula/pkg/core"
)

const debounceWindow = 50 * time.Millisecond

// Watcher observes the workspace directory and publishes an
// EventExternalChange for every file another program touched. Consumers
// typically react by prompting for a reload.
type Watcher struct {
	*worker.BaseWorker
	store    *Store
	pattern  string
	notifier *core.Notifier
	logger   *slog.Logger

	watcher   *fsnotify.Watcher
	debouncer *debouncer
	cancel    context.CancelFunc
}

// NewWatcher creates a watcher over the store's root. The doublestar
// pattern selects which relative paths are reported; an empty pattern
// reports everything.
func NewWatcher(store *Store, pattern string, notifier *core.Notifier, logger *slog.Logger) *Watcher {
	return &Watcher{
		BaseWorker: worker.NewBaseWorker("fs-watcher"),
		store:      store,
		pattern:    pattern,
		notifier:   notifier,
		logger:     logger,
	}
}

// Start begins watching. It is an error to start an already-running
// watcher.
func (w *Watcher) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	status := w.State().Status
	if status != worker.StatusCreated && status != worker.StatusPending {
		return fmt.Errorf("watcher already started (status: %s)", status)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	if err := w.addRecursive(watcher, w.store.Root()); err != nil {
		_ = watcher.Close()
		return err
	}

	w.watcher = watcher
	w.debouncer = newDebouncer(debounceWindow)

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.SetStatus(worker.StatusRunning)
	return w.StartFunc(runCtx, w.run)
}

// Stop requests shutdown and waits for the event loop to drain.
func (w *Watcher) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.StopRequested = true
		w.cancel()
	}
	return w.BaseWorker.Stop(ctx)
}

// State implements the worker contract.
func (w *Watcher) State() worker.State {
	return w.ExportState(func(s *worker.State) {
		s.Metadata = map[string]string{
			worker.MetadataType: string(worker.TypeGoroutine),
		}
	})
}

func (w *Watcher) addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// shouldIgnore filters out our own temp files, hidden paths, and paths
// outside the configured pattern.
func (w *Watcher) shouldIgnore(name string) (rel string, ignore bool) {
	base := filepath.Base(name)
	if strings.HasPrefix(base, TempFilePrefix) || strings.HasPrefix(base, ".") {
		return "", true
	}
	rel, err := filepath.Rel(w.store.Root(), name)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", true
	}
	rel = filepath.ToSlash(rel)
	if w.pattern != "" {
		ok, err := doublestar.Match(w.pattern, rel)
		if err != nil || !ok {
			return "", true
		}
	}
	return rel, false
}

func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if w.logger != nil {
		w.logger.Debug("fs event", "op", event.Op.String(), "name", event.Name)
	}

	// New directories need to be added to the watch set.
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !strings.HasPrefix(filepath.Base(event.Name), ".") {
				_ = w.watcher.Add(event.Name)
			}
			return
		}
	}

	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}

	rel, ignore := w.shouldIgnore(event.Name)
	if ignore {
		return
	}

	w.debouncer.add(rel, func() {
		if ctx.Err() != nil {
			return
		}
		w.notifier.Publish(core.Event{
			Type:     core.EventExternalChange,
			Resource: rel,
		})
	})
}

func (w *Watcher) run(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			panicErr := fmt.Errorf("watcher panic: %v", recovered)
			if w.logger != nil {
				if w.logger.Enabled(ctx, slog.LevelDebug) {
					w.logger.Error("watcher panic", "error", panicErr, "stack", string(debug.Stack()))
				} else {
					w.logger.Error("watcher panic", "error", panicErr)
				}
			}
		}
	}()
	defer w.watcher.Close()

	err = w.loop(ctx)
	w.debouncer.stopAndWait(5 * time.Second)
	return err
}

func (w *Watcher) loop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.handleEvent(ctx, event)

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			if w.logger != nil {
				w.logger.Error("fsnotify error", "error", wErr)
			}
		}
	}
}
