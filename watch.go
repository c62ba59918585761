package csstokens

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yacobolo/csstokens/internal/tokens"
)

// DefaultDebounce is the quiet period after the last file event before a
// recompute starts.
const DefaultDebounce = 200 * time.Millisecond

// WatchOptions configures a Watcher.
type WatchOptions struct {
	Debounce time.Duration        // Default: DefaultDebounce
	OnResult func(*ExtractResult) // Called for every published result, oldest first
	OnError  func(error)          // Called when a run fails (not when superseded)
}

// Watcher re-extracts the source tree whenever a stylesheet changes.
//
// Every change triggers a full rediscovery and recompute. Bursts of events
// are debounced, and a run overtaken by a newer one is dropped, so OnResult
// only ever sees results in generation order.
type Watcher struct {
	extractor *Extractor
	watcher   *fsnotify.Watcher
	options   WatchOptions

	ctx    context.Context
	cancel context.CancelFunc

	// Debouncing
	timer   *time.Timer
	timerMu sync.Mutex

	// Delivery ordering
	deliverMu sync.Mutex
	delivered uint64

	// Lifecycle
	stopChan chan struct{}
	started  bool
	stopped  bool
	mu       sync.Mutex
	wg       sync.WaitGroup
}

// NewWatcher creates a watcher driving extractor.
func NewWatcher(extractor *Extractor, options WatchOptions) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if options.Debounce <= 0 {
		options.Debounce = DefaultDebounce
	}

	return &Watcher{
		extractor: extractor,
		watcher:   fw,
		options:   options,
		stopChan:  make(chan struct{}),
	}, nil
}

// Start watches the extractor's source directory and runs an initial
// extraction. Runs are canceled when ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return errors.New("watcher already stopped")
	}
	if w.started {
		w.mu.Unlock()
		return errors.New("watcher already started")
	}
	w.started = true
	w.ctx, w.cancel = context.WithCancel(ctx)
	w.mu.Unlock()

	root := w.extractor.Config().SourceDir
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrSourceNotFound, root)
	}

	if err := w.addTree(root); err != nil {
		return fmt.Errorf("failed to setup watches: %w", err)
	}

	w.logger().Info("File watcher started", "root", root, "debounce", w.options.Debounce)

	go w.eventLoop()
	w.trigger()

	return nil
}

// Stop stops watching and waits for in-flight runs to return.
// Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	close(w.stopChan)
	if w.cancel != nil {
		w.cancel()
	}
	w.mu.Unlock()

	w.timerMu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.timerMu.Unlock()

	err := w.watcher.Close()
	w.wg.Wait()
	w.logger().Info("File watcher stopped")
	return err
}

func (w *Watcher) logger() *slog.Logger {
	return w.extractor.Config().logger()
}

// addTree adds root and every non-ignored directory beneath it.
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Continue on error
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && shouldIgnoreDir(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			w.logger().Warn("Failed to watch directory", "path", path, "error", err)
		}
		return nil
	})
}

// eventLoop is the main event processing loop.
func (w *Watcher) eventLoop() {
	for {
		select {
		case <-w.stopChan:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger().Error("File watcher error", "error", err)
		}
	}
}

// handleEvent schedules a recompute for events that can change the result.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op == fsnotify.Chmod {
		return
	}

	path := event.Name
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if shouldIgnoreDir(path) {
				return
			}
			if err := w.addTree(path); err != nil {
				w.logger().Warn("Failed to watch directory", "path", path, "error", err)
			}
			w.debounce()
			return
		}
	}

	relevant := tokens.IsStylesheet(path) ||
		filepath.Base(path) == ".gitignore" ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
	if !relevant {
		return
	}

	w.logger().Debug("File event", "op", event.Op.String(), "file", path)
	w.debounce()
}

// debounce (re)arms the single recompute timer.
func (w *Watcher) debounce() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.options.Debounce, w.trigger)
}

// trigger starts a recompute unless the watcher is stopped.
func (w *Watcher) trigger() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.wg.Add(1)
	w.mu.Unlock()

	go func() {
		defer w.wg.Done()
		w.run()
	}()
}

func (w *Watcher) run() {
	result, err := w.extractor.Run(w.ctx)
	switch {
	case errors.Is(err, tokens.ErrSuperseded):
		w.logger().Debug("Extraction superseded")
		return
	case err != nil && w.ctx.Err() != nil:
		return
	case err != nil:
		w.logger().Error("Extraction failed", "error", err)
		if w.options.OnError != nil {
			w.options.OnError(err)
		}
		return
	}

	w.deliverMu.Lock()
	defer w.deliverMu.Unlock()
	if result.Generation <= w.delivered {
		return
	}
	w.delivered = result.Generation
	if w.options.OnResult != nil {
		w.options.OnResult(result)
	}
}

// shouldIgnoreDir checks if a directory should never be watched.
func shouldIgnoreDir(path string) bool {
	switch filepath.Base(path) {
	case "node_modules", ".git", "vendor", "dist", "build":
		return true
	}
	return false
}
