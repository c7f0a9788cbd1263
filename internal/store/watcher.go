package store

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultSettleDelay is how long the watcher waits for writes to settle
// before reporting a change
const DefaultSettleDelay = 150 * time.Millisecond

// Watcher reports changes to a store's files made by any process.
// Bursts of events are collapsed into one callback after the settle delay.
type Watcher struct {
	logger   *slog.Logger
	watcher  *fsnotify.Watcher
	match    func(name string) bool
	settle   time.Duration
	onChange func()

	mu    sync.Mutex
	timer *time.Timer

	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewWatcher watches the store at path. For a file, its parent directory is
// watched and only the file and its siblings sharing the file name as prefix
// (e.g. SQLite -wal/-shm files) count. For a directory, every event inside it
// counts.
func NewWatcher(path string, settle time.Duration, onChange func(), logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if settle <= 0 {
		settle = DefaultSettleDelay
	}

	path = filepath.Clean(path)
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat store path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	dir := path
	match := func(string) bool { return true }
	if !info.IsDir() {
		dir = filepath.Dir(path)
		base := filepath.Base(path)
		match = func(name string) bool {
			return strings.HasPrefix(filepath.Base(name), base)
		}
	}

	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	return &Watcher{
		logger:   logger,
		watcher:  fw,
		match:    match,
		settle:   settle,
		onChange: onChange,
		done:     make(chan struct{}),
	}, nil
}

// Start processes events until ctx is cancelled or Close is called
func (w *Watcher) Start(ctx context.Context) {
	w.wg.Add(1)
	go w.processEvents(ctx)
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer w.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op == fsnotify.Chmod || !w.match(event.Name) {
				continue
			}
			w.schedule()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("store watcher error", "error", err)
		}
	}
}

// schedule (re)arms the settle timer
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.settle, func() {
		select {
		case <-w.done:
			return
		default:
		}
		w.onChange()
	})
}

// Close stops the watcher and waits for the event loop to exit
func (w *Watcher) Close() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()
		err = w.watcher.Close()
		w.wg.Wait()
	})
	return err
}
