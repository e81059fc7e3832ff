package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrRunning is returned when Watch is called on a watcher that is already
// running.
var ErrRunning = errors.New("watch: watcher already running")

// Handler receives the set of form documents that changed during one quiet
// period. Paths are sorted and unique.
type Handler func(ctx context.Context, paths []string)

// Config controls which paths are watched and how events are coalesced.
type Config struct {
	// Paths lists files or directories. Directories are watched recursively.
	Paths []string

	// Debounce is the quiet period after the last event before Handler runs
	// (default: 200ms).
	Debounce time.Duration

	// Extensions filters events by file extension.
	Extensions []string

	// SkipHidden ignores dot-files and dot-directories.
	SkipHidden bool
}

// DefaultConfig returns the configuration used by `formcheck watch`.
func DefaultConfig() Config {
	return Config{
		Debounce:   200 * time.Millisecond,
		Extensions: []string{".json", ".yaml", ".yml"},
		SkipHidden: true,
	}
}

// Watcher re-validates form documents on change.
type Watcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	config   Config
	debounce *Debouncer

	mu      sync.Mutex
	running bool
}

// New creates a watcher. A nil logger falls back to slog.Default.
func New(config Config, logger *slog.Logger) (*Watcher, error) {
	defaults := DefaultConfig()
	if config.Debounce <= 0 {
		config.Debounce = defaults.Debounce
	}
	if len(config.Extensions) == 0 {
		config.Extensions = defaults.Extensions
	}
	if len(config.Paths) == 0 {
		return nil, errors.New("watch: at least one path is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	return &Watcher{
		watcher:  fsw,
		logger:   logger,
		config:   config,
		debounce: NewDebouncer(config.Debounce),
	}, nil
}

// Watch blocks until ctx is cancelled, invoking handler with batches of
// changed paths. The underlying fsnotify watcher is closed on return.
func (w *Watcher) Watch(ctx context.Context, handler Handler) error {
	if handler == nil {
		return errors.New("watch: handler is required")
	}
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return ErrRunning
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.debounce.Stop()
		_ = w.watcher.Close()
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	for _, path := range w.config.Paths {
		if err := w.addPath(path); err != nil {
			return fmt.Errorf("watch: %s: %w", path, err)
		}
	}

	w.logger.Info("watching form documents",
		"paths", w.config.Paths,
		"debounce_ms", w.config.Debounce.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return errors.New("watch: events channel closed")
			}
			if event.Op&fsnotify.Create == fsnotify.Create {
				w.trackDirectory(event.Name)
			}
			if !w.shouldProcess(event) {
				continue
			}

			w.logger.Debug("file event", "path", event.Name, "op", event.Op.String())
			w.debounce.Add(event.Name, func(paths []string) {
				handler(ctx, paths)
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return errors.New("watch: errors channel closed")
			}
			w.logger.Error("watcher error", "error", err)
		}
	}
}

func (w *Watcher) addPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return w.watcher.Add(path)
	}
	return filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != path && w.hidden(p) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(p); err != nil {
			return fmt.Errorf("watch directory %q: %w", p, err)
		}
		w.logger.Debug("watching directory", "path", p)
		return nil
	})
}

// trackDirectory starts watching directories created after Watch began.
func (w *Watcher) trackDirectory(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() || w.hidden(path) {
		return
	}
	if err := w.addPath(path); err != nil {
		w.logger.Warn("could not watch new directory", "path", path, "error", err)
	}
}

func (w *Watcher) shouldProcess(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if w.hidden(event.Name) {
		return false
	}
	ext := strings.ToLower(filepath.Ext(event.Name))
	for _, candidate := range w.config.Extensions {
		if ext == strings.ToLower(candidate) {
			return true
		}
	}
	return false
}

func (w *Watcher) hidden(path string) bool {
	return w.config.SkipHidden && strings.HasPrefix(filepath.Base(path), ".")
}

// Debouncer collects paths and flushes them once no new path has arrived for
// the configured interval.
type Debouncer struct {
	interval time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]struct{}
	flush   func([]string)
	stopped bool
}

// NewDebouncer creates a debouncer with the given quiet period.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{interval: interval, pending: map[string]struct{}{}}
}

// Add records path and (re)arms the timer. The most recent flush callback
// wins.
func (d *Debouncer) Add(path string, flush func([]string)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	d.pending[path] = struct{}{}
	d.flush = flush
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if d.stopped || len(d.pending) == 0 {
		d.mu.Unlock()
		return
	}
	paths := make([]string, 0, len(d.pending))
	for p := range d.pending {
		paths = append(paths, p)
	}
	d.pending = map[string]struct{}{}
	cb := d.flush
	d.mu.Unlock()

	sort.Strings(paths)
	if cb != nil {
		cb(paths)
	}
}

// Stop cancels any pending flush. Further Add calls are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = map[string]struct{}{}
	d.flush = nil
}
