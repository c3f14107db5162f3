package service

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long changes are collected before a batch is emitted
const DefaultDebounce = 300 * time.Millisecond

// skippedDirs are never watched
var skippedDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
	"storage":      true,
}

// WatchConfig configures the watch service
type WatchConfig struct {
	// Root is the directory watched recursively
	Root string

	// DebounceDelay is how long to wait for more changes before emitting a batch
	DebounceDelay time.Duration

	Logger *slog.Logger
}

// WatchService watches a project for PHP file changes and emits debounced
// batches of changed paths
type WatchService struct {
	config  WatchConfig
	watcher *fsnotify.Watcher
	logger  *slog.Logger

	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op

	batches chan []string
}

// NewWatchService creates a watch service
func NewWatchService(config WatchConfig) (*WatchService, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.DebounceDelay <= 0 {
		config.DebounceDelay = DefaultDebounce
	}

	return &WatchService{
		config:  config,
		watcher: fsw,
		logger:  config.Logger,
		pending: make(map[string]fsnotify.Op),
		batches: make(chan []string, 1),
	}, nil
}

// Batches returns the channel of changed path batches. It is closed when the
// service stops or ctx passed to Start is done.
func (w *WatchService) Batches() <-chan []string {
	return w.batches
}

// Start adds watches below the root and begins processing events
func (w *WatchService) Start(ctx context.Context) error {
	if err := w.addWatchesRecursive(w.config.Root); err != nil {
		return err
	}

	go w.processEvents(ctx)

	w.logger.Info("watching for changes",
		slog.String("root", w.config.Root),
		slog.Duration("debounce", w.config.DebounceDelay))
	return nil
}

// Stop releases the underlying watcher
func (w *WatchService) Stop() error {
	return w.watcher.Close()
}

func (w *WatchService) addWatchesRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skipDir(d.Name()) {
			return filepath.SkipDir
		}

		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("failed to watch directory",
				slog.String("path", path),
				slog.String("error", err.Error()))
		}
		return nil
	})
}

func skipDir(name string) bool {
	return skippedDirs[name] || strings.HasPrefix(name, ".")
}

func (w *WatchService) processEvents(ctx context.Context) {
	defer close(w.batches)

	ticker := time.NewTicker(w.config.DebounceDelay)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
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
			w.logger.Error("watcher error", slog.String("error", err.Error()))

		case <-ticker.C:
			batch := w.drainPending()
			if len(batch) == 0 {
				continue
			}
			select {
			case w.batches <- batch:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (w *WatchService) handleEvent(event fsnotify.Event) {
	path := event.Name

	if !strings.EqualFold(filepath.Ext(path), ".php") {
		if event.Has(fsnotify.Create) {
			w.handleNewDirectory(path)
		}
		return
	}
	if event.Op == fsnotify.Chmod {
		return
	}

	w.pendingMu.Lock()
	w.pending[path] = event.Op
	w.pendingMu.Unlock()

	w.logger.Debug("change detected",
		slog.String("path", path),
		slog.String("op", event.Op.String()))
}

func (w *WatchService) handleNewDirectory(path string) {
	if skipDir(filepath.Base(path)) {
		return
	}
	// a new directory may already contain files; they show up on the next write
	if err := w.addWatchesRecursive(path); err != nil {
		w.logger.Debug("not a watchable directory", slog.String("path", path))
	}
}

func (w *WatchService) drainPending() []string {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	if len(w.pending) == 0 {
		return nil
	}
	batch := make([]string, 0, len(w.pending))
	for path := range w.pending {
		batch = append(batch, path)
	}
	w.pending = make(map[string]fsnotify.Op)

	sort.Strings(batch)
	return batch
}
