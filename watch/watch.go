// Package watch observes ontology documents on disk and reports change
// batches, so callers can revalidate or recompile without restarting.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Config configures the ontology watcher
type Config struct {
	// Path is the ontology file or directory to watch
	Path string

	// DebounceDelay is how long to wait for more changes before reporting
	// a batch
	DebounceDelay time.Duration

	// Logger for logging events
	Logger *slog.Logger
}

// Batch is one debounced set of changed YAML paths.
type Batch struct {
	// Paths are the changed files, relative to the watched path when it
	// is a directory.
	Paths []string
}

// Watcher watches ontology YAML files and emits debounced change batches
type Watcher struct {
	config  Config
	root    string
	watcher *fsnotify.Watcher
	logger  *slog.Logger

	// Debouncing: collect changed paths before reporting
	pendingMu sync.Mutex
	pending   map[string]struct{}

	batches chan Batch
}

// New creates a watcher for an ontology file or directory
func New(config Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if config.DebounceDelay == 0 {
		config.DebounceDelay = 300 * time.Millisecond
	}

	return &Watcher{
		config:  config,
		watcher: fsw,
		logger:  logger,
		pending: make(map[string]struct{}),
		batches: make(chan Batch, 16),
	}, nil
}

// Batches returns the channel of change batches
func (w *Watcher) Batches() <-chan Batch {
	return w.batches
}

// Start begins watching for changes
func (w *Watcher) Start(ctx context.Context) error {
	info, err := os.Stat(w.config.Path)
	if err != nil {
		return err
	}

	if info.IsDir() {
		w.root = w.config.Path
		if err := w.addWatchesRecursive(w.config.Path); err != nil {
			return err
		}
	} else {
		// Watching a single file means watching its directory; editors
		// often replace files via rename, which drops a file-level watch.
		w.root = filepath.Dir(w.config.Path)
		if err := w.watcher.Add(w.root); err != nil {
			return err
		}
	}

	go w.processEvents(ctx)

	w.logger.Info("Ontology watcher started",
		"path", w.config.Path,
		"debounce", w.config.DebounceDelay)

	return nil
}

// Stop stops the watcher. The batch channel is closed by the event
// goroutine once it drains, never here, so a tick racing Stop cannot send
// on a closed channel.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

// addWatchesRecursive adds watches to all directories under root
func (w *Watcher) addWatchesRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() {
			return nil
		}

		base := filepath.Base(path)
		if strings.HasPrefix(base, ".") && path != root {
			return filepath.SkipDir
		}

		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("Failed to watch directory",
				"path", path,
				"error", err)
		} else {
			w.logger.Debug("Watching directory", "path", path)
		}

		return nil
	})
}

// processEvents handles fsnotify events with debouncing. It is the only
// sender on the batch channel and closes it on exit.
func (w *Watcher) processEvents(ctx context.Context) {
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
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", "error", err)

		case <-ticker.C:
			w.flushPending()
		}
	}
}

// handleFSEvent processes a single fsnotify event
func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	path := event.Name

	if !isYAML(path) {
		// Handle directory creation so new subtrees get watched too
		if event.Has(fsnotify.Create) {
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				w.handleNewDirectory(path)
			}
		}
		return
	}

	relPath, err := filepath.Rel(w.root, path)
	if err != nil {
		relPath = path
	}

	w.pendingMu.Lock()
	w.pending[relPath] = struct{}{}
	w.pendingMu.Unlock()

	w.logger.Debug("Ontology change detected",
		"path", relPath,
		"op", event.Op.String())
}

// handleNewDirectory adds a watch to a newly created directory
func (w *Watcher) handleNewDirectory(path string) {
	if strings.HasPrefix(filepath.Base(path), ".") {
		return
	}

	if err := w.watcher.Add(path); err != nil {
		w.logger.Warn("Failed to watch new directory",
			"path", path,
			"error", err)
	} else {
		w.logger.Debug("Added watch for new directory", "path", path)
	}
}

// flushPending reports accumulated changes as one batch
func (w *Watcher) flushPending() {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}

	paths := make([]string, 0, len(w.pending))
	for path := range w.pending {
		paths = append(paths, path)
	}
	w.pending = make(map[string]struct{})
	w.pendingMu.Unlock()

	select {
	case w.batches <- Batch{Paths: paths}:
		w.logger.Debug("Reported change batch", "files", len(paths))
	default:
		w.logger.Warn("Batch channel full, dropping batch", "files", len(paths))
	}
}

func isYAML(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".yaml" || ext == ".yml"
}
