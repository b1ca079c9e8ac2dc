// Package watcher detects source file changes under a directory tree
// so changed files can be re-analyzed. It polls modification times
// instead of using OS notifications for cross-platform simplicity;
// the interactive triggering this supports does not need lower latency
// than the poll interval.
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"bigo/internal/analysis"
	"bigo/internal/logging"
)

// EventType represents the type of file system event
type EventType int

const (
	EventCreate EventType = iota
	EventModify
	EventDelete
)

// String returns a string representation of the event type
func (e EventType) String() string {
	switch e {
	case EventCreate:
		return "create"
	case EventModify:
		return "modify"
	case EventDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Event represents one observed file change
type Event struct {
	Type      EventType
	Path      string
	Timestamp time.Time
}

// ChangeHandler receives a debounced batch of events
type ChangeHandler func(events []Event)

// Config contains watcher configuration
type Config struct {
	// PollInterval is how often the tree is re-walked
	PollInterval time.Duration

	// Debounce is the quiet period before a batch is delivered
	Debounce time.Duration

	// IgnoreDirs lists directory names skipped during the walk
	IgnoreDirs []string

	// MaxFileSizeBytes skips files larger than this (0 = no limit)
	MaxFileSizeBytes int64
}

// DefaultConfig returns the default watcher configuration
func DefaultConfig() Config {
	return Config{
		PollInterval: 1 * time.Second,
		Debounce:     300 * time.Millisecond,
		IgnoreDirs:   []string{".git", ".bigo", "node_modules", "vendor", "dist", "build", "__pycache__"},
	}
}

// fileState is one file's snapshot entry
type fileState struct {
	modTime time.Time
	size    int64
}

// Watcher polls a directory tree for changes to analyzable source
// files. Only files whose extension maps to a known language family
// are tracked.
type Watcher struct {
	root    string
	config  Config
	logger  *logging.Logger
	handler ChangeHandler
	batch   *BatchDebouncer

	mu       sync.Mutex
	snapshot map[string]fileState

	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a watcher for the tree rooted at root.
func New(root string, config Config, logger *logging.Logger, handler ChangeHandler) *Watcher {
	if config.PollInterval <= 0 {
		config.PollInterval = DefaultConfig().PollInterval
	}
	w := &Watcher{
		root:     root,
		config:   config,
		logger:   logger,
		handler:  handler,
		snapshot: make(map[string]fileState),
	}
	w.batch = NewBatchDebouncer(config.Debounce, func(events []Event) {
		if w.handler != nil {
			w.handler(events)
		}
	})
	return w
}

// Start takes an initial snapshot and begins polling. It returns after
// the poll loop is running; changes present before Start are not
// reported as events.
func (w *Watcher) Start(ctx context.Context) error {
	snapshot, err := w.walk()
	if err != nil {
		return err
	}
	w.mu.Lock()
	w.snapshot = snapshot
	w.mu.Unlock()

	ctx, w.cancel = context.WithCancel(ctx)
	w.done = make(chan struct{})

	w.logger.Info("Watching for source changes", map[string]interface{}{
		"root":         w.root,
		"files":        len(snapshot),
		"pollInterval": w.config.PollInterval.String(),
	})

	go w.loop(ctx)
	return nil
}

// Stop stops polling and discards any pending batch.
func (w *Watcher) Stop() {
	if w.cancel != nil {
		w.cancel()
		<-w.done
	}
	w.batch.Cancel()
	w.logger.Info("Watcher stopped", nil)
}

// TrackedFiles returns the number of files in the current snapshot.
func (w *Watcher) TrackedFiles() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.snapshot)
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.done)

	ticker := time.NewTicker(w.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.poll()
		case <-ctx.Done():
			return
		}
	}
}

// poll re-walks the tree and queues events for the differences against
// the previous snapshot.
func (w *Watcher) poll() {
	current, err := w.walk()
	if err != nil {
		w.logger.Warn("Poll walk failed", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	w.mu.Lock()
	previous := w.snapshot
	w.snapshot = current
	w.mu.Unlock()

	now := time.Now()
	for path, state := range current {
		prev, existed := previous[path]
		switch {
		case !existed:
			w.batch.Add(Event{Type: EventCreate, Path: path, Timestamp: now})
		case state.modTime != prev.modTime || state.size != prev.size:
			w.batch.Add(Event{Type: EventModify, Path: path, Timestamp: now})
		}
	}
	for path := range previous {
		if _, ok := current[path]; !ok {
			w.batch.Add(Event{Type: EventDelete, Path: path, Timestamp: now})
		}
	}
}

// walk snapshots every analyzable file under the root.
func (w *Watcher) walk() (map[string]fileState, error) {
	snapshot := make(map[string]fileState)
	err := filepath.WalkDir(w.root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			// A file vanishing mid-walk shows up as a delete next poll.
			return nil
		}
		if d.IsDir() {
			if w.ignored(d.Name()) && path != w.root {
				return filepath.SkipDir
			}
			return nil
		}
		if !analysis.KnownExtension(path) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if w.config.MaxFileSizeBytes > 0 && info.Size() > w.config.MaxFileSizeBytes {
			return nil
		}
		snapshot[path] = fileState{modTime: info.ModTime(), size: info.Size()}
		return nil
	})
	return snapshot, err
}

func (w *Watcher) ignored(dirName string) bool {
	for _, ig := range w.config.IgnoreDirs {
		if dirName == ig {
			return true
		}
	}
	return false
}
