// Package watch regenerates manifests when the scanned tree changes.
package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/quantmind-br/filemanifest/internal/scan"
	"github.com/quantmind-br/filemanifest/internal/utils"
)

// DefaultDebounce is the quiet period required before a regeneration
const DefaultDebounce = 500 * time.Millisecond

// ErrRootNotFound is returned when the watched root does not exist
var ErrRootNotFound = errors.New("watch root not found")

// Options configures a Watcher
type Options struct {
	Root     string
	MaxDepth int
	Filter   *scan.Filter
	Ignore   []string
	Debounce time.Duration
	Logger   *utils.Logger
}

// Stats tracks watcher activity
type Stats struct {
	Events        int
	Regenerations int
	Errors        int
	LastEventPath string
	LastEventTime time.Time
}

// Watcher reports settled changes below a root directory
type Watcher struct {
	mu       sync.Mutex
	fsw      *fsnotify.Watcher
	fs       billy.Filesystem
	root     string
	maxDepth int
	filter   *scan.Filter
	ignore   map[string]bool
	debounce time.Duration
	logger   *utils.Logger

	pending   bool
	lastEvent time.Time
	stats     Stats
}

// New creates a watcher and registers every directory the builder would
// descend into. Root must be absolute.
func New(opts Options) (*Watcher, error) {
	if opts.MaxDepth < 1 {
		opts.MaxDepth = scan.DefaultMaxDepth
	}
	if opts.Filter == nil {
		opts.Filter = scan.NewFilter(nil, nil)
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = utils.NewNopLogger()
	}

	root := filepath.Clean(opts.Root)
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, ErrRootNotFound
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ignore := make(map[string]bool, len(opts.Ignore)*2)
	for _, p := range opts.Ignore {
		if p == "" {
			continue
		}
		p = filepath.Clean(p)
		ignore[p] = true
		ignore[p+".tmp"] = true
	}

	w := &Watcher{
		fsw:      fsw,
		fs:       osfs.New("/"),
		root:     root,
		maxDepth: opts.MaxDepth,
		filter:   opts.Filter,
		ignore:   ignore,
		debounce: opts.Debounce,
		logger:   opts.Logger.WithComponent("watch"),
	}

	if err := w.addTree(root); err != nil {
		fsw.Close()
		return nil, err
	}

	return w, nil
}

// depth returns how many levels dir sits below the root
func (w *Watcher) depth(dir string) int {
	rel, err := filepath.Rel(w.root, dir)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}

// addTree registers dir and its sub-directories that lie within the depth
// bound and are not excluded.
func (w *Watcher) addTree(dir string) error {
	return util.Walk(w.fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsPermission(err) || os.IsNotExist(err) {
				return filepath.SkipDir
			}
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if path != w.root && w.filter.Excluded(path) {
			return filepath.SkipDir
		}
		if w.depth(path) >= w.maxDepth {
			return filepath.SkipDir
		}

		if err := w.fsw.Add(path); err != nil {
			w.logger.Debug().Err(err).Str("path", path).Msg("Failed to watch directory")
			return nil
		}
		w.logger.Debug().Str("path", path).Msg("Watching directory")
		return nil
	})
}

// Run processes events until ctx is cancelled, calling onChange once the
// tree has been quiet for the debounce window. Calls are serialized.
func (w *Watcher) Run(ctx context.Context, onChange func(context.Context) error) error {
	defer w.fsw.Close()

	tick := w.debounce / 4
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug().Msg("Watch stopped")
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("Watcher error")
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()

		case <-ticker.C:
			if w.settled() {
				w.regenerate(ctx, onChange)
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op == fsnotify.Chmod {
		return
	}
	name := filepath.Clean(event.Name)
	if w.ignore[name] || w.filter.Excluded(name) {
		return
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(name); err == nil && info.IsDir() {
			if err := w.addTree(name); err != nil {
				w.logger.Warn().Err(err).Str("path", name).Msg("Failed to watch new directory")
			}
		}
	}

	w.logger.Debug().Str("path", name).Str("op", event.Op.String()).Msg("Change detected")

	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending = true
	w.lastEvent = time.Now()
	w.stats.Events++
	w.stats.LastEventPath = name
	w.stats.LastEventTime = w.lastEvent
}

// settled reports whether a pending change has been quiet long enough,
// clearing the pending flag when it has.
func (w *Watcher) settled() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.pending || time.Since(w.lastEvent) < w.debounce {
		return false
	}
	w.pending = false
	return true
}

func (w *Watcher) regenerate(ctx context.Context, onChange func(context.Context) error) {
	err := onChange(ctx)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.stats.Regenerations++
	if err != nil {
		w.stats.Errors++
		w.logger.Error().Err(err).Msg("Regeneration failed")
	}
}

// WatchedDirs returns the registered directories in sorted order
func (w *Watcher) WatchedDirs() []string {
	dirs := w.fsw.WatchList()
	sort.Strings(dirs)
	return dirs
}

// Stats returns a snapshot of watcher activity
func (w *Watcher) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

// Close releases the underlying fsnotify watcher. Run closes it on return.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
