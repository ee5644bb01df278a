package devserver

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// Watcher polls a directory tree for added, modified and removed files.
type Watcher struct {
	root     string
	interval time.Duration
	logger   *slog.Logger

	mu       sync.Mutex
	onChange func(files []string)
	seen     map[string]time.Time
	primed   bool
}

// NewWatcher creates a watcher over root. interval defaults to one second.
func NewWatcher(root string, interval time.Duration, logger *slog.Logger) *Watcher {
	if interval <= 0 {
		interval = time.Second
	}
	if logger == nil {
		logger = slog.Default().With("component", "watcher")
	}
	return &Watcher{
		root:     root,
		interval: interval,
		logger:   logger,
		seen:     make(map[string]time.Time),
	}
}

// OnChange sets the callback invoked with the changed paths, relative to
// the root and sorted.
func (w *Watcher) OnChange(fn func(files []string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Run polls until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	w.Poll()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.Poll()
		}
	}
}

// Poll scans the tree once and reports changes since the previous scan.
// The first scan only records the baseline.
func (w *Watcher) Poll() []string {
	current := make(map[string]time.Time)
	err := filepath.WalkDir(w.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(w.root, p)
		if err != nil {
			return nil
		}
		current[filepath.ToSlash(rel)] = info.ModTime()
		return nil
	})
	if err != nil {
		w.logger.Warn("scan failed", "root", w.root, "error", err)
	}

	w.mu.Lock()
	var changed []string
	if w.primed {
		for p, mod := range current {
			if prev, ok := w.seen[p]; !ok || mod.After(prev) {
				changed = append(changed, p)
			}
		}
		for p := range w.seen {
			if _, ok := current[p]; !ok {
				changed = append(changed, p)
			}
		}
	}
	w.seen = current
	w.primed = true
	callback := w.onChange
	w.mu.Unlock()

	if len(changed) == 0 {
		return nil
	}
	sort.Strings(changed)
	w.logger.Debug("dist changed", "files", len(changed))
	if callback != nil {
		callback(changed)
	}
	return changed
}
