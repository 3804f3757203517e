// Package levelwatch reloads custom level directories when their files
// change. Bursts of filesystem events are coalesced into one batch.
package levelwatch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for a burst of events to end.
const DefaultDebounce = 150 * time.Millisecond

// Change is one file that was written, created, renamed or removed.
type Change struct {
	Path    string
	Removed bool
}

// Watcher watches a directory tree for level file changes.
type Watcher struct {
	root     string
	exts     []string
	debounce time.Duration
	fs       *fsnotify.Watcher
}

// New starts watching root and every directory below it. Only files with
// one of exts are reported; an empty exts reports everything.
func New(root string, exts []string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("levelwatch: cannot create watcher: %w", err)
	}

	w := &Watcher{root: root, exts: exts, debounce: DefaultDebounce, fs: fw}
	if err := w.addTree(root); err != nil {
		fw.Close()
		return nil, err
	}
	return w, nil
}

// SetDebounce changes the coalescing window.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

// Run delivers batches of changes to fn until ctx is cancelled or the
// watcher fails. Each batch is sorted by path, one entry per file.
func (w *Watcher) Run(ctx context.Context, fn func([]Change)) error {
	pending := make(map[string]bool) // path -> removed
	timer := time.NewTimer(time.Hour)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = w.addTree(ev.Name)
					continue
				}
			}
			if !w.interesting(ev) {
				continue
			}
			pending[ev.Name] = ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)
			timer.Reset(w.debounce)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("levelwatch: %w", err)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			fn(flush(pending))
		}
	}
}

func (w *Watcher) interesting(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
		!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	if len(w.exts) == 0 {
		return true
	}
	return slices.Contains(w.exts, strings.ToLower(filepath.Ext(ev.Name)))
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("levelwatch: cannot walk %s: %w", path, err)
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fs.Add(path); err != nil {
			return fmt.Errorf("levelwatch: cannot watch %s: %w", path, err)
		}
		return nil
	})
}

func flush(pending map[string]bool) []Change {
	out := make([]Change, 0, len(pending))
	for path, removed := range pending {
		out = append(out, Change{Path: path, Removed: removed})
		delete(pending, path)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}
