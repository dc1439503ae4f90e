// Package watcher reports changed Java files below a set of directories,
// batching bursts of filesystem events.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"
	slogctx "github.com/veqryn/slog-context"

	"github.com/siyuan-infoblox/java-imports-group/pkg/errors"
	"github.com/siyuan-infoblox/java-imports-group/pkg/utils"
)

// ChangeFunc receives the sorted paths that changed during one debounce
// window. Calls never overlap.
type ChangeFunc func(ctx context.Context, paths []string)

type Watcher struct {
	fsWatcher    *fsnotify.Watcher
	debounce     time.Duration
	excludeDirs  []glob.Glob
	excludeFiles []glob.Glob
	onChange     ChangeFunc
	callbackMu   sync.Mutex

	pending   map[string]bool
	pendingMu sync.Mutex
	timer     *time.Timer
	roots     map[string]bool
}

func New(debounce time.Duration, excludeDirs, excludeFiles []glob.Glob, onChange ChangeFunc) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errors.ErrMsgFailedToStartWatcher, err)
	}

	return &Watcher{
		fsWatcher:    fsw,
		debounce:     debounce,
		excludeDirs:  excludeDirs,
		excludeFiles: excludeFiles,
		onChange:     onChange,
		pending:      make(map[string]bool),
		roots:        make(map[string]bool),
	}, nil
}

// Watch starts watching every directory below paths. Events are handled
// until ctx is done or the watcher is closed.
func (w *Watcher) Watch(ctx context.Context, paths []string) error {
	for _, path := range paths {
		w.roots[filepath.Clean(path)] = true
		if err := w.watchRecursive(path); err != nil {
			return fmt.Errorf("%s: %w", errors.ErrMsgFailedToStartWatcher, err)
		}
	}

	go w.run(ctx)
	return nil
}

func (w *Watcher) watchRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if w.shouldExcludeDir(path) {
				return filepath.SkipDir
			}
			return w.fsWatcher.Add(path)
		}

		return nil
	})
}

func (w *Watcher) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			if event.Has(fsnotify.Create) {
				info, err := os.Stat(event.Name)
				if err == nil && info.IsDir() {
					if !w.shouldExcludeDir(event.Name) {
						if err := w.watchRecursive(event.Name); err != nil {
							slogctx.Warn(ctx, "failed to watch new directory", "path", event.Name, "error", err)
						} else {
							w.enqueueExistingFiles(ctx, event.Name)
						}
					}
					continue
				}
			}

			if w.shouldExcludeFile(event.Name) {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				w.scheduleChange(ctx, event.Name)
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			slogctx.Error(ctx, "watcher error", "error", err)
		}
	}
}

func (w *Watcher) scheduleChange(ctx context.Context, path string) {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	w.pending[path] = true

	if w.timer != nil {
		w.timer.Stop()
	}

	w.timer = time.AfterFunc(w.debounce, func() {
		w.flushChanges(ctx)
	})
}

func (w *Watcher) flushChanges(ctx context.Context) {
	w.pendingMu.Lock()
	paths := make([]string, 0, len(w.pending))
	for path := range w.pending {
		paths = append(paths, path)
	}
	w.pending = make(map[string]bool)
	w.pendingMu.Unlock()

	if len(paths) == 0 || ctx.Err() != nil {
		return
	}
	sort.Strings(paths)

	w.callbackMu.Lock()
	defer w.callbackMu.Unlock()
	slogctx.Debug(ctx, "files changed", "count", len(paths))
	w.onChange(ctx, paths)
}

func (w *Watcher) shouldExcludeDir(path string) bool {
	if w.roots[filepath.Clean(path)] {
		return false
	}
	return utils.MatchesAny(w.excludeDirs, filepath.Base(path))
}

func (w *Watcher) shouldExcludeFile(path string) bool {
	base := filepath.Base(path)
	return !utils.IsJavaFile(base) || utils.MatchesAny(w.excludeFiles, base)
}

func (w *Watcher) Close() error {
	w.pendingMu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.pendingMu.Unlock()
	return w.fsWatcher.Close()
}

func (w *Watcher) enqueueExistingFiles(ctx context.Context, root string) {
	_ = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil || info == nil {
			return nil
		}
		if info.IsDir() {
			if w.shouldExcludeDir(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if w.shouldExcludeFile(path) {
			return nil
		}
		w.scheduleChange(ctx, path)
		return nil
	})
}
