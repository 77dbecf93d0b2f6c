package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/raphi011/gitstatus/internal/log"
	"github.com/raphi011/gitstatus/internal/prompt"
)

// DefaultDebounce is used when Options.Debounce is not positive.
const DefaultDebounce = 250 * time.Millisecond

// Options configures Run.
type Options struct {
	// Debounce is how long the repository must stay quiet after an event
	// before the cache is re-evaluated.
	Debounce time.Duration

	// Interval forces a refresh this often even without events, so the
	// cache never expires while watching. Zero disables it.
	Interval time.Duration

	// OnUpdate is called after every evaluation. Optional.
	OnUpdate func(prompt.Result)
}

// Run keeps the cache of st warm until ctx is cancelled. It evaluates the
// cache once on start, then again whenever the index, HEAD, packed-refs or
// a ref under .git/refs changes. Returns nil when ctx is cancelled.
func Run(ctx context.Context, st *prompt.Status, opts Options) error {
	l := log.FromContext(ctx)

	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	notify := opts.OnUpdate
	if notify == nil {
		notify = func(prompt.Result) {}
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	gitDir := filepath.Join(st.Root(), ".git")
	if err := w.Add(gitDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", gitDir, err)
	}
	if err := addTree(w, filepath.Join(gitDir, "refs")); err != nil {
		return err
	}
	l.Debug("watching repository", "git_dir", gitDir, "debounce", opts.Debounce)

	notify(st.Resolve(ctx))

	debounce := time.NewTimer(opts.Debounce)
	debounce.Stop()
	defer debounce.Stop()

	var tick <-chan time.Time
	if opts.Interval > 0 {
		ticker := time.NewTicker(opts.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !relevant(gitDir, ev.Name) {
				continue
			}
			l.Debug("repository changed", "path", ev.Name, "op", ev.Op.String())
			if ev.Has(fsnotify.Create) {
				// New ref namespaces, e.g. the first branch with a slash
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := addTree(w, ev.Name); err != nil {
						l.Debug("failed to watch new directory", "error", err)
					}
				}
			}
			debounce.Reset(opts.Debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			l.Debug("watcher error", "error", err)

		case <-debounce.C:
			notify(st.Resolve(ctx))

		case <-tick:
			notify(st.Refresh(ctx))
		}
	}
}

// addTree watches dir and all its subdirectories. A missing dir is fine.
func addTree(w *fsnotify.Watcher, dir string) error {
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to watch refs: %w", err)
	}
	return nil
}

// relevant reports whether a change at path can affect the cache signals.
// Lock files are skipped; git renames them over the real file when done.
func relevant(gitDir, path string) bool {
	if strings.HasSuffix(path, ".lock") {
		return false
	}
	rel, err := filepath.Rel(gitDir, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	switch rel {
	case "index", "HEAD", "packed-refs":
		return true
	}
	return strings.HasPrefix(rel, "refs/")
}
