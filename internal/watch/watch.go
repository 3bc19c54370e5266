// Package watch turns file system events under a guide's sources into
// debounced rebuild callbacks.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 200 * time.Millisecond

// Watcher calls OnChange once per burst of changes to Paths. A path may
// be a directory (its direct entries are watched) or a file.
type Watcher struct {
	Paths    []string
	Debounce time.Duration
	OnChange func(ctx context.Context, changed []string)
	Log      *log.Logger
}

type targets struct {
	dirs  map[string]bool
	files map[string]bool
}

func resolveTargets(paths []string) (targets, []string, error) {
	t := targets{dirs: map[string]bool{}, files: map[string]bool{}}
	var watch []string
	seen := map[string]bool{}
	add := func(dir string) {
		if !seen[dir] {
			seen[dir] = true
			watch = append(watch, dir)
		}
	}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return t, nil, err
		}
		info, err := os.Stat(abs)
		if err != nil {
			return t, nil, fmt.Errorf("watching %s: %w", p, err)
		}
		if info.IsDir() {
			t.dirs[abs] = true
			add(abs)
			continue
		}
		// Editors often save by renaming over the file, so watch its directory.
		t.files[abs] = true
		add(filepath.Dir(abs))
	}
	return t, watch, nil
}

func (t targets) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	name := filepath.Clean(ev.Name)
	if t.files[name] {
		return true
	}
	base := filepath.Base(name)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return false
	}
	return t.dirs[filepath.Dir(name)]
}

// Run watches until ctx is done. Watcher errors are logged, not returned.
func (w *Watcher) Run(ctx context.Context) error {
	if w.OnChange == nil {
		return fmt.Errorf("watch: OnChange is required")
	}
	logger := w.Log
	if logger == nil {
		logger = log.Default()
	}
	t, dirs, err := resolveTargets(w.Paths)
	if err != nil {
		return err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()
	for _, d := range dirs {
		if err := fw.Add(d); err != nil {
			return fmt.Errorf("watching %s: %w", d, err)
		}
		logger.Debug("watching", "dir", d)
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	loop(ctx, fw.Events, fw.Errors, debounce, t.relevant, w.OnChange, logger)
	return nil
}

func loop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, debounce time.Duration,
	relevant func(fsnotify.Event) bool, onChange func(context.Context, []string), logger *log.Logger) {
	pending := map[string]bool{}
	timer := time.NewTimer(debounce)
	timer.Stop()
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if !relevant(ev) {
				continue
			}
			pending[ev.Name] = true
			timer.Reset(debounce)
			fire = timer.C
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			logger.Warn("watch error", "err", err)
		case <-fire:
			fire = nil
			changed := make([]string, 0, len(pending))
			for name := range pending {
				changed = append(changed, name)
			}
			sort.Strings(changed)
			pending = map[string]bool{}
			onChange(ctx, changed)
		}
	}
}
