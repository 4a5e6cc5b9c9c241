// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period used when Config.Debounce is not set.
// Editors commonly write a temp file and rename it, which produces several
// events for one save.
const DefaultDebounce = 300 * time.Millisecond

var (
	// ErrAlreadyRunning is returned when Run is called a second time.
	ErrAlreadyRunning = errors.New("watcher already running")

	// ErrInvalidPattern is returned for globs doublestar cannot parse.
	ErrInvalidPattern = errors.New("invalid glob pattern")

	// defaultIgnores are editor and OS artifacts that never trigger a reload.
	defaultIgnores = []string{
		"*.swp",
		"*.swo",
		"*~",
		".#*",
		"#*#",
		".DS_Store",
	}
)

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// Dir is the directory to monitor. Empty means the working directory.
		Dir string
		// Patterns select the file names that trigger the callback. An empty
		// slice matches every file that is not ignored.
		Patterns []string
		// Ignore lists extra patterns merged with the built-in ignores.
		Ignore []string
		// Debounce is the quiet period after the last event before the
		// callback fires (DefaultDebounce when zero or negative).
		Debounce time.Duration
		// OnChange receives the sorted names of the changed files.
		OnChange func(ctx context.Context, changed []string) error
		// Logger receives watcher diagnostics (discarded when nil).
		Logger *log.Logger
	}

	// Watcher monitors a directory and fires a debounced callback when
	// matching files change. Run may be called once.
	Watcher struct {
		cfg      Config
		fsw      *fsnotify.Watcher
		ignores  []string
		logger   *log.Logger
		debounce time.Duration
		dir      string
		started  atomic.Bool
	}
)

// ForFile returns a Config watching the single file at path. The parent
// directory is monitored so saves that replace the file are seen.
func ForFile(path string) (Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Config{}, fmt.Errorf("resolve %q: %w", path, err)
	}
	return Config{
		Dir:      filepath.Dir(abs),
		Patterns: []string{escapeGlob(filepath.Base(abs))},
	}, nil
}

// Validate checks every pattern in the config and joins the failures.
func (c Config) Validate() error {
	var errs []error
	for _, pat := range c.Patterns {
		if !doublestar.ValidatePattern(pat) {
			errs = append(errs, fmt.Errorf("%w: watch pattern %q", ErrInvalidPattern, pat))
		}
	}
	for _, pat := range c.Ignore {
		if !doublestar.ValidatePattern(pat) {
			errs = append(errs, fmt.Errorf("%w: ignore pattern %q", ErrInvalidPattern, pat))
		}
	}
	return errors.Join(errs...)
}

// New creates a Watcher and registers Dir with fsnotify.
func New(cfg Config) (*Watcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve watch directory: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if err := fsw.Add(abs); err != nil {
		if closeErr := fsw.Close(); closeErr != nil {
			logger.Warn("close after init failure", "err", closeErr)
		}
		return nil, fmt.Errorf("watch %q: %w", abs, err)
	}

	return &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		ignores:  slices.Concat(defaultIgnores, cfg.Ignore),
		logger:   logger,
		debounce: debounce,
		dir:      abs,
	}, nil
}

// Run blocks until ctx is cancelled, dispatching debounced callbacks. It
// returns nil on cancellation and an error when the watcher breaks.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		timer   *time.Timer
		running atomic.Bool
	)

	// fire drains the pending set. A callback still running when the next
	// window closes reschedules instead of overlapping.
	fire := func() {
		if ctx.Err() != nil {
			return
		}
		if !running.CompareAndSwap(false, true) {
			w.logger.Debug("callback busy, rescheduling")
			mu.Lock()
			timer.Reset(w.debounce)
			mu.Unlock()
			return
		}
		defer running.Store(false)

		mu.Lock()
		if len(pending) == 0 {
			mu.Unlock()
			return
		}
		changed := slices.Sorted(maps.Keys(pending))
		clear(pending)
		mu.Unlock()

		w.logger.Debug("files changed", "files", changed)
		if w.cfg.OnChange == nil {
			return
		}
		if err := w.cfg.OnChange(ctx, changed); err != nil {
			w.logger.Warn("change handler failed", "err", err)
		}
	}

	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
		if err := w.fsw.Close(); err != nil {
			w.logger.Warn("close file watcher", "err", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("file watcher event channel closed")
			}
			if !evt.Has(fsnotify.Write) && !evt.Has(fsnotify.Create) && !evt.Has(fsnotify.Rename) {
				continue
			}
			name, relevant := w.relevant(evt.Name)
			if !relevant {
				continue
			}

			mu.Lock()
			pending[name] = struct{}{}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("file watcher error channel closed")
			}
			if isFatalFsnotifyError(err) {
				return fmt.Errorf("file watcher failed: %w", err)
			}
			w.logger.Warn("file watcher error", "err", err)
		}
	}
}

// relevant returns the name of path relative to the watched directory and
// whether it passes the ignore and pattern filters.
func (w *Watcher) relevant(path string) (string, bool) {
	rel, err := filepath.Rel(w.dir, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	if matchAny(w.ignores, rel) {
		return rel, false
	}
	if len(w.cfg.Patterns) == 0 {
		return rel, true
	}
	return rel, matchAny(w.cfg.Patterns, rel)
}

// DefaultIgnores returns a copy of the built-in ignore patterns.
func DefaultIgnores() []string {
	return slices.Clone(defaultIgnores)
}

func matchAny(patterns []string, name string) bool {
	for _, pat := range patterns {
		if ok, err := doublestar.Match(pat, name); err == nil && ok {
			return true
		}
	}
	return false
}

// escapeGlob quotes glob metacharacters so a literal file name matches itself.
func escapeGlob(name string) string {
	var b strings.Builder
	for _, r := range name {
		if strings.ContainsRune(`*?[]{}\`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
