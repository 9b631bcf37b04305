// Package watch re-runs a callback when the site's configuration, sidebars
// or documents change.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/docsite/internal/content"
	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// DefaultDebounce collapses bursts of editor writes into one run.
const DefaultDebounce = 300 * time.Millisecond

// Targets are the files and directories that make up a site.
type Targets struct {
	ConfigPath   string
	SidebarsPath string
	DocsDir      string
}

// Watcher monitors Targets and calls OnChange after changes settle.
type Watcher struct {
	targets  Targets
	debounce time.Duration
	onChange func(ctx context.Context)
	watcher  *fsnotify.Watcher
}

// New creates a watcher. Paths are made absolute for consistent matching.
func New(targets Targets, debounce time.Duration, onChange func(ctx context.Context)) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs := func(p string) (string, error) {
		if p == "" {
			return "", nil
		}
		return filepath.Abs(p)
	}
	var err error
	if targets.ConfigPath, err = abs(targets.ConfigPath); err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve config path").Build()
	}
	if targets.SidebarsPath, err = abs(targets.SidebarsPath); err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve sidebars path").Build()
	}
	if targets.DocsDir, err = abs(targets.DocsDir); err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve docs directory").Build()
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryRuntime, "failed to create file watcher").Build()
	}
	return &Watcher{targets: targets, debounce: debounce, onChange: onChange, watcher: w}, nil
}

// Run watches until ctx is canceled. OnChange is never called concurrently.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		if err := w.watcher.Close(); err != nil {
			slog.Error("Error closing file watcher", logfields.Error(err))
		}
	}()

	// Watch directories rather than files: editors replace files on save.
	for _, dir := range []string{filepath.Dir(w.targets.ConfigPath), filepath.Dir(w.targets.SidebarsPath)} {
		if err := w.add(dir); err != nil {
			return err
		}
	}
	if err := w.addTree(w.targets.DocsDir); err != nil {
		return err
	}
	slog.Info("Watching for changes", logfields.Path(w.targets.DocsDir))

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create == fsnotify.Create && w.inDocs(event.Name) {
				// New sub directories need their own watch.
				_ = w.addTree(event.Name)
			}
			if !w.relevant(event.Name) {
				continue
			}
			slog.Debug("Change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			fire = timer.C
		case <-fire:
			fire = nil
			w.onChange(ctx)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("File watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) add(dir string) error {
	if err := w.watcher.Add(dir); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to watch directory").
			WithContext("path", dir).Build()
	}
	return nil
}

// addTree watches dir and every sub directory discovery would visit.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != dir && skipped(d.Name()) {
			return fs.SkipDir
		}
		return w.add(p)
	})
}

func (w *Watcher) inDocs(p string) bool {
	rel, err := filepath.Rel(w.targets.DocsDir, p)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// relevant reports whether a change to p affects the site.
func (w *Watcher) relevant(p string) bool {
	switch {
	case p == w.targets.ConfigPath, p == w.targets.SidebarsPath:
		return true
	case filepath.Dir(p) == filepath.Dir(w.targets.ConfigPath) && strings.HasPrefix(filepath.Base(p), ".env"):
		return true
	case !w.inDocs(p):
		return false
	}
	rel, err := filepath.Rel(w.targets.DocsDir, p)
	if err != nil || rel == "." {
		return true
	}
	segments := strings.Split(rel, string(filepath.Separator))
	name := segments[len(segments)-1]
	for _, dir := range segments[:len(segments)-1] {
		// Discovery never enters these directories.
		if skipped(dir) {
			return false
		}
	}
	if strings.HasPrefix(name, "_category_.") {
		return true
	}
	if skipped(name) {
		return false
	}
	// Removed directories no longer exist, so treat any extensionless path as one.
	return content.IsDocFile(name) || filepath.Ext(name) == ""
}

func skipped(name string) bool {
	return strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")
}
