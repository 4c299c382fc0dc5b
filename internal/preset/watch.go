package preset

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileWatcher polls the preset directory and calls onChange for every file
// that appears, changes or disappears.
type FileWatcher struct {
	Dir      string
	Interval time.Duration
	Logger   *slog.Logger

	onChange  func(string)
	stopCh    chan struct{}
	stopOnce  sync.Once
	lastMTime map[string]time.Time
}

// NewFileWatcher creates a watcher over dir's *.yaml files.
func NewFileWatcher(dir string, interval time.Duration, onChange func(string)) *FileWatcher {
	return &FileWatcher{
		Dir:       dir,
		Interval:  interval,
		Logger:    slog.Default(),
		onChange:  onChange,
		stopCh:    make(chan struct{}),
		lastMTime: make(map[string]time.Time),
	}
}

// Start begins polling in a goroutine.
func (w *FileWatcher) Start() {
	ticker := time.NewTicker(w.Interval)
	go func() {
		defer ticker.Stop()
		w.scanAll(true)
		for {
			select {
			case <-ticker.C:
				w.scanAll(false)
			case <-w.stopCh:
				return
			}
		}
	}()
}

// Stop terminates the watcher. It is safe to call more than once.
func (w *FileWatcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
}

// scanAll compares mtimes with the previous scan. The priming scan only
// records them.
func (w *FileWatcher) scanAll(prime bool) {
	files, err := filepath.Glob(filepath.Join(w.Dir, "*.yaml"))
	if err != nil {
		w.Logger.Warn("preset scan failed", slog.String("dir", w.Dir), slog.Any("error", err))
		return
	}
	seen := make(map[string]bool, len(files))
	for _, p := range files {
		fi, err := os.Stat(p)
		if err != nil {
			continue
		}
		seen[p] = true
		mt := fi.ModTime()
		last, ok := w.lastMTime[p]
		w.lastMTime[p] = mt
		if prime {
			continue
		}
		if !ok || mt.After(last) {
			w.notify(p)
		}
	}
	for p := range w.lastMTime {
		if !seen[p] {
			delete(w.lastMTime, p)
			if !prime {
				w.notify(p)
			}
		}
	}
}

func (w *FileWatcher) notify(path string) {
	w.Logger.Info("preset changed", slog.String("path", path))
	if w.onChange != nil {
		w.onChange(path)
	}
}
