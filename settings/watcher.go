package settings

import (
	"fmt"
	"os"
	"time"
)

// Watcher polls a settings file for modifications. It is driven by tick time rather than a
// goroutine so that reloads are only ever observed at a tick boundary.
type Watcher struct {
	path     string
	interval float32
	elapsed  float32
	modTime  time.Time
}

// NewWatcher returns a watcher for path that checks for changes every interval seconds.
func NewWatcher(path string, interval float32) *Watcher {
	w := &Watcher{path: path, interval: interval}
	if info, err := os.Stat(path); err == nil {
		w.modTime = info.ModTime()
	}
	return w
}

// SetInterval changes the polling interval, typically after a reload changed it.
func (w *Watcher) SetInterval(interval float32) {
	w.interval = interval
}

// Poll advances the watcher by dt seconds. Once the interval has elapsed it compares the file's
// modification time with the last seen one and reloads the file if it changed. A missing file
// is not an error: the current settings stay in effect.
func (w *Watcher) Poll(dt float32) (Settings, bool, error) {
	w.elapsed += dt
	if w.elapsed < w.interval {
		return Settings{}, false, nil
	}
	w.elapsed = 0

	info, err := os.Stat(w.path)
	if err != nil {
		return Settings{}, false, nil
	}
	if !info.ModTime().After(w.modTime) {
		return Settings{}, false, nil
	}
	w.modTime = info.ModTime()

	s, err := Load(w.path)
	if err != nil {
		return Settings{}, false, fmt.Errorf("hot reload %s: %w", w.path, err)
	}
	return s, true, nil
}
