// Package source consumes already-sampled metrics from an external monitor.
// The monitor overwrites a small JSON file on each sample; we pick changes up
// via fsnotify, with the daemon's periodic poll as the fallback. How the
// monitor gathers its numbers is not this engine's concern.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/danielpatrickdp/deskpet/internal/classify"
)

// #region load

// Load reads one metrics snapshot from path.
func Load(path string) (classify.Metrics, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return classify.Metrics{}, fmt.Errorf("source: read %s: %w", path, err)
	}
	var m classify.Metrics
	if err := json.Unmarshal(data, &m); err != nil {
		return classify.Metrics{}, fmt.Errorf("source: parse %s: %w", path, err)
	}
	return m, nil
}

// #endregion load

// #region watcher

// Watcher pushes a snapshot to the sink whenever the samples file changes.
type Watcher struct {
	path string
	sink func(classify.Metrics)
	fsw  *fsnotify.Watcher
}

// NewWatcher watches path's directory (the monitor may replace the file
// atomically, which looks like Create rather than Write).
func NewWatcher(path string, sink func(classify.Metrics)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("source: watcher: %w", err)
	}
	dir := filepath.Dir(path)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("source: watch %s: %w", dir, err)
	}
	return &Watcher{path: path, sink: sink, fsw: fsw}, nil
}

// Run blocks until ctx is cancelled, forwarding each change of the samples
// file. Unparseable snapshots are logged and skipped; the engine keeps its
// last-known-good state.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if ev.Name != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			m, err := Load(w.path)
			if err != nil {
				log.Printf("[SRC] %v", err)
				continue
			}
			w.sink(m)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			log.Printf("[SRC] watch error: %v", err)
		}
	}
}

// #endregion watcher
