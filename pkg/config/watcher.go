package config

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"

	"github.com/manifold/trayicon/pkg/logging"
)

// Watcher reloads the configuration file when it changes on disk and hands
// changed configurations to OnChange. It runs as a daemon service.
type Watcher struct {
	Path     string
	Fs       afero.Fs
	Logger   logging.DebugLogger
	OnChange func(*Config)

	watcher *fsnotify.Watcher
	last    uint64
}

// NewWatcher returns a watcher for path that treats current as already
// applied.
func NewWatcher(fs afero.Fs, path string, current *Config, onChange func(*Config)) *Watcher {
	w := &Watcher{Path: path, Fs: fs, OnChange: onChange}
	if current != nil {
		w.last, _ = current.Hash()
	}
	return w
}

func (w *Watcher) InitializeDaemon() (err error) {
	w.watcher, err = fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// watch the directory so editors that replace the file are seen
	return w.watcher.Add(filepath.Dir(w.Path))
}

func (w *Watcher) TerminateDaemon() error {
	return w.watcher.Close()
}

func (w *Watcher) Serve(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Chmod == fsnotify.Chmod {
				continue
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.Path) {
				continue
			}
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Debug(w.Logger, "config watcher error: ", err)
		}
	}
}

// reload loads the file and reports whether OnChange was called.
func (w *Watcher) reload() bool {
	cfg, err := Load(w.Fs, w.Path)
	if err != nil {
		logging.Debug(w.Logger, "config reload: ", err)
		return false
	}
	h, err := cfg.Hash()
	if err != nil {
		logging.Debug(w.Logger, "config hash: ", err)
		return false
	}
	if h == w.last {
		return false
	}
	w.last = h
	logging.Info(w.Logger, "config reloaded from ", w.Path)
	if w.OnChange != nil {
		w.OnChange(cfg)
	}
	return true
}
