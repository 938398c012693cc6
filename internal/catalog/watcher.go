package catalog

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watcher reloads a catalog file whenever it is written or replaced.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	onReload func(*Catalog)
	logger   zerolog.Logger
	done     chan struct{}
}

// NewWatcher watches the directory containing path so that editors which
// replace the file atomically are still observed.
func NewWatcher(path string, onReload func(*Catalog), logger zerolog.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fsWatcher.Close()
		return nil, err
	}
	if err := fsWatcher.Add(filepath.Dir(abs)); err != nil {
		fsWatcher.Close()
		return nil, err
	}
	return &Watcher{
		watcher:  fsWatcher,
		path:     abs,
		onReload: onReload,
		logger:   logger,
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching in a background goroutine.
func (w *Watcher) Start() {
	go func() {
		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != w.path {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				w.reload()

			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				w.logger.Warn().Err(err).Msg("catalog watcher error")

			case <-w.done:
				return
			}
		}
	}()
}

func (w *Watcher) reload() {
	c, err := Load(w.path)
	if err != nil {
		// Keep serving the previous catalog; a half-written file is common.
		w.logger.Warn().Err(err).Str("path", w.path).Msg("catalog reload failed")
		return
	}
	w.logger.Info().Str("path", w.path).Int("components", c.Count()).Msg("catalog reloaded")
	w.onReload(c)
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.watcher.Close()
}
