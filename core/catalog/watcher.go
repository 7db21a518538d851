package catalog

import (
	"fmt"

	"MeloFM/logger"

	"github.com/fsnotify/fsnotify"
)

// Watcher logs changes to the songs directory. The catalog itself holds no
// state, so the watcher exists purely for operator visibility into files
// appearing and disappearing while the server runs.
type Watcher struct {
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewWatcher starts watching the songs directory.
func NewWatcher(songsDir string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create songs directory watcher: %w", err)
	}

	if err := fsWatcher.Add(songsDir); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("failed to watch songs directory %s: %w", songsDir, err)
	}

	w := &Watcher{
		watcher: fsWatcher,
		done:    make(chan struct{}),
	}
	go w.run()

	logger.Info("Watching songs directory", logger.String("dir", songsDir))
	return w, nil
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			switch {
			case event.Has(fsnotify.Create):
				logger.Info("Song file added", logger.String("file", event.Name))
			case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
				logger.Info("Song file removed", logger.String("file", event.Name))
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Songs directory watcher error", logger.ErrorField(err))
		case <-w.done:
			return
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
