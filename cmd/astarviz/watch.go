package main

import (
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// layoutWatcher signals when the layout file is written or replaced. It
// watches the parent directory because editors often save by renaming.
type layoutWatcher struct {
	fsw     *fsnotify.Watcher
	target  string
	changes chan struct{}
	done    chan struct{}
}

func watchLayout(path string, logger *slog.Logger) (*layoutWatcher, error) {
	target, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(target)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &layoutWatcher{
		fsw:     fsw,
		target:  target,
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go w.loop(logger)
	return w, nil
}

func (w *layoutWatcher) loop(logger *slog.Logger) {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			logger.Debug("layout changed", "path", ev.Name, "op", ev.Op.String())
			// Coalesce bursts; one pending reload is enough.
			select {
			case w.changes <- struct{}{}:
			default:
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("layout watcher error", "error", err)
		}
	}
}

// Changes delivers one value per burst of writes to the layout file.
func (w *layoutWatcher) Changes() <-chan struct{} { return w.changes }

func (w *layoutWatcher) Close() error {
	err := w.fsw.Close()
	<-w.done
	return err
}
