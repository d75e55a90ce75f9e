// Package watch turns filesystem writes to a draft file into content-changed
// events for the session. Editors save with write+rename as often as with
// in-place writes, so the parent directory is watched, not the file itself.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/cynit/hub/internal/logging"
	"github.com/fsnotify/fsnotify"
)

type Watcher struct {
	path     string
	debounce time.Duration
	onChange func(content string)
	log      logging.Logger

	fsw  *fsnotify.Watcher
	done chan struct{}
}

// New starts watching path. Bursts of write events within the debounce
// window collapse into one onChange call carrying the file's final content.
func New(path string, debounce time.Duration, onChange func(content string), log logging.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		path:     abs,
		debounce: debounce,
		onChange: onChange,
		log:      log,
		fsw:      fsw,
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	defer close(w.done)

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Name != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.emit()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn(context.Background(), "watcher error", "error", err.Error())
		}
	}
}

func (w *Watcher) emit() {
	data, err := os.ReadFile(w.path)
	if err != nil {
		w.log.Warn(context.Background(), "reading draft failed", "path", w.path, "error", err.Error())
		return
	}
	w.onChange(string(data))
}

// Close stops the watcher and waits for the event loop to exit.
func (w *Watcher) Close() error {
	err := w.fsw.Close()
	<-w.done
	return err
}
