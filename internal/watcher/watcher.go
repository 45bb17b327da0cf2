// Package watcher follows a Markdown file on disk and publishes its new
// contents after each burst of changes settles.
package watcher

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/markview/internal/log"
	"github.com/zjrosen/markview/internal/pubsub"
)

// Change describes the watched file after a burst of writes. Contents is
// empty for pubsub.DeletedEvent.
type Change struct {
	Path     string
	Contents string
}

// Event is what subscribers receive.
type Event = pubsub.Event[Change]

// Config holds watcher options.
type Config struct {
	Path     string
	Debounce time.Duration
}

// DefaultConfig watches path with a 200ms debounce.
func DefaultConfig(path string) Config {
	return Config{Path: path, Debounce: 200 * time.Millisecond}
}

// Watcher monitors one file. The parent directory is watched so editors
// that save by rename are still seen.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	debounce  time.Duration
	broker    *pubsub.Broker[Change]
	done      chan struct{}
}

// New creates a watcher. Call Start to begin watching.
func New(cfg Config) (*Watcher, error) {
	abs, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", cfg.Path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultConfig(abs).Debounce
	}
	return &Watcher{
		fsWatcher: fsw,
		path:      abs,
		debounce:  debounce,
		broker:    pubsub.NewBrokerWithBuffer[Change](4),
		done:      make(chan struct{}),
	}, nil
}

// Broker is where change events are published. Subscribe before Start to
// see every event.
func (w *Watcher) Broker() *pubsub.Broker[Change] {
	return w.broker
}

// Path is the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Start begins watching the file's directory.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.path)
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("watching directory %s: %w", dir, err)
	}
	log.Info(log.CatWatcher, "watching", "path", w.path, "debounce", w.debounce)
	go w.loop()
	return nil
}

// Stop terminates the watcher and closes the broker.
func (w *Watcher) Stop() error {
	close(w.done)
	err := w.fsWatcher.Close()
	w.broker.Close()
	return err
}

func (w *Watcher) loop() {
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.isRelevantEvent(event) {
				continue
			}
			log.Debug(log.CatWatcher, "fs event", "op", event.Op.String(), "name", event.Name)
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.debounce)

		case <-timer.C:
			w.publish()

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatcher, "watch error", err, "path", w.path)

		case <-w.done:
			return
		}
	}
}

// publish reads the file once the burst has settled.
func (w *Watcher) publish() {
	data, err := os.ReadFile(w.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Warn(log.CatWatcher, "file removed", "path", w.path)
		w.broker.Publish(pubsub.DeletedEvent, Change{Path: w.path})
	case err != nil:
		log.ErrorErr(log.CatWatcher, "read failed", err, "path", w.path)
	default:
		log.Debug(log.CatWatcher, "file changed", "path", w.path, "bytes", len(data))
		w.broker.Publish(pubsub.UpdatedEvent, Change{Path: w.path, Contents: string(data)})
	}
}

func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	name, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return name == w.path
}
