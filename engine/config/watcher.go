package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a config file when it changes on disk.
type Watcher interface {
	// Updates delivers each successfully reloaded config. Only the latest undelivered config
	// is kept; invalid files are logged and skipped.
	//
	// Returns:
	//   - <-chan Config: the update channel, closed by Close
	Updates() <-chan Config

	// Close stops watching and closes the update channel.
	//
	// Returns:
	//   - error: error from the underlying watcher
	Close() error
}

type watcherImpl struct {
	path    string
	fs      *fsnotify.Watcher
	updates chan Config
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
	logger  *slog.Logger
}

var _ Watcher = &watcherImpl{}

// WatcherBuilderOption is a functional option for configuring a Watcher via NewWatcher.
type WatcherBuilderOption func(*watcherImpl)

// WithLogger sets the logger used to report reload failures.
//
// Parameters:
//   - logger: the logger, nil keeps slog.Default()
//
// Returns:
//   - WatcherBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) WatcherBuilderOption {
	return func(w *watcherImpl) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWatcher watches the directory holding path, so editors that replace the file on save
// are still seen.
//
// Parameters:
//   - path: the config file to watch
//   - options: optional builder options
//
// Returns:
//   - Watcher: the running watcher
//   - error: error if the directory cannot be watched
func NewWatcher(path string, options ...WatcherBuilderOption) (Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	w := &watcherImpl{
		path:    filepath.Clean(path),
		fs:      fsw,
		updates: make(chan Config, 1),
		done:    make(chan struct{}),
		logger:  slog.Default(),
	}
	for _, opt := range options {
		opt(w)
	}
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}

	w.wg.Add(1)
	go w.run()
	return w, nil
}

func (w *watcherImpl) Updates() <-chan Config {
	return w.updates
}

func (w *watcherImpl) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
		w.wg.Wait()
		close(w.updates)
	})
	return err
}

func (w *watcherImpl) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.reload()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", "error", err)
		}
	}
}

func (w *watcherImpl) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		// Partial writes land here too; the next write event retries.
		w.logger.Warn("config reload failed", "path", w.path, "error", err)
		return
	}
	w.logger.Info("config reloaded", "path", w.path)

	select {
	case w.updates <- cfg:
	default:
		select {
		case <-w.updates:
		default:
		}
		w.updates <- cfg
	}
}
