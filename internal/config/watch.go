package config

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/imageplane/internal/logger"
)

// Watcher reloads a config file when it changes on disk.
// Only the newest parsed config is kept until the consumer drains it.
type Watcher struct {
	path    string
	fs      *fsnotify.Watcher
	updates chan *Config
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
	log     *zap.Logger
}

// Watch starts watching path. The directory is watched rather than the file
// so editors that replace the file on save are still picked up.
func Watch(path string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		path:    filepath.Clean(path),
		fs:      fsw,
		updates: make(chan *Config, 1),
		done:    make(chan struct{}),
		log:     logger.Named("config"),
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Updates returns the channel of reloaded configs.
func (w *Watcher) Updates() <-chan *Config {
	return w.updates
}

// Close stops the watcher and waits for the background goroutine.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			w.reload()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload() {
	cfg := Default()
	if err := LoadFile(cfg, w.path); err != nil {
		// Editors often write in several steps; a later event carries the full file.
		w.log.Debug("reload skipped", zap.String("path", w.path), zap.Error(err))
		return
	}
	cfg.Validate()

	// Newest wins: drop a pending config the consumer has not read yet.
	select {
	case <-w.updates:
	default:
	}
	select {
	case w.updates <- cfg:
	default:
	}
	w.log.Info("config reloaded", zap.String("path", w.path))
}
