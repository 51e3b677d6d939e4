package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/scenedemo/internal/logger"
)

// Watcher reloads the scene section of a config file whenever it changes.
// Updates are delivered on a channel so the consumer decides which
// goroutine applies them.
type Watcher struct {
	path    string
	fs      *fsnotify.Watcher
	updates chan SceneConfig
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
	log     *zap.Logger
}

// Watch starts watching path. The parent directory is watched rather than
// the file itself, since most editors save by renaming a temp file over it.
func Watch(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:    abs,
		fs:      fw,
		updates: make(chan SceneConfig, 1),
		done:    make(chan struct{}),
		log:     logger.Named("config"),
	}
	w.wg.Add(1)
	go w.run()

	w.log.Info("watching config", zap.String("path", abs))
	return w, nil
}

// Updates returns the channel of reloaded scene sections. Only the most
// recent unread value is kept.
func (w *Watcher) Updates() <-chan SceneConfig {
	return w.updates
}

// Close stops the watcher. It is safe to call more than once.
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
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			sc, err := readScene(w.path)
			if err != nil {
				w.log.Warn("config reload failed", zap.String("path", w.path), zap.Error(err))
				continue
			}
			w.publish(sc)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("config watcher error", zap.Error(err))
		}
	}
}

// publish replaces any unread update with sc. run is the only sender, so
// the second send cannot block once the stale value is drained.
func (w *Watcher) publish(sc SceneConfig) {
	select {
	case w.updates <- sc:
		return
	default:
	}
	select {
	case <-w.updates:
	default:
	}
	w.updates <- sc
}

// readScene decodes the scene section of path over the defaults.
func readScene(path string) (SceneConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SceneConfig{}, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return SceneConfig{}, err
	}
	cfg.Scene.clamp()
	return cfg.Scene, nil
}
