package flechtwerk

import (
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/fsnotify/fsnotify"
)

// Config carries the framework settings read from the environment.
// EZ_FOLDER points at the directory declarative files and from_file
// resources are resolved against; the frame interval bounds how long the
// loop sleeps between ticks.
type Config struct {
	Folder        string        `env:"EZ_FOLDER"`
	FrameInterval time.Duration `env:"EZ_FRAME_INTERVAL" envDefault:"16ms"`
	LiveReload    bool          `env:"EZ_LIVE_RELOAD"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// watchUI watches the declarative file for changes and invokes reload on
// every write. Used in development when live reload is enabled; the
// watcher goroutine ends when the stop channel closes.
func watchUI(file string, stop <-chan struct{}, reload func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(file)); err != nil {
		watcher.Close()
		return err
	}
	target := filepath.Clean(file)
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-stop:
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) == target && event.Has(fsnotify.Write) {
					reload()
				}
			case <-watcher.Errors:
			}
		}
	}()
	return nil
}
