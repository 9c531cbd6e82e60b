package trust

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// seedFile is the on-disk shape of a trust seed file.
type seedFile struct {
	Sources []TrustedSource `yaml:"sources"`
	Blocked []string        `yaml:"blocked"`
}

// LoadSeedFile loads sources and blocked domains from a YAML file into the
// registry, replacing entries with the same domain. Existing built-in seeds
// for other domains are untouched.
func (r *Registry) LoadSeedFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file %q: %w", path, err)
	}

	var sf seedFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return fmt.Errorf("failed to parse seed file %q: %w", path, err)
	}

	for _, src := range sf.Sources {
		if err := r.AddSource(src); err != nil {
			r.logger.Warn("skipping invalid seed source", "domain", src.Domain, "error", err)
		}
	}
	for _, d := range sf.Blocked {
		if err := r.BlockDomain(d); err != nil {
			r.logger.Warn("skipping invalid blocked domain", "domain", d, "error", err)
		}
	}

	r.logger.Info("loaded trust seed file",
		"path", path, "sources", len(sf.Sources), "blocked", len(sf.Blocked))
	return nil
}

// SeedWatcher reloads a seed file into the registry when it changes on
// disk. Reloads are debounced to absorb editor write bursts.
type SeedWatcher struct {
	registry *Registry
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	logger   *slog.Logger
}

// NewSeedWatcher creates a watcher for the given seed file.
func NewSeedWatcher(registry *Registry, path string, logger *slog.Logger) (*SeedWatcher, error) {
	if logger == nil {
		logger = slog.Default().With("component", "trust.watcher")
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	// Watch the directory, not the file: editors replace files on save
	// and the inode watch would be lost.
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch %q: %w", filepath.Dir(path), err)
	}
	return &SeedWatcher{
		registry: registry,
		path:     path,
		watcher:  w,
		debounce: 200 * time.Millisecond,
		logger:   logger,
	}, nil
}

// Watch blocks until the context is cancelled, reloading the seed file on
// each write or create event that targets it.
func (sw *SeedWatcher) Watch(ctx context.Context) error {
	defer sw.watcher.Close()

	var timer *time.Timer
	reload := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-sw.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(sw.path) {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(sw.debounce, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})

		case <-reload:
			if err := sw.registry.LoadSeedFile(sw.path); err != nil {
				sw.logger.Warn("seed reload failed", "error", err)
			}

		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return nil
			}
			sw.logger.Warn("seed watcher error", "error", err)
		}
	}
}
