package cache

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// Cleaner runs CleanupExpired on a cron schedule. Running a cleaner is
// recommended but not required; expired entries are also dropped lazily at
// read time.
type Cleaner struct {
	cache    *Cache
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
	mu       sync.Mutex
	running  bool
}

// NewCleaner creates a cleaner for the cache with the given cron schedule
// (e.g. "*/30 * * * *" for every 30 minutes).
func NewCleaner(cache *Cache, schedule string, logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default().With("component", "cache.cleaner")
	}
	return &Cleaner{
		cache:    cache,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger,
	}
}

// Start begins scheduled cleanup. An empty schedule is a no-op.
func (cl *Cleaner) Start() error {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	if cl.running {
		return fmt.Errorf("cleaner already running")
	}
	if cl.schedule == "" {
		cl.logger.Info("cleanup schedule not configured, skipping cleaner")
		return nil
	}

	if _, err := cron.ParseStandard(cl.schedule); err != nil {
		return fmt.Errorf("invalid cleanup schedule %q: %w", cl.schedule, err)
	}

	_, err := cl.cron.AddFunc(cl.schedule, func() {
		removed := cl.cache.CleanupExpired()
		cl.logger.Debug("scheduled cleanup complete", "removed", removed)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule cleanup: %w", err)
	}

	cl.cron.Start()
	cl.running = true
	cl.logger.Info("cache cleaner started", "schedule", cl.schedule)
	return nil
}

// Stop halts scheduled cleanup, waiting for an in-flight sweep to finish.
func (cl *Cleaner) Stop() {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	if !cl.running {
		return
	}
	<-cl.cron.Stop().Done()
	cl.running = false
}
