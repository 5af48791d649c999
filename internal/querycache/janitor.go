package querycache

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Janitor periodically evicts unused cache entries
type Janitor struct {
	cron   *cron.Cron
	cache  *Cache
	logger *zap.Logger
}

// NewJanitor creates a janitor that runs Collect every interval
func NewJanitor(cache *Cache, interval time.Duration, logger *zap.Logger) (*Janitor, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("janitor interval must be positive")
	}

	j := &Janitor{
		cron:   cron.New(),
		cache:  cache,
		logger: logger,
	}
	if _, err := j.cron.AddFunc(fmt.Sprintf("@every %s", interval), j.sweep); err != nil {
		return nil, fmt.Errorf("failed to schedule cache sweep: %w", err)
	}
	return j, nil
}

// Start starts the sweep schedule in the background
func (j *Janitor) Start() {
	j.cron.Start()
	j.logger.Info("Cache janitor started")
}

// Stop stops the schedule and waits for a running sweep to finish
func (j *Janitor) Stop() context.Context {
	ctx := j.cron.Stop()
	j.logger.Info("Cache janitor stopped")
	return ctx
}

func (j *Janitor) sweep() {
	if n := j.cache.Collect(); n > 0 {
		j.logger.Debug("evicted unused cache entries", zap.Int("count", n))
	}
}
