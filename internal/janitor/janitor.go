// Package janitor runs periodic cache maintenance on a cron schedule.
package janitor

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Sweeper removes expired cache entries and reports how many were evicted.
type Sweeper interface {
	Cleanup() int
}

// Janitor evicts expired cache entries on a fixed interval so memory is
// reclaimed even for keys that are never read again.
type Janitor struct {
	cron    *cron.Cron
	sweeper Sweeper
	log     *slog.Logger
}

// New creates a Janitor that sweeps the given caches every interval.
func New(sweeper Sweeper, interval time.Duration, log *slog.Logger) (*Janitor, error) {
	c := cron.New()

	j := &Janitor{
		cron:    c,
		sweeper: sweeper,
		log:     log,
	}

	if _, err := c.AddFunc("@every "+interval.String(), j.sweep); err != nil {
		return nil, err
	}

	return j, nil
}

// Start begins running scheduled sweeps.
func (j *Janitor) Start() {
	j.log.Info("cache janitor started")
	j.cron.Start()
}

// Stop gracefully stops the janitor, waiting for a running sweep to finish.
func (j *Janitor) Stop() context.Context {
	j.log.Info("cache janitor stopping")
	return j.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (j *Janitor) Entries() []cron.Entry {
	return j.cron.Entries()
}

func (j *Janitor) sweep() {
	evicted := j.sweeper.Cleanup()
	if evicted > 0 {
		j.log.Info("cache sweep complete", "evicted", evicted)
	}
}
