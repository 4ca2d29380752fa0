// Package janitor removes generated image files once they exceed a
// configured age. Sweeping is a pure function of the injected clock, so
// the schedule and the deletion rule are testable without waiting.
package janitor

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/phuslu/log"
)

// Clock abstracts time for tests.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now returns the current wall time.
func (SystemClock) Now() time.Time { return time.Now() }

// Janitor deletes files in Dir older than MaxAge, every Interval.
type Janitor struct {
	Dir      string
	MaxAge   time.Duration
	Interval time.Duration
	Clock    Clock
}

// New creates a janitor with the system clock.
func New(dir string, maxAge, interval time.Duration) *Janitor {
	return &Janitor{Dir: dir, MaxAge: maxAge, Interval: interval, Clock: SystemClock{}}
}

// Run sweeps on every interval tick until the context is cancelled.
func (j *Janitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := j.Sweep(j.Clock.Now())
			if err != nil {
				log.Warn().Err(err).Str("dir", j.Dir).Msg("janitor sweep failed")
				continue
			}
			if removed > 0 {
				log.Info().Int("removed", removed).Str("dir", j.Dir).Msg("janitor sweep")
			}
		}
	}
}

// Sweep deletes every regular file in Dir whose modification time lies
// more than MaxAge before now. It returns the number of removed files.
// Deletion is idempotent: a file already gone is not an error.
func (j *Janitor) Sweep(now time.Time) (int, error) {
	entries, err := os.ReadDir(j.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	cutoff := now.Add(-j.MaxAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(j.Dir, entry.Name())); err != nil && !os.IsNotExist(err) {
			log.Warn().Err(err).Str("file", entry.Name()).Msg("janitor remove failed")
			continue
		}
		removed++
	}
	return removed, nil
}
