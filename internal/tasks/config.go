package tasks

import "time"

// Config tunes the maintenance task queue. Zero fields take the defaults.
type Config struct {
	Workers         int
	ReleaseAfter    time.Duration // stuck tasks go back to the queue after this
	CleanupInterval time.Duration // completed tasks are purged this often

	// Path of the queue database. Empty means next to the catalog
	// database, see TasksDBPath.
	Path string
}

// DefaultConfig suits the single orphan-sweep queue: one worker is enough
// since sweeps are serialized by the catalog anyway.
func DefaultConfig() Config {
	return Config{
		Workers:         1,
		ReleaseAfter:    15 * time.Minute,
		CleanupInterval: time.Hour,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Workers <= 0 {
		c.Workers = d.Workers
	}
	if c.ReleaseAfter <= 0 {
		c.ReleaseAfter = d.ReleaseAfter
	}
	if c.CleanupInterval <= 0 {
		c.CleanupInterval = d.CleanupInterval
	}
	return c
}
