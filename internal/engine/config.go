package engine

import (
	"fmt"
	"time"
)

// Config controls the classification worker pool.
type Config struct {
	// NumWorkers is the number of goroutines draining the queue.
	NumWorkers int

	// QueueSize is the classification queue capacity. A full queue makes
	// Enqueue return false; callers fall back to synchronous handling or
	// drop the job.
	QueueSize int

	// ShutdownTimeout bounds how long Shutdown waits for workers to
	// drain remaining jobs.
	ShutdownTimeout time.Duration
}

// DefaultConfig returns the settings used in production.
func DefaultConfig() Config {
	return Config{
		NumWorkers:      2,
		QueueSize:       64,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Validate checks the configuration for usable values.
func (c Config) Validate() error {
	if c.NumWorkers < 1 {
		return fmt.Errorf("NumWorkers must be at least 1, got %d", c.NumWorkers)
	}
	if c.QueueSize < 1 {
		return fmt.Errorf("QueueSize must be at least 1, got %d", c.QueueSize)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("ShutdownTimeout must be positive, got %v", c.ShutdownTimeout)
	}
	return nil
}
