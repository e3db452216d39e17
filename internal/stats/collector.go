// Package stats instruments a single run: per-type durations, skip and
// execution counts, and observed concurrency, frozen into an immutable
// RunStats snapshot when the run stops.
package stats

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Collector accumulates instrumentation for one run. It is safe for
// concurrent use by parallel builders. Collection is best-effort
// instrumentation; nothing it records can fail a run.
type Collector struct {
	mu        sync.Mutex
	runID     string
	start     time.Time
	stopped   bool
	total     time.Duration
	durations map[string]time.Duration
	skipped   int
	executed  int

	levelCount int
	inFlight   int
	maxSeen    int
}

// NewCollector creates a collector and marks the run start time. Every run
// gets a fresh ID for log correlation.
func NewCollector() *Collector {
	return &Collector{
		runID:     uuid.NewString(),
		start:     time.Now(),
		durations: make(map[string]time.Duration),
	}
}

// RunID returns the run's correlation ID.
func (c *Collector) RunID() string { return c.runID }

// RecordExecution records a completed builder invocation for the given
// produced type.
func (c *Collector) RecordExecution(name string, elapsed time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.durations[name] = elapsed
	c.executed++
}

// RecordSkip counts a builder whose output was already present.
func (c *Collector) RecordSkip() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.skipped++
}

// SetLevelCount records how many parallel levels the run was planned with.
func (c *Collector) SetLevelCount(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.levelCount = n
}

// BuilderStarted notes one more builder in flight and tracks the high-water
// concurrency mark.
func (c *Collector) BuilderStarted() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight++
	if c.inFlight > c.maxSeen {
		c.maxSeen = c.inFlight
	}
}

// BuilderFinished notes a builder leaving flight.
func (c *Collector) BuilderFinished() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight--
}

// Stop freezes the total wall time and returns the immutable snapshot.
// Calling Stop again returns the same snapshot.
func (c *Collector) Stop() RunStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.stopped {
		c.stopped = true
		c.total = time.Since(c.start)
	}

	durations := make(map[string]time.Duration, len(c.durations))
	for k, v := range c.durations {
		durations[k] = v
	}
	return RunStats{
		RunID:          c.runID,
		WallTime:       c.total,
		Durations:      durations,
		Skipped:        c.skipped,
		Executed:       c.executed,
		LevelCount:     c.levelCount,
		MaxConcurrency: c.maxSeen,
	}
}
