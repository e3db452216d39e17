package stats

import "time"

// RunStats is the immutable snapshot of one run's instrumentation.
type RunStats struct {
	RunID     string
	WallTime  time.Duration
	Durations map[string]time.Duration
	Skipped   int
	Executed  int
	// LevelCount and MaxConcurrency are zero for sequential runs.
	LevelCount     int
	MaxConcurrency int
}

// BuilderTime sums the individual builder durations.
func (s RunStats) BuilderTime() time.Duration {
	var sum time.Duration
	for _, d := range s.Durations {
		sum += d
	}
	return sum
}

// Average returns the mean builder duration, zero when nothing executed.
func (s RunStats) Average() time.Duration {
	if len(s.Durations) == 0 {
		return 0
	}
	return s.BuilderTime() / time.Duration(len(s.Durations))
}

// Slowest returns the builder with the largest duration.
func (s RunStats) Slowest() (string, time.Duration) {
	var (
		name string
		max  time.Duration
	)
	for n, d := range s.Durations {
		if name == "" || d > max || (d == max && n < name) {
			name, max = n, d
		}
	}
	return name, max
}

// Fastest returns the builder with the smallest duration.
func (s RunStats) Fastest() (string, time.Duration) {
	var (
		name string
		min  time.Duration
	)
	for n, d := range s.Durations {
		if name == "" || d < min || (d == min && n < name) {
			name, min = n, d
		}
	}
	return name, min
}

// ParallelEfficiency reports the fraction of total builder time that
// overlapped with other builders: max(0, builderTime - wallTime) over
// builderTime. It is meaningful only for parallel runs.
func (s RunStats) ParallelEfficiency() float64 {
	total := s.BuilderTime()
	if total == 0 {
		return 0
	}
	saved := total - s.WallTime
	if saved < 0 {
		saved = 0
	}
	return float64(saved) / float64(total)
}
