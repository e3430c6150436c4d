package scout

import "sync/atomic"

// Sizer decides how many workers a parallel traversal should use for a
// given directory count. It owns no threads itself; the parallel
// walker consults it when sizing its pool and the cached counters are
// advisory, for introspection only.
type Sizer struct {
	directoryCount int64
	threadCount    int64
	cfg            ThreadConfig
}

// NewSizer returns a Sizer for the given tuning. Zero or negative
// fields fall back to the defaults.
func NewSizer(cfg ThreadConfig) *Sizer {
	def := DefaultThreadConfig()
	if cfg.MinThreads <= 0 {
		cfg.MinThreads = def.MinThreads
	}
	if cfg.MaxThreads <= 0 {
		cfg.MaxThreads = def.MaxThreads
	}
	if cfg.DirsPerThread <= 0 {
		cfg.DirsPerThread = def.DirsPerThread
	}
	if cfg.NumCPU <= 0 {
		cfg.NumCPU = def.NumCPU
	}
	s := &Sizer{cfg: cfg}
	atomic.StoreInt64(&s.threadCount, int64(cfg.MinThreads))
	return s
}

// Size computes the worker count for dirCount directories and caches
// both values for introspection.
func (s *Sizer) Size(dirCount int) int {
	atomic.StoreInt64(&s.directoryCount, int64(dirCount))
	n := s.compute(dirCount)
	atomic.StoreInt64(&s.threadCount, int64(n))
	return n
}

func (s *Sizer) compute(dirCount int) int {
	cfg := s.cfg
	if !cfg.AutoAdjust || dirCount == 0 {
		return cfg.MinThreads
	}

	ideal := (dirCount + cfg.DirsPerThread - 1) / cfg.DirsPerThread
	if ideal < cfg.MinThreads {
		ideal = cfg.MinThreads
	}
	if ideal > cfg.MaxThreads {
		ideal = cfg.MaxThreads
	}

	// The machine bounds the pool unless the caller demanded a higher floor.
	ceiling := cfg.NumCPU
	if cfg.MinThreads > ceiling {
		ceiling = cfg.MinThreads
	}
	if ideal > ceiling {
		ideal = ceiling
	}
	return ideal
}

// ThreadCount returns the worker count from the most recent sizing.
func (s *Sizer) ThreadCount() int {
	return int(atomic.LoadInt64(&s.threadCount))
}

// DirectoryCount returns the directory count from the most recent
// sizing.
func (s *Sizer) DirectoryCount() int {
	return int(atomic.LoadInt64(&s.directoryCount))
}
